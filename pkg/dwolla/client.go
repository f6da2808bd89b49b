package dwolla

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/dwolla/pkg/httpx"
)

// DefaultTimeout is the timeout of the HTTP client used when none is given.
const DefaultTimeout = 30 * time.Second

// ClientOptions are the application credentials. Key is an alias of ID.
type ClientOptions struct {
	ID          string
	Key         string
	Secret      string
	Environment EnvironmentSelector
}

// Client is the entry point of the library. It owns the token lifecycle and
// dispatches requests with the current token. A Client is safe for
// concurrent use.
type Client struct {
	opts ClientOptions
	env  Environment

	httpClient       *http.Client
	logger           *slog.Logger
	userAgent        string
	now              func() time.Time
	maxResponseBytes int64
	followLocation   bool
	prewarm          bool
	rateLimit        *httpx.RateLimitConfig

	auth   *Auth
	tokens *TokenManager
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for every call.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithFollowLocation controls whether PostFollow follows the Location
// header. When disabled the POST response is returned as is.
func WithFollowLocation(enabled bool) Option {
	return func(c *Client) { c.followLocation = enabled }
}

// WithTokenPrewarm controls the background token fetch at construction.
func WithTokenPrewarm(enabled bool) Option {
	return func(c *Client) { c.prewarm = enabled }
}

// WithClock replaces time.Now for token freshness checks.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithRateLimit throttles outgoing requests on the client side.
func WithRateLimit(cfg httpx.RateLimitConfig) Option {
	return func(c *Client) { c.rateLimit = &cfg }
}

// WithMaxResponseBytes bounds the size of response bodies.
func WithMaxResponseBytes(n int64) Option {
	return func(c *Client) { c.maxResponseBytes = n }
}

// WithUserAgent replaces the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient validates the options and builds a Client. No network call is
// made synchronously; unless WithTokenPrewarm(false) is given a token is
// fetched in the background.
func NewClient(opts ClientOptions, options ...Option) (*Client, error) {
	if opts.ID == "" && opts.Key == "" {
		return nil, ErrMissingKey
	}
	if opts.Secret == "" {
		return nil, ErrMissingSecret
	}
	if isNilPointer(opts.Environment) {
		return nil, ErrInvalidEnvironment
	}
	if name, ok := opts.Environment.(EnvironmentName); ok && name != "" && !name.Valid() {
		return nil, ErrInvalidEnvironment
	}

	var env Environment
	if name, ok := opts.Environment.(EnvironmentName); ok && name == "" {
		env = ResolveEnvironment(nil)
	} else {
		env = ResolveEnvironment(opts.Environment)
	}
	if env.APIURL == "" || env.TokenURL == "" {
		return nil, ErrInvalidEnvironment
	}

	c := &Client{
		opts:             opts,
		env:              env,
		httpClient:       &http.Client{Timeout: DefaultTimeout},
		logger:           slog.Default(),
		userAgent:        defaultUserAgent,
		now:              time.Now,
		maxResponseBytes: DefaultMaxResponseBytes,
		followLocation:   true,
		prewarm:          true,
	}
	for _, opt := range options {
		opt(c)
	}

	if c.rateLimit != nil {
		hc := *c.httpClient
		hc.Transport = httpx.NewRateLimitedTransport(hc.Transport, *c.rateLimit)
		c.httpClient = &hc
	}

	c.auth = &Auth{client: c}
	c.tokens = NewTokenManager(c.auth,
		WithManagerClock(c.now),
		WithManagerLogger(c.logger),
		WithPrewarm(c.prewarm),
	)
	return c, nil
}

// Environment returns the resolved URLs.
func (c *Client) Environment() Environment { return c.env }

// Auth returns the authenticator bound to the client.
func (c *Client) Auth() *Auth { return c.auth }

// TokenManager returns the token cache.
func (c *Client) TokenManager() *TokenManager { return c.tokens }

func (c *Client) clientID() string {
	if c.opts.ID != "" {
		return c.opts.ID
	}
	return c.opts.Key
}

// Get fetches path with a fresh token.
func (c *Client) Get(ctx context.Context, path any, query Query, headers Headers) (*Response[any], error) {
	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return nil, err
	}
	return token.Get(ctx, path, query, headers)
}

// Post sends body to path with a fresh token.
func (c *Client) Post(ctx context.Context, path any, body any, headers Headers) (*Response[any], error) {
	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return nil, err
	}
	return token.Post(ctx, path, body, headers)
}

// PostFollow sends body to path and fetches the created resource.
func (c *Client) PostFollow(ctx context.Context, path any, body any, headers Headers) (*Response[any], error) {
	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return nil, err
	}
	return token.PostFollow(ctx, path, body, headers)
}

// Delete deletes path with a fresh token.
func (c *Client) Delete(ctx context.Context, path any, query Query, headers Headers) (*Response[any], error) {
	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return nil, err
	}
	return token.Delete(ctx, path, query, headers)
}

// GetMapped fetches path and projects the body into T.
func GetMapped[T any](ctx context.Context, c *Client, path any, query Query, headers Headers) (*Response[T], error) {
	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return nil, err
	}
	return getAs[T](ctx, token, path, query, headers, true)
}

// PostMapped sends body to path and projects the response into T.
func PostMapped[T any](ctx context.Context, c *Client, path any, body any, headers Headers) (*Response[T], error) {
	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return nil, err
	}
	return postAs[T](ctx, token, path, body, headers, true)
}

// PostFollowMapped sends body to path and projects the created resource
// into T.
func PostFollowMapped[T any](ctx context.Context, c *Client, path any, body any, headers Headers) (*Response[T], error) {
	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return nil, err
	}
	return postFollowAs[T](ctx, token, path, body, headers, true)
}

// DeleteMapped deletes path and projects the response into T.
func DeleteMapped[T any](ctx context.Context, c *Client, path any, query Query, headers Headers) (*Response[T], error) {
	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return nil, err
	}
	return deleteAs[T](ctx, token, path, query, headers, true)
}
