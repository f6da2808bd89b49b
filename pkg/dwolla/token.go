package dwolla

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/aussiebroadwan/dwolla/pkg/hal"
	"github.com/aussiebroadwan/dwolla/pkg/idx"
)

// TokenState is the credential material of a Token.
type TokenState struct {
	AccessToken string
	ExpiresIn   int
	TokenType   string
}

// Token is an access token bound to a Client. It never changes after
// creation; freshness is tracked by the TokenManager.
type Token struct {
	client *Client
	state  TokenState
}

// NewToken binds state to c.
func NewToken(c *Client, state TokenState) *Token {
	return &Token{client: c, state: state}
}

// State returns a copy of the token state.
func (t *Token) State() TokenState { return t.state }

// AccessToken returns the bearer credential sent with every request.
func (t *Token) AccessToken() string { return t.state.AccessToken }

// ExpiresIn returns the lifetime in seconds reported by the token endpoint.
func (t *Token) ExpiresIn() int { return t.state.ExpiresIn }

// Get issues a GET and returns the decoded body.
func (t *Token) Get(ctx context.Context, path any, query Query, headers Headers) (*Response[any], error) {
	return getAs[any](ctx, t, path, query, headers, false)
}

// Post issues a POST. A *FormData body is sent as multipart, anything else
// as JSON.
func (t *Token) Post(ctx context.Context, path any, body any, headers Headers) (*Response[any], error) {
	return postAs[any](ctx, t, path, body, headers, false)
}

// PostFollow issues a POST and then a GET on the returned Location.
func (t *Token) PostFollow(ctx context.Context, path any, body any, headers Headers) (*Response[any], error) {
	return postFollowAs[any](ctx, t, path, body, headers, false)
}

// Delete issues a DELETE.
func (t *Token) Delete(ctx context.Context, path any, query Query, headers Headers) (*Response[any], error) {
	return deleteAs[any](ctx, t, path, query, headers, false)
}

func getAs[T any](ctx context.Context, t *Token, path any, query Query, headers Headers, mapped bool) (*Response[T], error) {
	u, err := t.resolveURL(path, query)
	if err != nil {
		return nil, err
	}
	resp, err := t.do(ctx, http.MethodGet, u, nil, headers)
	if err != nil {
		return nil, err
	}
	return parseResponse[T](resp, mapped, t.client.maxResponseBytes)
}

func postAs[T any](ctx context.Context, t *Token, path any, body any, headers Headers, mapped bool) (*Response[T], error) {
	u, err := t.resolveURL(path, nil)
	if err != nil {
		return nil, err
	}
	payload, contentType, err := encodeBody(body)
	if err != nil {
		return nil, err
	}
	resp, err := t.do(ctx, http.MethodPost, u, &requestBody{reader: payload, contentType: contentType}, headers)
	if err != nil {
		return nil, err
	}
	return parseResponse[T](resp, mapped, t.client.maxResponseBytes)
}

func postFollowAs[T any](ctx context.Context, t *Token, path any, body any, headers Headers, mapped bool) (*Response[T], error) {
	if !t.client.followLocation {
		return postAs[T](ctx, t, path, body, headers, mapped)
	}
	res, err := postAs[any](ctx, t, path, body, headers, false)
	if err != nil {
		return nil, err
	}
	location := res.Location()
	if location == "" {
		return nil, &Error{Message: "cannot follow URL, Location header is missing", Err: ErrMissingLocation}
	}
	return getAs[T](ctx, t, location, nil, nil, mapped)
}

func deleteAs[T any](ctx context.Context, t *Token, path any, query Query, headers Headers, mapped bool) (*Response[T], error) {
	u, err := t.resolveURL(path, query)
	if err != nil {
		return nil, err
	}
	resp, err := t.do(ctx, http.MethodDelete, u, nil, headers)
	if err != nil {
		return nil, err
	}
	return parseResponse[T](resp, mapped, t.client.maxResponseBytes)
}

// ============================================================================
// URL resolution
// ============================================================================

// isNilPointer reports whether v holds a typed nil pointer.
func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

var absoluteURLPrefix = regexp.MustCompile(`^https?://[^/]*/`)

// resolveURL turns a path, a linked resource or a raw HAL body into a full
// URL and appends the query string.
func (t *Token) resolveURL(path any, query Query) (string, error) {
	if isNilPointer(path) {
		return "", &Error{Message: fmt.Sprintf("cannot build URL from nil %T", path), Err: ErrInvalidPath}
	}

	var u string
	switch p := path.(type) {
	case string:
		u = t.resolvePath(p)
	case hal.Linked:
		if !p.HasLink("self") {
			return "", &Error{Message: "resource has no self link", Err: ErrInvalidPath}
		}
		u = p.Href("self")
	case map[string]any:
		href, ok := hal.SelfHref(p)
		if !ok {
			return "", &Error{Message: "resource has no self link", Err: ErrInvalidPath}
		}
		u = href
	default:
		return "", &Error{Message: fmt.Sprintf("cannot build URL from %T", path), Err: ErrInvalidPath}
	}

	if q := query.Encode(); q != "" {
		u += "?" + q
	}
	return u, nil
}

func (t *Token) resolvePath(path string) string {
	apiURL := t.client.env.APIURL
	switch {
	case strings.HasPrefix(path, apiURL):
		return path
	case strings.HasPrefix(path, "/"):
		return apiURL + path
	default:
		return apiURL + "/" + absoluteURLPrefix.ReplaceAllString(path, "")
	}
}

// ============================================================================
// Transport
// ============================================================================

type requestBody struct {
	reader      io.Reader
	contentType string
}

func encodeBody(body any) (io.Reader, string, error) {
	if form, ok := body.(*FormData); ok {
		buf, contentType, err := form.encode()
		if err != nil {
			return nil, "", err
		}
		return buf, contentType, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode request body: %w", err)
	}
	return bytes.NewReader(data), "application/json", nil
}

// do sends the request with the default headers. Caller headers replace the
// defaults; the body's Content-Type is applied last.
func (t *Token) do(ctx context.Context, method, rawURL string, body *requestBody, headers Headers) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = body.reader
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+t.state.AccessToken)
	req.Header.Set("Accept", AcceptHeader)
	req.Header.Set("User-Agent", t.client.userAgent)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	if body != nil {
		req.Header.Set("Content-Type", body.contentType)
	}

	logger := t.client.logger.With(
		slog.String("req_id", idx.New().String()),
		slog.String("method", method),
		slog.String("url", rawURL),
	)

	start := time.Now()
	resp, err := t.client.httpClient.Do(req)
	if err != nil {
		logger.DebugContext(ctx, "dwolla_request_failed", slog.Any("error", err))
		return nil, err
	}

	logger.DebugContext(ctx, "dwolla_request",
		slog.Int("status", resp.StatusCode),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return resp, nil
}
