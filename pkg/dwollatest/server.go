// Package dwollatest runs an in-memory Dwolla API for tests. It issues signed
// bearer tokens from /token and keeps HAL resources in memory, so clients can
// be exercised end to end without the sandbox.
package dwollatest

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aussiebroadwan/dwolla/pkg/dwolla"
	"github.com/aussiebroadwan/dwolla/pkg/httpx"
	"github.com/aussiebroadwan/dwolla/pkg/jwtx"
	"github.com/aussiebroadwan/dwolla/pkg/slogx"
)

// Default credentials accepted by a Server.
const (
	DefaultKey      = "dwollatest-key"
	DefaultSecret   = "dwollatest-secret"
	DefaultTokenTTL = time.Hour
)

// Server is a fake Dwolla API backed by httptest.
type Server struct {
	*httptest.Server

	key        string
	secret     string
	signer     jwtx.Signer
	verifier   jwtx.Verifier
	tokenTTL   time.Duration
	tokenLimit *httpx.RateLimitConfig
	logger     *slog.Logger
	now        func() time.Time

	mu            sync.Mutex
	tokenRequests int
	issued        map[string]bool
	accountID     string
	store         *store
}

type Option func(*Server)

// WithCredentials sets the client id and secret /token accepts.
func WithCredentials(key, secret string) Option {
	return func(s *Server) { s.key, s.secret = key, secret }
}

// WithTokenTTL sets expires_in of issued tokens.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Server) { s.tokenTTL = ttl }
}

// WithTokenRateLimit limits /token per client_id.
func WithTokenRateLimit(cfg httpx.RateLimitConfig) Option {
	return func(s *Server) { s.tokenLimit = &cfg }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New starts a Server. Callers must Close it.
func New(opts ...Option) *Server {
	s := &Server{
		key:       DefaultKey,
		secret:    DefaultSecret,
		tokenTTL:  DefaultTokenTTL,
		logger:    slogx.Discard(),
		now:       time.Now,
		issued:    make(map[string]bool),
		accountID: uuid.NewString(),
		store:     newStore(),
	}
	for _, opt := range opts {
		opt(s)
	}

	secret := []byte(uuid.NewString())
	signer, err := jwtx.NewSignerHS256(secret)
	if err != nil {
		panic(fmt.Sprintf("dwollatest: failed to create token signer: %v", err))
	}
	s.signer = signer
	s.Server = httptest.NewServer(s.routes())
	s.verifier = jwtx.NewVerifierHS256(secret, s.URL, s.now)
	s.seed()
	return s
}

// Environment points a client at the server.
func (s *Server) Environment() dwolla.Environment {
	return dwolla.Environment{APIURL: s.URL, TokenURL: s.URL + "/token"}
}

// Key returns the accepted client id.
func (s *Server) Key() string { return s.key }

// Secret returns the accepted client secret.
func (s *Server) Secret() string { return s.secret }

// AccountID is the id of the master account linked from the root.
func (s *Server) AccountID() string { return s.accountID }

// TokenRequests counts calls to /token, successful or not.
func (s *Server) TokenRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokenRequests
}

// RevokeTokens invalidates every token issued so far.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.issued)
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(slogx.HTTPMiddleware(s.logger))

	token := http.Handler(http.HandlerFunc(s.handleToken))
	if s.tokenLimit != nil {
		token = httpx.RateLimitMiddleware(*s.tokenLimit, httpx.FormFieldKeyExtractor("client_id"))(token)
	}
	r.Method(http.MethodPost, "/token", token)

	r.Group(func(r chi.Router) {
		r.Use(httpx.BearerAuth(s.verifyToken))

		r.Get("/", s.handleRoot)
		r.Get("/accounts/{id}", s.handleGetAccount)

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", s.handleListCustomers)
			r.Post("/", s.handleCreateCustomer)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetCustomer)
				r.Post("/", s.handleUpdateCustomer)
				r.Get("/beneficial-owners", s.handleListBeneficialOwners)
				r.Post("/beneficial-owners", s.handleCreateBeneficialOwner)
				r.Get("/documents", s.handleListDocuments("customers"))
				r.Post("/documents", s.handleCreateDocument("customers"))
				r.Get("/funding-sources", s.handleListFundingSources)
				r.Post("/funding-sources", s.handleCreateFundingSource)
				r.Post("/funding-sources-token", s.handleFundingSourceToken)
				r.Post("/card-funding-sources-token", s.handleFundingSourceToken)
				r.Get("/transfers", s.handleListTransfers)
			})
		})

		r.Route("/beneficial-owners/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetResource("beneficial-owners"))
			r.Post("/", s.handleUpdateBeneficialOwner)
			r.Delete("/", s.handleRemoveBeneficialOwner)
			r.Get("/documents", s.handleListDocuments("beneficial-owners"))
			r.Post("/documents", s.handleCreateDocument("beneficial-owners"))
		})

		r.Get("/documents/{id}", s.handleGetResource("documents"))

		r.Route("/funding-sources/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetResource("funding-sources"))
			r.Post("/", s.handleUpdateFundingSource)
			r.Get("/balance", s.handleBalance)
			r.Get("/ach-routing", s.handleACHRouting)
			r.Get("/micro-deposits", s.handleGetMicroDeposits)
			r.Post("/micro-deposits", s.handleMicroDeposits)
		})

		r.Post("/transfers", s.handleInitiateTransfer)
		r.Route("/transfers/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetResource("transfers"))
			r.Post("/", s.handleCancelTransfer)
			r.Get("/failure", s.handleTransferFailure)
			r.Get("/fees", s.handleTransferFees)
		})

		r.Get("/business-classifications", s.handleListBusinessClassifications)
		r.Get("/business-classifications/{id}", s.handleGetResource("business-classifications"))

		r.Post("/on-demand-authorizations", s.handleOnDemandAuthorization)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		notFound(w)
	})
	return r
}

// ============================================================================
// Tokens
// ============================================================================

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.tokenRequests++
	s.mu.Unlock()

	if err := r.ParseForm(); err != nil {
		oauthError(w, http.StatusBadRequest, "invalid_request", "Malformed form body.")
		return
	}
	if r.PostForm.Get("grant_type") != "client_credentials" {
		oauthError(w, http.StatusBadRequest, "unsupported_grant_type", "Only client_credentials is supported.")
		return
	}
	clientID := r.PostForm.Get("client_id")
	if clientID != s.key || r.PostForm.Get("client_secret") != s.secret {
		oauthError(w, http.StatusUnauthorized, "invalid_client", "Invalid client credentials.")
		return
	}

	claims := jwtx.NewAccessClaims(clientID, "Send|Funding|Transactions|ManageCustomers", s.tokenTTL, s.URL, s.now())
	signed, err := s.signer.Sign(claims)
	if err != nil {
		s.logger.Error("sign token", "err", err)
		oauthError(w, http.StatusInternalServerError, "server_error", "Could not issue token.")
		return
	}

	s.mu.Lock()
	s.issued[claims.ID] = true
	s.mu.Unlock()

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"access_token": signed,
		"token_type":   "bearer",
		"expires_in":   int(s.tokenTTL.Seconds()),
	})
}

var errRevoked = errors.New("token revoked")

func (s *Server) verifyToken(raw string) (string, error) {
	claims, err := s.verifier.Verify(raw)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.issued[claims.ID] {
		return "", errRevoked
	}
	return claims.Subject, nil
}

func oauthError(w http.ResponseWriter, code int, errCode, description string) {
	httpx.WriteJSON(w, code, map[string]string{
		"error":             errCode,
		"error_description": description,
	})
}
