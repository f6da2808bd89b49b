package dwolla

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ExpiresInMargin is how long before expiry a token stops being fresh.
const ExpiresInMargin = 60 * time.Second

// TokenManagerState is a snapshot of the cached token. A nil ExpiresIn means
// the lifetime is unknown and the token is treated as stale.
type TokenManagerState struct {
	Instance  *Token
	ExpiresIn *int
	UpdatedAt int64 // unix seconds
}

// TokenManager caches a Token and refreshes it when it gets close to expiry.
//
// Only reads and writes of the cached state are serialized. The network call
// runs outside the lock, so concurrent callers that all observe a stale
// token each request a new one and the last write wins.
type TokenManager struct {
	auth   Authenticator
	now    func() time.Time
	logger *slog.Logger

	mu    sync.Mutex
	state TokenManagerState

	prewarm bool
}

// TokenManagerOption configures a TokenManager.
type TokenManagerOption func(*TokenManager)

// WithInitialState seeds the cache.
func WithInitialState(state TokenManagerState) TokenManagerOption {
	return func(m *TokenManager) { m.state = state }
}

// WithManagerClock replaces time.Now.
func WithManagerClock(now func() time.Time) TokenManagerOption {
	return func(m *TokenManager) { m.now = now }
}

// WithManagerLogger sets the logger used for refresh events.
func WithManagerLogger(logger *slog.Logger) TokenManagerOption {
	return func(m *TokenManager) { m.logger = logger }
}

// WithPrewarm controls the background fetch started by NewTokenManager.
// It is on by default.
func WithPrewarm(enabled bool) TokenManagerOption {
	return func(m *TokenManager) { m.prewarm = enabled }
}

// NewTokenManager returns a manager backed by auth. Unless disabled with
// WithPrewarm(false) it starts fetching a token in the background; a failure
// there is logged and the next GetToken retries.
func NewTokenManager(auth Authenticator, opts ...TokenManagerOption) *TokenManager {
	m := &TokenManager{
		auth:    auth,
		now:     time.Now,
		logger:  slog.Default(),
		prewarm: true,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.prewarm {
		go func() {
			if _, err := m.UpdateToken(context.Background()); err != nil {
				m.logger.Error("token prewarm failed", slog.Any("error", err))
			}
		}()
	}
	return m
}

// GetToken returns the cached token while it is fresh and fetches a new one
// otherwise.
func (m *TokenManager) GetToken(ctx context.Context) (*Token, error) {
	m.mu.Lock()
	instance := m.state.Instance
	fresh := m.isFresh()
	m.mu.Unlock()

	if instance == nil || !fresh {
		return m.UpdateToken(ctx)
	}
	return instance, nil
}

// IsTokenFresh reports whether the cached token outlives the safety margin.
func (m *TokenManager) IsTokenFresh() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isFresh()
}

func (m *TokenManager) isFresh() bool {
	if m.state.ExpiresIn == nil {
		return false
	}
	margin := int64(ExpiresInMargin / time.Second)
	return int64(*m.state.ExpiresIn)+m.state.UpdatedAt > m.now().Unix()+margin
}

// UpdateToken requests a new token and caches it. On failure the cached
// state is left untouched.
func (m *TokenManager) UpdateToken(ctx context.Context) (*Token, error) {
	token, err := m.auth.RequestToken(ctx, nil)
	if err != nil {
		return nil, err
	}

	expiresIn := token.ExpiresIn()
	m.mu.Lock()
	m.state = TokenManagerState{
		Instance:  token,
		ExpiresIn: &expiresIn,
		UpdatedAt: m.now().Unix(),
	}
	m.mu.Unlock()

	m.logger.DebugContext(ctx, "token refreshed", slog.Int("expires_in", expiresIn))
	return token, nil
}

// State returns a snapshot of the cache.
func (m *TokenManager) State() TokenManagerState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}
