package dwolla

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/dwolla/pkg/slogx"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	mu        sync.Mutex
	calls     int
	err       error
	expiresIn int
}

func (f *fakeAuth) RequestToken(_ context.Context, _ url.Values) (*Token, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return NewToken(nil, TokenState{
		AccessToken: fmt.Sprintf("token-%d", f.calls),
		ExpiresIn:   f.expiresIn,
		TokenType:   "bearer",
	}), nil
}

func (f *fakeAuth) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

var fixedNow = time.Unix(1_700_000_000, 0)

func newManager(auth Authenticator, opts ...TokenManagerOption) *TokenManager {
	base := []TokenManagerOption{
		WithPrewarm(false),
		WithManagerClock(func() time.Time { return fixedNow }),
		WithManagerLogger(slogx.Discard()),
	}
	return NewTokenManager(auth, append(base, opts...)...)
}

func intPtr(v int) *int { return &v }

func TestTokenManagerGetToken(t *testing.T) {
	t.Parallel()

	t.Run("requests a token when none is cached", func(t *testing.T) {
		auth := &fakeAuth{expiresIn: 3600}
		m := newManager(auth)

		token, err := m.GetToken(t.Context())
		require.NoError(t, err)
		require.Equal(t, "token-1", token.AccessToken())
		require.Equal(t, 1, auth.Calls())

		state := m.State()
		require.Same(t, token, state.Instance)
		require.Equal(t, 3600, *state.ExpiresIn)
		require.Equal(t, fixedNow.Unix(), state.UpdatedAt)
	})

	t.Run("returns the cached token while fresh", func(t *testing.T) {
		auth := &fakeAuth{expiresIn: 3600}
		cached := NewToken(nil, TokenState{AccessToken: "cached", ExpiresIn: 3600})
		m := newManager(auth, WithInitialState(TokenManagerState{
			Instance:  cached,
			ExpiresIn: intPtr(3600),
			UpdatedAt: fixedNow.Unix(),
		}))

		for range 10 {
			token, err := m.GetToken(t.Context())
			require.NoError(t, err)
			require.Same(t, cached, token)
		}
		require.Zero(t, auth.Calls())
	})

	t.Run("refreshes a token inside the margin", func(t *testing.T) {
		auth := &fakeAuth{expiresIn: 3600}
		m := newManager(auth, WithInitialState(TokenManagerState{
			Instance:  NewToken(nil, TokenState{AccessToken: "old", ExpiresIn: 30}),
			ExpiresIn: intPtr(30),
			UpdatedAt: fixedNow.Unix(),
		}))

		token, err := m.GetToken(t.Context())
		require.NoError(t, err)
		require.Equal(t, "token-1", token.AccessToken())
		require.Equal(t, 1, auth.Calls())
	})

	t.Run("treats an unknown lifetime as stale", func(t *testing.T) {
		auth := &fakeAuth{expiresIn: 3600}
		m := newManager(auth, WithInitialState(TokenManagerState{
			Instance:  NewToken(nil, TokenState{AccessToken: "old"}),
			UpdatedAt: fixedNow.Unix(),
		}))

		require.False(t, m.IsTokenFresh())
		token, err := m.GetToken(t.Context())
		require.NoError(t, err)
		require.Equal(t, "token-1", token.AccessToken())
	})

	t.Run("only one call for many gets", func(t *testing.T) {
		auth := &fakeAuth{expiresIn: 3600}
		m := newManager(auth)

		for range 5 {
			_, err := m.GetToken(t.Context())
			require.NoError(t, err)
		}
		require.Equal(t, 1, auth.Calls())
	})
}

func TestTokenManagerIsTokenFresh(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		expiresIn int
		age       int64
		want      bool
	}{
		{name: "fresh token", expiresIn: 3600, age: 0, want: true},
		{name: "just outside the margin", expiresIn: 3600, age: 3539, want: true},
		{name: "exactly at the margin", expiresIn: 3600, age: 3540, want: false},
		{name: "expired", expiresIn: 3600, age: 4000, want: false},
		{name: "short lived", expiresIn: 60, age: 0, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newManager(&fakeAuth{}, WithInitialState(TokenManagerState{
				Instance:  NewToken(nil, TokenState{}),
				ExpiresIn: intPtr(tc.expiresIn),
				UpdatedAt: fixedNow.Unix() - tc.age,
			}))
			require.Equal(t, tc.want, m.IsTokenFresh())
		})
	}
}

func TestTokenManagerUpdateTokenFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	auth := &fakeAuth{err: boom}
	old := NewToken(nil, TokenState{AccessToken: "old", ExpiresIn: 30})
	initial := TokenManagerState{Instance: old, ExpiresIn: intPtr(30), UpdatedAt: fixedNow.Unix()}
	m := newManager(auth, WithInitialState(initial))

	_, err := m.GetToken(t.Context())
	require.ErrorIs(t, err, boom)
	require.Equal(t, initial, m.State())

	// The next call retries.
	_, err = m.UpdateToken(t.Context())
	require.ErrorIs(t, err, boom)
	require.Equal(t, 2, auth.Calls())
}

func TestTokenManagerPrewarm(t *testing.T) {
	t.Parallel()

	t.Run("fetches a token in the background", func(t *testing.T) {
		auth := &fakeAuth{expiresIn: 3600}
		m := NewTokenManager(auth,
			WithManagerClock(func() time.Time { return fixedNow }),
			WithManagerLogger(slogx.Discard()),
		)

		require.Eventually(t, func() bool { return m.IsTokenFresh() }, time.Second, 5*time.Millisecond)

		_, err := m.GetToken(t.Context())
		require.NoError(t, err)
		require.Equal(t, 1, auth.Calls())
	})

	t.Run("logs failures instead of returning them", func(t *testing.T) {
		var buf lockedBuffer
		auth := &fakeAuth{err: &AuthError{Err: "invalid_client"}}
		m := NewTokenManager(auth,
			WithManagerLogger(slog.New(slog.NewTextHandler(&buf, nil))),
		)

		require.Eventually(t, func() bool {
			return strings.Contains(buf.String(), "token prewarm failed")
		}, time.Second, 5*time.Millisecond)
		require.Contains(t, buf.String(), "invalid_client")
		require.Nil(t, m.State().Instance)
	})
}
