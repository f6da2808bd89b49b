package httpx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/dwolla/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestFormFieldKeyExtractor(t *testing.T) {
	t.Run("extracts from GET params", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?client_id=alice", nil)
		require.Equal(t, "alice", httpx.FormFieldKeyExtractor("client_id")(req))
	})

	t.Run("extracts from POST form", func(t *testing.T) {
		form := url.Values{}
		form.Set("client_id", "bob")

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		require.Equal(t, "bob", httpx.FormFieldKeyExtractor("client_id")(req))
	})
}

func TestParseRateLimitFromEnv(t *testing.T) {
	def := httpx.RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}

	t.Run("keeps defaults when unset", func(t *testing.T) {
		require.Equal(t, def, httpx.ParseRateLimitFromEnv("TEST_UNSET", def))
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("TEST_RL_REQUESTS", "10")
		t.Setenv("TEST_RL_WINDOW_SEC", "30")
		t.Setenv("TEST_RL_BURST", "2")

		cfg := httpx.ParseRateLimitFromEnv("TEST_RL", def)
		require.Equal(t, 10, cfg.RequestsPerWindow)
		require.Equal(t, 30*time.Second, cfg.Window)
		require.Equal(t, 2, cfg.Burst)
	})

	t.Run("ignores invalid values", func(t *testing.T) {
		t.Setenv("TEST_BAD_REQUESTS", "-1")
		t.Setenv("TEST_BAD_BURST", "abc")

		require.Equal(t, def, httpx.ParseRateLimitFromEnv("TEST_BAD", def))
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Parallel()

	cfg := httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Hour, Burst: 2}
	handler := httpx.RateLimitMiddleware(cfg, httpx.FormFieldKeyExtractor("client_id"))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	call := func(clientID string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/token?client_id="+clientID, nil))
		return rec
	}

	require.Equal(t, http.StatusOK, call("a").Code)
	require.Equal(t, http.StatusOK, call("a").Code)

	rec := call("a")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
	require.Contains(t, rec.Body.String(), "TooManyRequests")

	// Separate keys have separate budgets.
	require.Equal(t, http.StatusOK, call("b").Code)

	// Requests without a key are never limited.
	for range 5 {
		require.Equal(t, http.StatusOK, call("").Code)
	}
}

func TestRateLimitedTransport(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	cfg := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Hour, Burst: 1}
	hc := &http.Client{Transport: httpx.NewRateLimitedTransport(nil, cfg)}

	t.Run("passes requests within budget", func(t *testing.T) {
		resp, err := hc.Get(srv.URL)
		require.NoError(t, err)
		resp.Body.Close()
		require.EqualValues(t, 1, hits.Load())
	})

	t.Run("waits for a slot and honours the context", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
		require.NoError(t, err)

		_, err = hc.Do(req)
		require.Error(t, err)
		require.EqualValues(t, 1, hits.Load())
	})
}

func TestBearerAuth(t *testing.T) {
	t.Parallel()

	verify := func(token string) (string, error) {
		if token != "good" {
			return "", context.Canceled
		}
		return "client-1", nil
	}
	handler := httpx.BearerAuth(verify)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(httpx.ClientIDFromContext(r.Context())))
	}))

	t.Run("rejects missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "InvalidAccessToken")
	})

	t.Run("rejects invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer bad")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("stores client id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "client-1", rec.Body.String())
	})
}
