package slogx_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/dwolla/pkg/idx"
	"github.com/aussiebroadwan/dwolla/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, slog.LevelDebug, slogx.ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, slogx.ParseLevel("warning"))
	require.Equal(t, slog.LevelError, slogx.ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, slogx.ParseLevel("whatever"))
}

func TestContext(t *testing.T) {
	t.Parallel()

	require.Equal(t, slog.Default(), slogx.FromContext(t.Context()))

	logger := slogx.Discard()
	ctx := slogx.WithContext(t.Context(), logger)
	require.Same(t, logger, slogx.FromContext(ctx))
}

func TestHTTPMiddleware(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var fromHandler *slog.Logger
	handler := slogx.HTTPMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromHandler = slogx.FromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("keeps a provided request id", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/customers", nil)
		provided := idx.New().String()
		req.Header.Set(slogx.RequestIDHeader, provided)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusTeapot, rec.Code)
		require.Equal(t, provided, rec.Header().Get(slogx.RequestIDHeader))
		require.NotNil(t, fromHandler)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, provided, entry["req_id"])
		require.Equal(t, "/customers", entry["path"])
		require.EqualValues(t, http.StatusTeapot, entry["status"])
	})

	t.Run("generates a request id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Len(t, rec.Header().Get(slogx.RequestIDHeader), 26)
	})

	t.Run("replaces a malformed request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(slogx.RequestIDHeader, "abc")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		got := rec.Header().Get(slogx.RequestIDHeader)
		require.NotEqual(t, "abc", got)
		_, err := idx.Parse(got)
		require.NoError(t, err)
	})
}
