package dwolla_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/aussiebroadwan/dwolla/pkg/dwolla"
	"github.com/aussiebroadwan/dwolla/pkg/httpx"
	"github.com/aussiebroadwan/dwolla/pkg/slogx"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	URL    *url.URL
	Header http.Header
	Body   []byte
}

// apiServer answers /token with a fixed token and hands every other request
// to handler after recording it.
type apiServer struct {
	*httptest.Server

	mu         sync.Mutex
	requests   []recordedRequest
	tokenForms []url.Values
	tokenReply func(w http.ResponseWriter)
}

func newAPIServer(t *testing.T, handler http.HandlerFunc) *apiServer {
	t.Helper()

	s := &apiServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/token" {
			_ = r.ParseForm()
			s.mu.Lock()
			s.tokenForms = append(s.tokenForms, r.PostForm)
			s.requests = append(s.requests, recordedRequest{Method: r.Method, URL: r.URL, Header: r.Header})
			reply := s.tokenReply
			s.mu.Unlock()

			if reply != nil {
				reply(w)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, map[string]any{
				"access_token": "test-token",
				"expires_in":   3600,
				"token_type":   "bearer",
			})
			return
		}

		body, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.requests = append(s.requests, recordedRequest{Method: r.Method, URL: r.URL, Header: r.Header, Body: body})
		s.mu.Unlock()

		if handler != nil {
			handler(w, r)
		}
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *apiServer) environment() dwolla.Environment {
	return dwolla.Environment{APIURL: s.URL, TokenURL: s.URL + "/token"}
}

func (s *apiServer) Requests() []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recordedRequest(nil), s.requests...)
}

func (s *apiServer) TokenForms() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]url.Values(nil), s.tokenForms...)
}

// last returns the most recent non-token request.
func (s *apiServer) last(t *testing.T) recordedRequest {
	t.Helper()
	reqs := s.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].URL.Path != "/token" {
			return reqs[i]
		}
	}
	t.Fatal("no api request recorded")
	return recordedRequest{}
}

func newTestClient(t *testing.T, s *apiServer, opts ...dwolla.Option) *dwolla.Client {
	t.Helper()

	base := []dwolla.Option{
		dwolla.WithTokenPrewarm(false),
		dwolla.WithLogger(slogx.Discard()),
	}
	c, err := dwolla.NewClient(dwolla.ClientOptions{
		Key:         "key",
		Secret:      "secret",
		Environment: s.environment(),
	}, append(base, opts...)...)
	require.NoError(t, err)
	return c
}

func writeHAL(w http.ResponseWriter, code int, v any) {
	httpx.WriteHAL(w, code, v)
}
