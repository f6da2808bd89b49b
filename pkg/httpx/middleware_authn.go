package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/dwolla/pkg/slogx"
)

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// TokenVerifier checks a bearer token and returns the client it was issued to.
type TokenVerifier func(token string) (clientID string, err error)

// BearerAuth rejects requests without a valid bearer token and stores the
// client id in the request context.
func BearerAuth(verify TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				WriteError(w, http.StatusUnauthorized, "InvalidAccessToken", "Missing bearer token.")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			clientID, err := verify(raw)
			if err != nil {
				log.Warn("bearer verify failed", "err", err)
				WriteError(w, http.StatusUnauthorized, "InvalidAccessToken", "Invalid access token.")
				return
			}

			ctx := context.WithValue(r.Context(), CtxKeyClientID, clientID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
