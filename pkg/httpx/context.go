package httpx

import "context"

type ctxKey string

const CtxKeyClientID ctxKey = "client_id"

// ClientIDFromContext returns the client id placed by BearerAuth.
func ClientIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyClientID).(string); ok {
		return v
	}
	return ""
}
