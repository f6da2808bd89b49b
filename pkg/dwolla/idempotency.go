package dwolla

import "github.com/google/uuid"

// NewIdempotencyKey returns a random key for the Idempotency-Key header.
func NewIdempotencyKey() string {
	return uuid.NewString()
}

// WithIdempotencyKey returns a copy of h carrying key.
func (h Headers) WithIdempotencyKey(key string) Headers {
	out := make(Headers, len(h)+1)
	for k, v := range h {
		out[k] = v
	}
	out[IdempotencyKeyHeader] = key
	return out
}
