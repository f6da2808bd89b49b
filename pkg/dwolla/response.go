package dwolla

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/aussiebroadwan/dwolla/pkg/hal"
)

// DefaultMaxResponseBytes bounds how much of a response body is read.
const DefaultMaxResponseBytes int64 = 10 << 20

// Response is a parsed API response. For untyped calls Body is the decoded
// JSON value (map[string]any, []any, ...) or the raw text when the body is
// not JSON. For typed calls Body is the projected model and Raw keeps the
// decoded value before projection.
type Response[T any] struct {
	Body    T
	Raw     any
	Headers http.Header
	Status  int
}

// Location returns the Location header, set on 201 Created responses.
func (r *Response[T]) Location() string {
	return r.Headers.Get("Location")
}

// parseResponse reads and closes the body. With mapped set, JSON bodies are
// projected into T; otherwise the decoded value is returned as is. Any
// status >= 400 yields a *ResponseError carrying the unprojected body.
func parseResponse[T any](resp *http.Response, mapped bool, limit int64) (*Response[T], error) {
	defer resp.Body.Close()

	data, err := readBody(resp.Body, limit)
	if err != nil {
		return nil, err
	}

	var parsed any
	isJSON := json.Unmarshal(data, &parsed) == nil
	if !isJSON {
		parsed = string(data)
	}

	unmapped := &Response[any]{Body: parsed, Raw: parsed, Headers: resp.Header, Status: resp.StatusCode}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, newResponseError(unmapped)
	}

	out := &Response[T]{Raw: parsed, Headers: resp.Header, Status: resp.StatusCode}
	if mapped && isJSON {
		if err := hal.Decode(parsed, &out.Body); err != nil {
			return nil, &Error{Message: "failed to map response", Err: err}
		}
		return out, nil
	}
	if v, ok := parsed.(T); ok {
		out.Body = v
	}
	return out, nil
}

func readBody(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultMaxResponseBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, &Error{Message: fmt.Sprintf("response body exceeds %d bytes", limit), Err: ErrBodyTooLarge}
	}
	return data, nil
}
