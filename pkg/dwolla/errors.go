package dwolla

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ============================================================================
// Sentinels
// ============================================================================

var (
	// ErrDwolla is matched by every error raised by the library itself
	// (AuthError, ResponseError and Error). Configuration and transport
	// errors do not match it.
	ErrDwolla = errors.New("dwolla")

	// ErrInvalidOptions is the parent of every configuration error
	// returned by NewClient.
	ErrInvalidOptions = errors.New("dwolla: invalid client options")

	ErrMissingKey         = fmt.Errorf("%w: key or id is required", ErrInvalidOptions)
	ErrMissingSecret      = fmt.Errorf("%w: secret is required", ErrInvalidOptions)
	ErrInvalidEnvironment = fmt.Errorf("%w: invalid environment", ErrInvalidOptions)

	ErrMissingLocation = errors.New("location header is missing")
	ErrInvalidPath     = errors.New("unsupported path")
	ErrBodyTooLarge    = errors.New("response body too large")
)

// ============================================================================
// Error types
// ============================================================================

// Error is a protocol-level failure such as a missing Location header.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil || isSentinel(e.Err) {
		return "dwolla: " + e.Message
	}
	return "dwolla: " + e.Message + ": " + e.Err.Error()
}

// isSentinel reports whether err is one of the package sentinels, whose text
// only repeats the message.
func isSentinel(err error) bool {
	switch err {
	case ErrMissingLocation, ErrInvalidPath, ErrBodyTooLarge:
		return true
	}
	return false
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDwolla}
	}
	return []error{ErrDwolla, e.Err}
}

// AuthError is returned when the token endpoint answers with an "error"
// field. Err holds the literal OAuth error code, e.g. "invalid_client".
type AuthError struct {
	Err         string
	Description string
	URI         string
}

func (e *AuthError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "dwolla: auth error %q", e.Err)
	if e.Description != "" {
		b.WriteString(": " + e.Description)
	}
	return b.String()
}

func (e *AuthError) Unwrap() error { return ErrDwolla }

// ResponseError is returned for any response with status >= 400. Body is the
// decoded JSON body (or the raw text) as received, before any projection.
type ResponseError struct {
	Status  int
	Headers http.Header
	Body    any
}

func (e *ResponseError) Error() string {
	body, err := json.Marshal(e.Body)
	if err != nil {
		body = []byte(fmt.Sprint(e.Body))
	}
	return fmt.Sprintf("dwolla: response error %d: %s", e.Status, body)
}

func (e *ResponseError) Unwrap() error { return ErrDwolla }

// Code returns the "code" field of a Dwolla error body, if any.
func (e *ResponseError) Code() string {
	if m, ok := e.Body.(map[string]any); ok {
		code, _ := m["code"].(string)
		return code
	}
	return ""
}

func newResponseError(res *Response[any]) *ResponseError {
	return &ResponseError{Status: res.Status, Headers: res.Headers, Body: res.Body}
}

// ============================================================================
// Helpers
// ============================================================================

// IsAuthError reports whether err is or wraps an *AuthError.
func IsAuthError(err error) bool {
	var target *AuthError
	return errors.As(err, &target)
}

// IsResponseError reports whether err is or wraps a *ResponseError.
func IsResponseError(err error) bool {
	var target *ResponseError
	return errors.As(err, &target)
}

// IsDwollaError reports whether err was raised by the library.
func IsDwollaError(err error) bool {
	return errors.Is(err, ErrDwolla)
}
