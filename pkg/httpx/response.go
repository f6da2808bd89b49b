package httpx

import (
	"encoding/json"
	"net/http"
)

// HALContentType is the media type of Dwolla resources.
const HALContentType = "application/vnd.dwolla.v1.hal+json"

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	write(w, code, "application/json", v)
}

// WriteHAL writes a HAL resource.
func WriteHAL(w http.ResponseWriter, code int, v any) {
	write(w, code, HALContentType, v)
}

// WriteError writes a Dwolla style error body: {"code": ..., "message": ...}.
func WriteError(w http.ResponseWriter, code int, errCode, message string) {
	write(w, code, HALContentType, map[string]string{
		"code":    errCode,
		"message": message,
	})
}

// WriteCreated answers 201 with a Location header and an empty body.
func WriteCreated(w http.ResponseWriter, location string) {
	w.Header().Set("Location", location)
	w.WriteHeader(http.StatusCreated)
}

func write(w http.ResponseWriter, code int, contentType string, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// This is commonly required for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
