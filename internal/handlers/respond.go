// Package handlers implements the HTTP handler groups for the portfolio
// API. Handlers decode and validate JSON bodies, call into the store layer,
// and map failures onto the API's status taxonomy: 400 validation, 401
// uniform auth, 404 unknown id, 429 rate limit, 500 generic with detail
// logged server-side only.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// respondError writes a JSON error body. The message must be safe to show
// a caller; storage detail stays in the server log.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON decodes a request body into dst, limiting body size so a
// hostile client cannot exhaust memory.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	return dec.Decode(dst)
}
