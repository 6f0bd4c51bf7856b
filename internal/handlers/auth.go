package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"musubi/internal/auth"
	"musubi/internal/middleware"
)

// Auth handles the TOTP login and token-introspection endpoints.
type Auth struct {
	verifier *auth.CredentialVerifier
	tokens   *auth.TokenService
}

// NewAuth creates a new Auth handler group.
func NewAuth(verifier *auth.CredentialVerifier, tokens *auth.TokenService) *Auth {
	return &Auth{verifier: verifier, tokens: tokens}
}

type verifyTOTPRequest struct {
	Code string `json:"code"`
}

// VerifyTOTP validates a 6-digit one-time code and issues a session token.
// Format problems are a 400; a well-formed but wrong code is a 401.
func (a *Auth) VerifyTOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyTOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := a.verifier.Verify(req.Code)
	switch {
	case errors.Is(err, auth.ErrCodeFormat):
		respondError(w, http.StatusBadRequest, "invalid code format")
		return
	case errors.Is(err, auth.ErrCodeInvalid):
		respondError(w, http.StatusUnauthorized, "invalid code")
		return
	case err != nil:
		slog.Error("totp verification failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	token, err := a.tokens.Issue()
	if err != nil {
		slog.Error("token issue failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"token":   token,
		"message": "login successful",
	})
}

// VerifyToken reports whether the presented bearer token is still valid.
// Invalid and missing tokens both answer 401 {valid:false}.
func (a *Auth) VerifyToken(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)
	if token == "" {
		respondJSON(w, http.StatusUnauthorized, map[string]bool{"valid": false})
		return
	}

	if _, err := a.tokens.Verify(token); err != nil {
		respondJSON(w, http.StatusUnauthorized, map[string]bool{"valid": false})
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"valid": true})
}
