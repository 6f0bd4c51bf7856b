package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"musubi/internal/auth"
	"musubi/internal/handlers"
)

const (
	testTOTPSecret = "JBSWY3DPEHPK3PXPJBSWY3DPEHPK3PXP"
	testSessionKey = "404142434445464748494a4b4c4d4e4f505152535455565758595a5b5c5d5e5f"
)

// newTestRouter wires a router with no database behind it. Gated routes
// reject before reaching a handler, so auth behavior is testable without
// infrastructure.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	tokens, err := auth.NewTokenService(testSessionKey, auth.SessionTTL)
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}
	verifier := auth.NewCredentialVerifier(testTOTPSecret)

	return New(
		tokens,
		handlers.NewAuth(verifier, tokens),
		handlers.NewConfig(nil),
		handlers.NewProjects(nil),
		handlers.NewMessages(nil, nil),
		handlers.NewAnalytics(nil, nil, nil),
		[]string{"*"},
	)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rr.Body.String())
	}
}

func TestGatedRoutesRejectWithoutToken(t *testing.T) {
	r := newTestRouter(t)

	gated := []struct {
		method string
		path   string
	}{
		{http.MethodPut, "/config"},
		{http.MethodPost, "/projects"},
		{http.MethodPut, "/projects/0123456789abcdef01234567"},
		{http.MethodDelete, "/projects/0123456789abcdef01234567"},
		{http.MethodGet, "/messages"},
		{http.MethodPatch, "/messages/0123456789abcdef01234567/read"},
		{http.MethodDelete, "/messages/0123456789abcdef01234567"},
		{http.MethodGet, "/analytics/stats"},
	}

	for _, tt := range gated {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: got status %d, want 401", tt.method, tt.path, rr.Code)
		}
	}
}

func TestGatedRoutesRejectBogusToken(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/messages", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("got status %d, want 401", rr.Code)
	}
}

func TestVerifyTOTPRouteWired(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/verify-totp", strings.NewReader(`{"code":"12345"}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	// Five digits: the format check answers 400, proving the route reaches
	// the credential verifier.
	if rr.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", rr.Code)
	}
}

func TestVerifyTokenRouteWired(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/verify-token", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"valid":false`) {
		t.Errorf("body = %s, want valid:false", rr.Body.String())
	}
}
