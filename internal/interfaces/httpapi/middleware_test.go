package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scorepadhq/scorepad/internal/domain/identity"
	"github.com/scorepadhq/scorepad/internal/usecase"
)

type stubVerifier struct {
	principal identity.Principal
	err       error
}

func (v stubVerifier) VerifyAccessToken(_ context.Context, _ string) (identity.Principal, error) {
	return v.principal, v.err
}

func TestRequireAuth_AttachesPrincipal(t *testing.T) {
	verifier := stubVerifier{principal: identity.Principal{UserID: "user-1", Email: "user@example.com"}}

	var got identity.Principal
	var found bool
	handler := RequireAuth(verifier, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = principalFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/game-sets", nil)
	req.Header.Set("Authorization", "Bearer token-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if !found || got.UserID != "user-1" {
		t.Fatalf("principal missing from context: %+v found=%v", got, found)
	}
}

func TestRequireAuth_RejectsMissingOrMalformedHeader(t *testing.T) {
	handler := RequireAuth(stubVerifier{}, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("handler must not run without auth")
	}))

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic dXNlcjpwYXNz",
		"empty token":    "Bearer ",
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/v1/game-sets", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, rec.Code)
		}
	}
}

func TestRequireAuth_PropagatesVerifierError(t *testing.T) {
	verifier := stubVerifier{err: fmt.Errorf("%w: janus is down", usecase.ErrDependencyUnavailable)}
	handler := RequireAuth(verifier, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("handler must not run when verification fails")
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/game-sets", nil)
	req.Header.Set("Authorization", "Bearer token-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when the verifier dependency is down, got %d", rec.Code)
	}
}

func TestShouldTraceRequest(t *testing.T) {
	for _, path := range []string{"/healthz", "/health", "/livez", "/readyz", " /HEALTHZ "} {
		if shouldTraceRequest(path) {
			t.Fatalf("health path %q must not be traced", path)
		}
	}
	if !shouldTraceRequest("/v1/game-sets") {
		t.Fatalf("api paths must be traced")
	}
}
