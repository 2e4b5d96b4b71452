package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pdelgado/mtg-metagame/internal/api/auth"
)

func newAuthRouter(t *testing.T, password string) http.Handler {
	t.Helper()
	hash := ""
	if password != "" {
		var err error
		hash, err = auth.HashPassword(password)
		if err != nil {
			t.Fatalf("HashPassword() error = %v", err)
		}
	}
	h := NewAuthHandler(auth.NewService(hash, "test-secret", time.Hour))

	r := chi.NewRouter()
	r.Post("/auth/login", h.Login)
	r.Get("/auth/me", h.Me)
	return r
}

func TestAuthLogin(t *testing.T) {
	router := newAuthRouter(t, "hunter2")

	var resp LoginResponse
	doJSON(t, router, http.MethodPost, "/auth/login", `{"password":"hunter2"}`, http.StatusOK, &resp)
	if resp.Token == "" || resp.User != "admin" {
		t.Errorf("login response = %+v", resp)
	}

	doJSON(t, router, http.MethodPost, "/auth/login", `{"password":"wrong"}`, http.StatusUnauthorized, nil)
	doJSON(t, router, http.MethodPost, "/auth/login", `garbage`, http.StatusBadRequest, nil)

	// The token works against the whoami endpoint.
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("me status = %d with valid token", rec.Code)
	}

	// And without a token the whoami endpoint refuses.
	getJSON(t, router, "/auth/me", http.StatusUnauthorized, nil)
}

func TestAuthLoginDisabled(t *testing.T) {
	router := newAuthRouter(t, "")
	doJSON(t, router, http.MethodPost, "/auth/login", `{"password":"anything"}`, http.StatusUnauthorized, nil)
}
