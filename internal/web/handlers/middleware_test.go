package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

func protectedRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(h.auth, h.tokens))
		r.Use(AdminMiddleware)
		r.Get("/api/me", h.Me)
	})
	return r
}

func TestAuthMiddlewareRejectsAnonymous(t *testing.T) {
	h := testHandler(t)
	r := protectedRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareSessionCookie(t *testing.T) {
	h := testHandler(t)
	r := protectedRouter(h)

	if _, err := h.auth.CreateUser("admin@example.com", "hunter2!", "Admin", "admin"); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	sessionID, err := h.auth.Login("admin@example.com", "hunter2!", "127.0.0.1", "test")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: sessionID})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareBearerToken(t *testing.T) {
	h := testHandler(t)
	r := protectedRouter(h)

	admin, err := h.auth.CreateUser("admin@example.com", "hunter2!", "Admin", "admin")
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}

	bearer, err := h.tokens.GenerateToken(admin.ID, admin.Email, admin.Role, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+bearer)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareRejectsBadBearer(t *testing.T) {
	h := testHandler(t)
	r := protectedRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAdminMiddlewareRejectsNonAdmin(t *testing.T) {
	h := testHandler(t)
	r := protectedRouter(h)

	if _, err := h.auth.CreateUser("user@example.com", "hunter2!", "User", "user"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	sessionID, err := h.auth.Login("user@example.com", "hunter2!", "127.0.0.1", "test")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: sessionID})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}
