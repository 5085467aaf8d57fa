package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/ozarkhomeloans/portal/internal/auth"
	"github.com/ozarkhomeloans/portal/internal/token"
	"github.com/ozarkhomeloans/portal/pkg/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserContextKey stores the authenticated user in request context.
	UserContextKey contextKey = "user"
)

// AuthMiddleware requires either a valid session cookie or a Bearer JWT.
// The JWT path serves headless API clients (adminctl, deploy scripts).
func AuthMiddleware(authService *auth.Service, tokenService *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if bearer := bearerToken(r); bearer != "" {
				claims, err := tokenService.ValidateToken(bearer)
				if err != nil {
					jsonError(w, "invalid token", http.StatusUnauthorized)
					return
				}
				user := &models.User{ID: claims.UserID, Email: claims.Email, Role: claims.Role}
				ctx := context.WithValue(r.Context(), UserContextKey, user)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			cookie, err := r.Cookie("session")
			if err != nil || cookie.Value == "" {
				jsonError(w, "authentication required", http.StatusUnauthorized)
				return
			}

			user, _, err := authService.ValidateSession(cookie.Value)
			if err != nil {
				log.Printf("Session validation error: %v", err)
				clearSessionCookie(w)
				jsonError(w, "authentication required", http.StatusUnauthorized)
				return
			}
			if user == nil {
				clearSessionCookie(w)
				jsonError(w, "authentication required", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminMiddleware requires the authenticated user to have the admin role.
// MUST be used after AuthMiddleware so the user is already in context.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUserFromContext(r.Context())
		if !ok || user == nil || !user.IsAdmin() {
			jsonError(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext extracts the authenticated user from request context.
func GetUserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	return user, ok
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   "session",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}
