package middleware

import (
	"context"
	"net/http"
	"strings"

	"mural/internal/httputil"
	"mural/internal/model"
	"mural/internal/service"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// IdentityKey is the context key for the resolved session identity
	IdentityKey contextKey = "identity"

	// SessionCookieName is the cookie carrying the signed session token
	SessionCookieName = "session_token"
)

// tokenFromRequest checks the session cookie first (web), then falls
// back to the Authorization header (mobile apps and scripts).
func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	return ""
}

// RequireAuth rejects requests without a valid session and stores the
// resolved identity in the request context.
func RequireAuth(sessions *service.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := tokenFromRequest(r)
			if tokenString == "" {
				httputil.WriteUnauthorized(w, "Missing authentication token")
				return
			}

			identity, err := sessions.Resolve(tokenString)
			if err != nil {
				httputil.WriteUnauthorized(w, "Invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth resolves the session when one is present but lets
// anonymous requests through. Listings use it to compute viewer state.
func OptionalAuth(sessions *service.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := tokenFromRequest(r)
			if tokenString == "" {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := sessions.Resolve(tokenString)
			if err != nil {
				// A bad token on an optional route is treated as anonymous.
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentityFromContext extracts the resolved identity from the
// request context. Returns nil and false when the request is anonymous.
func GetIdentityFromContext(ctx context.Context) (*model.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(*model.Identity)
	return identity, ok && identity != nil
}
