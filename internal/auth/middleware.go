package auth

import (
	"context"
	"log/slog"
	"net/http"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// AuthContextKey is the key for storing AuthContext in request context
	AuthContextKey ContextKey = "authContext"
)

// AuthContext represents the authentication context available in a request.
// This is a transient context injected by the auth middleware. It replaces
// the shared mutable default-header token of the old client: every request
// carries its own verified identity instead of mutating global state.
type AuthContext struct {
	UserID uint
	Email  string
	Role   string
}

// Middleware creates an HTTP middleware that extracts and injects the
// authentication context from a bearer token.
//
// If any step fails (missing token, invalid token), the request proceeds
// without auth context. Handlers decide whether context is required.
//
// This design allows:
// - Public endpoints (no auth required)
// - Protected endpoints (check for context)
// - Optional auth endpoints (use context if available)
func Middleware(issuer *TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")

			// If no Authorization header, continue without auth context
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, err := ExtractBearerToken(authHeader)
			if err != nil {
				slog.Warn("failed to extract bearer token",
					"error", err,
					"auth_header_length", len(authHeader),
				)
				next.ServeHTTP(w, r)
				return
			}

			claims, err := issuer.Verify(token)
			if err != nil {
				slog.Warn("failed to verify bearer token", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			authCtx := &AuthContext{
				UserID: claims.UserID,
				Email:  claims.Subject,
				Role:   claims.Role,
			}

			ctx := context.WithValue(r.Context(), AuthContextKey, authCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAuthContext extracts the AuthContext from a request context.
// Returns nil if no auth context is available (request had no valid token).
func GetAuthContext(ctx context.Context) *AuthContext {
	authCtx, ok := ctx.Value(AuthContextKey).(*AuthContext)
	if !ok {
		return nil
	}
	return authCtx
}

// RequireAuth returns a middleware that requires authentication.
// If no auth context is found, returns 401 Unauthorized.
func RequireAuth(issuer *TokenIssuer) func(http.Handler) http.Handler {
	// Create the auth middleware once, not on every request
	authMiddleware := Middleware(issuer)

	return func(next http.Handler) http.Handler {
		return authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authCtx := GetAuthContext(r.Context())
			if authCtx == nil {
				slog.Warn("authentication required but not provided",
					"method", r.Method,
					"path", r.URL.Path,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","message":"authentication required"}`))
				return
			}

			next.ServeHTTP(w, r)
		}))
	}
}

// RequireRole returns a middleware that requires an authenticated user
// holding one of the given roles.
func RequireRole(issuer *TokenIssuer, roles ...string) func(http.Handler) http.Handler {
	authMiddleware := RequireAuth(issuer)

	return func(next http.Handler) http.Handler {
		return authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authCtx := GetAuthContext(r.Context())
			for _, role := range roles {
				if authCtx != nil && authCtx.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			slog.Warn("request rejected for missing role",
				"method", r.Method,
				"path", r.URL.Path,
				"required", roles,
			)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"forbidden","message":"insufficient role"}`))
		}))
	}
}
