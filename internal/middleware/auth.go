// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mkozlov/userd/internal/token"
)

type ctxKey string

const usernameKey ctxKey = "username"

// TokenVerifier verifies an inbound bearer token and returns its claims.
type TokenVerifier interface {
	Verify(tokenString string, kind token.Kind) (*token.Claims, error)
}

// SessionChecker reports whether a live session marker exists for a username.
type SessionChecker interface {
	Exists(ctx context.Context, username string) (bool, error)
}

// TokenAuth is a middleware that gates protected routes behind two checks:
// the access token's signature and expiry, and the presence of a live
// session marker for the token's username. Either failing yields the same
// generic 401, so a response never reveals which check rejected it.
//
// On success it stores the authenticated username in the request context,
// where handlers read it via GetUsernameFromContext.
func TokenAuth(verifier TokenVerifier, sessions SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractBearer(r)
			if tokenString == "" {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(tokenString, token.Access)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			live, err := sessions.Exists(r.Context(), claims.Username)
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if !live {
				// Logged out, session expired, or account deleted. The
				// token itself may still be cryptographically valid.
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUsername(r.Context(), claims.Username)))
		})
	}
}

// extractBearer returns the token from an "Authorization: Bearer <token>"
// header, or "" if the header is absent or malformed.
func extractBearer(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// ContextWithUsername returns a context carrying the authenticated username.
func ContextWithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// GetUsernameFromContext extracts the authenticated username from the
// request context. Returns an empty string if not found.
func GetUsernameFromContext(ctx context.Context) string {
	val := ctx.Value(usernameKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
