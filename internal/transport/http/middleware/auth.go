package middleware

import (
	"context"
	"net/http"

	"github.com/wordly-app/backend/internal/domain"
	jwtinfra "github.com/wordly-app/backend/internal/infrastructure/jwt"
)

type contextKey string

const userKey contextKey = "user"

// AccessCookieName is the cookie carrying the short-lived access token.
const AccessCookieName = "accessToken"

type accessVerifier interface {
	VerifyAccess(token string) (*jwtinfra.Claims, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

// Auth returns middleware that validates the access-token cookie, resolves
// the user it names and injects the user into the request context. A 401
// from here is the signal API clients key their refresh-and-retry on.
func Auth(verifier accessVerifier, users userStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(AccessCookieName)
			if err != nil || cookie.Value == "" {
				writeJSONError(w, http.StatusUnauthorized, "no token provided")
				return
			}
			claims, err := verifier.VerifyAccess(cookie.Value)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			u, err := users.Get(r.Context(), claims.UserID)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			ctx := context.WithValue(r.Context(), userKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext extracts the authenticated user from the request context.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userKey).(*domain.User)
	return u, ok
}
