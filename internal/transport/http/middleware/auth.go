package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/quran-api-nosql/internal/domain"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// TokenVerifier resolves a bearer token to the id of the user it was issued to.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// Auth returns middleware that validates the Bearer JWT and injects the
// user id into context. A missing header is 401; a bad token is 403.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeJSONError(w, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}
			userID, err := verifier.VerifyToken(strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")))
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					writeJSONError(w, http.StatusUnauthorized, "token not provided")
					return
				}
				writeJSONError(w, http.StatusForbidden, "invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext extracts the authenticated user id from the request context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok && id != ""
}

// WithUserID returns a copy of ctx carrying userID, as Auth would.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}
