package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/hongminglow/task-tracker/internal/auth"
	"github.com/hongminglow/task-tracker/internal/http/respond"
	"github.com/hongminglow/task-tracker/internal/storage"
)

// TokenVerifier validates a raw bearer token.
type TokenVerifier interface {
	Verify(raw string) (auth.Claims, error)
}

// RequireAuth rejects requests without a valid bearer token for an existing
// user. Accepted requests carry an auth.Identity on their context.
func RequireAuth(tokens TokenVerifier, users storage.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := auth.BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, "No token provided")
				return
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrTokenExpired):
					respond.Error(w, http.StatusUnauthorized, "Token expired")
				case errors.Is(err, auth.ErrInvalidToken):
					respond.Error(w, http.StatusUnauthorized, "Invalid token")
				default:
					log.Printf("token verification error for %s %s: %v", r.Method, r.URL.Path, err)
					respond.Error(w, http.StatusInternalServerError, "Authentication failed")
				}
				return
			}

			user, err := users.FindByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					respond.Error(w, http.StatusUnauthorized, "User not found")
					return
				}
				log.Printf("load user %s for %s %s: %v", claims.UserID, r.Method, r.URL.Path, err)
				respond.Error(w, http.StatusInternalServerError, "Authentication failed")
				return
			}
			user.PasswordHash = ""

			ctx := auth.WithIdentity(r.Context(), auth.NewIdentity(user, claims))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
