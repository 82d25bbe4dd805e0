package auth

import (
	"context"
	"net/http"
	"strings"

	logger "github.com/sirupsen/logrus"

	"tradejournal/src/model"
)

type userLoader interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
}

// Authenticated validates the bearer token and loads the account into the
// request context for GetUserFromContext.
func Authenticated(users userLoader) func(http.Handler) http.Handler {
	config := GetConfig()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}

			userID, err := ParseToken(parts[1], config.JWTSecret)
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			user, err := users.FindByID(r.Context(), userID)
			if err != nil {
				logger.WithError(err).Error("failed to load user for token")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			if user == nil {
				http.Error(w, "unknown user", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
