// internal/middleware/auth.go
package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/asadkovich/task-manager/internal/models"
	"github.com/asadkovich/task-manager/internal/service"
	"github.com/asadkovich/task-manager/pkg/auth"
)

type contextKey string

const contextKeyUser contextKey = "user"

// Authenticator resolves the bearer token on protected routes and puts the
// acting user into the request context.
type Authenticator struct {
	auth *service.AuthService
}

func NewAuthenticator(auth *service.AuthService) *Authenticator {
	return &Authenticator{
		auth: auth,
	}
}

// Require rejects the request with 401 unless a valid bearer token
// resolves to an existing user.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.ExtractTokenFromHeader(r.Header.Get("Authorization"))
		if err != nil {
			unauthorized(w)
			return
		}

		user, err := a.auth.CurrentUser(r.Context(), token)
		if err != nil {
			unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUser, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext extracts the authenticated user from the request context.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(contextKeyUser).(*models.User)
	return user, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error":  "unauthorized",
		"detail": "could not validate credentials",
	})
}
