// internal/service/auth_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/asadkovich/task-manager/internal/models"
	"github.com/asadkovich/task-manager/internal/repository"
	"github.com/asadkovich/task-manager/pkg/auth"
)

type AuthService struct {
	users           *repository.UserRepository
	tokenManager    *auth.TokenManager
	passwordManager *auth.PasswordManager
}

func NewAuthService(users *repository.UserRepository, tokenManager *auth.TokenManager) *AuthService {
	return &AuthService{
		users:           users,
		tokenManager:    tokenManager,
		passwordManager: auth.NewPasswordManager(),
	}
}

// Register creates a new user account. The duplicate check runs before any
// write, so a taken login fails without touching storage.
func (s *AuthService) Register(ctx context.Context, login, password string) (*models.User, error) {
	exists, err := s.users.ExistsByLogin(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("check login: %w", err)
	}
	if exists {
		return nil, ErrDuplicateLogin
	}

	hash, err := s.passwordManager.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Login:        login,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies a login/password pair. It fails closed: an unknown
// login and a digest mismatch produce the same error.
func (s *AuthService) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.passwordManager.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// IssueToken mints a signed bearer token for the given login.
func (s *AuthService) IssueToken(login string) (string, error) {
	return s.tokenManager.Generate(login)
}

// CurrentUser resolves a bearer token to the acting user. Any failure —
// malformed token, expired token, or a subject that no longer resolves to
// a user — yields ErrUnauthorized.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	login, err := s.tokenManager.Validate(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	return user, nil
}
