package services

import (
	"context"
	"errors"

	"github.com/lcarvalho/academico/internal/app/models"
	"github.com/lcarvalho/academico/internal/pkg/apperrors"
	"github.com/lcarvalho/academico/internal/pkg/auth"
)

// UserRepository is the storage contract the auth service depends on.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService verifies HTTP Basic credentials against the user store.
// There is no login endpoint: clients encode credentials locally and every
// request is verified here.
type AuthService struct {
	userRepo UserRepository
}

// NewAuthService creates a new auth service instance
func NewAuthService(userRepo UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// VerifyCredentials checks a username/password pair and returns the matching user.
func (s *AuthService) VerifyCredentials(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}
