package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lcarvalho/academico/internal/app/models"
	"github.com/lcarvalho/academico/internal/app/repositories"
	"github.com/lcarvalho/academico/internal/pkg/apperrors"
	"github.com/lcarvalho/academico/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// defaultUsers are the accounts created on first start so the client can
// authenticate out of the box.
var defaultUsers = []struct {
	username string
	password string
}{
	{"admin", "admin123"},
	{"user", "user123"},
}

// CreateDefaultData creates the default API user accounts if they don't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default user accounts...")
	var finalErr error

	for _, u := range defaultUsers {
		hash, err := auth.HashPassword(u.password)
		if err != nil {
			lgr.Error().Err(err).Str("username", u.username).Msg("Error hashing default user password")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		user := &models.User{Username: u.username, PasswordHash: hash}
		err = userRepo.Create(ctx, user)
		if err != nil && !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			lgr.Error().Err(err).Str("username", u.username).Msg("Error creating default user")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
