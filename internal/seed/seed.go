package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/futureedge/counselling/internal/app/models"
	"github.com/futureedge/counselling/internal/app/repositories"
	"github.com/futureedge/counselling/internal/pkg/apperrors"
	"github.com/futureedge/counselling/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// AdminSeed describes the first console operator
type AdminSeed struct {
	Email    string
	Password string
	FullName string
}

// CreateDefaultAdmin creates the seed admin account unless one with the same
// email already exists. An empty email or password disables seeding.
func CreateDefaultAdmin(ctx context.Context, adminRepo repositories.IAdminRepository, hasher auth.PasswordHasher, seed AdminSeed, lgr zerolog.Logger) error {
	email := strings.ToLower(strings.TrimSpace(seed.Email))
	if email == "" || seed.Password == "" {
		lgr.Debug().Msg("No seed admin configured, skipping")
		return nil
	}

	_, err := adminRepo.GetByEmail(ctx, email)
	if err == nil {
		lgr.Debug().Str("email", email).Msg("Seed admin already exists")
		return nil
	}
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return fmt.Errorf("failed to look up seed admin: %w", err)
	}

	if len(seed.Password) < auth.MinPasswordLength {
		return fmt.Errorf("seed admin password must be at least %d characters", auth.MinPasswordLength)
	}

	hash, err := hasher.Hash(seed.Password)
	if err != nil {
		return fmt.Errorf("failed to hash seed admin password: %w", err)
	}

	name := strings.TrimSpace(seed.FullName)
	if name == "" {
		name = "Administrator"
	}

	admin := &models.AdminUser{Email: email, FullName: name, PasswordHash: hash}
	if err := adminRepo.Create(ctx, admin); err != nil {
		// Another instance won the race
		if errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			return nil
		}
		return fmt.Errorf("failed to create seed admin: %w", err)
	}

	lgr.Info().Str("email", email).Str("adminID", admin.ID.String()).Msg("Seed admin created")
	return nil
}
