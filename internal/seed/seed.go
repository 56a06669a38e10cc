package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/davnat/scolaris/internal/app/models"
	"github.com/davnat/scolaris/internal/app/repositories"
	"github.com/davnat/scolaris/internal/config"
	"github.com/davnat/scolaris/internal/pkg/auth"
)

// CreateDefaultAdmin provisions the bootstrap administrator account when
// the users table is empty. Without it a fresh install has nobody able to
// log in and create records.
func CreateDefaultAdmin(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)

	count, err := userRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	if cfg.Seed.AdminPassword == "" {
		lgr.Warn().Msg("Users table is empty and no seed admin password is configured, skipping admin seed")
		return nil
	}

	hash, err := auth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash seed admin password: %w", err)
	}

	admin := &models.User{
		Email:    cfg.Seed.AdminEmail,
		Password: hash,
		Name:     "Administrator",
		Role:     models.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create seed admin: %w", err)
	}

	lgr.Info().Str("email", admin.Email).Msg("Seed administrator created")
	return nil
}
