package db

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"reportdesk/internal/domain/auth"
	"reportdesk/internal/platform/config"
)

// Seed creates the bootstrap accounts when they are missing. It is
// safe to run on every start.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedAdminEmail != "" && cfg.SeedAdminPassword != "" {
		if err := seedUser(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword, "System Admin", auth.RoleAdmin); err != nil {
			return err
		}
	}
	if cfg.SeedHREmail != "" && cfg.SeedHRPassword != "" {
		if err := seedUser(ctx, pool, cfg.SeedHREmail, cfg.SeedHRPassword, "HR Manager", auth.RoleHR); err != nil {
			return err
		}
	}
	return nil
}

func seedUser(ctx context.Context, pool *pgxpool.Pool, email, password, name, role string) error {
	var exists bool
	if err := pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `INSERT INTO users (id, email, password_hash, name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)`, uuid.NewString(), email, hash, name, role)
	if err != nil {
		return err
	}
	slog.Info("seeded user", "email", email, "role", role)
	return nil
}
