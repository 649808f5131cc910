package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"simpeg/internal/domain/auth"
	"simpeg/internal/platform/config"
)

// Seed ensures the initial staff account exists. It is safe to run on
// every boot.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	username := strings.TrimSpace(cfg.SeedAdminUsername)
	password := cfg.SeedAdminPassword
	if username == "" || password == "" {
		return nil
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE username = $1", username).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO users (username, email, first_name, last_name, password_hash, is_staff, is_active)
    VALUES ($1, $2, 'System', 'Administrator', $3, true, true)
  `, username, cfg.SeedAdminEmail, hash)
	return err
}
