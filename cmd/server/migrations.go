package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/quill-api/internal/config"
	"github.com/phrazzld/quill-api/internal/platform/postgres"
	"github.com/phrazzld/quill-api/internal/platform/postgres/migrations"
	"github.com/phrazzld/quill-api/internal/service/auth"
)

// runMigrations executes a goose command against the embedded migrations.
func runMigrations(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) error {
	logger.Info("executing migrations", "command", command)
	if err := migrations.Run(ctx, db, command, logger); err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	return nil
}

// seedDatabase inserts the demo accounts and posts, hashing with the
// configured bcrypt cost.
func seedDatabase(ctx context.Context, db *sql.DB, cfg config.AuthConfig, logger *slog.Logger) error {
	result, err := postgres.Seed(ctx, db, auth.NewBcryptHasher(cfg.BcryptCost))
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	logger.Info("seed completed",
		"users", len(result.UserIDs),
		"posts_created", result.PostsCreated)
	return nil
}
