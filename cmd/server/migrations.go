package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"

	"github.com/phrazzld/flashdeck/internal/platform/postgres"
)

// handleMigrations executes one goose command against the embedded migrations.
func handleMigrations(ctx context.Context, db *sql.DB, command string, log *slog.Logger) error {
	if !slices.Contains(postgres.MigrationCommands, command) {
		return fmt.Errorf("unknown migration command %q (expected one of %v)", command, postgres.MigrationCommands)
	}

	log.Info("executing migrations", slog.String("command", command))
	return postgres.Migrate(ctx, db, command, log)
}
