package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"places-api/internal/config"

	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

// VersionTable records the applied migration version
const VersionTable = "schema_version"

//go:embed migrations/*.sql
var migrations embed.FS

// Migrations returns the embedded migration files
func Migrations() fs.FS {
	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		// the directory is embedded at compile time
		panic(err)
	}
	return subtree
}

// Migrate applies every pending migration over a dedicated connection
func Migrate(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) error {
	conn, err := pgx.Connect(ctx, cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect for migrations: %w", err)
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, VersionTable)
	if err != nil {
		return fmt.Errorf("failed to construct database migrator: %w", err)
	}

	if err := m.LoadMigrations(Migrations()); err != nil {
		return fmt.Errorf("failed to load database migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read current migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if from == int32(len(m.Migrations)) {
		logger.Info().Int("version", len(m.Migrations)).Msg("Database schema up to date")
	} else {
		logger.Info().
			Int32("from", from).
			Int("to", len(m.Migrations)).
			Msg("Migrated database schema")
	}
	return nil
}
