package cmd

import (
	"fmt"

	"places-api/internal/database"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long: `Migrate applies every pending schema migration embedded in the binary
to the configured PostgreSQL database.

Example:
  places-api migrate --config config.yaml`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := database.Migrate(cmd.Context(), cfg.Database, log.Logger); err != nil {
		return err
	}
	return nil
}
