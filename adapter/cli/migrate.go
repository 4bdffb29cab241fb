package cli

import (
	"fmt"

	"github.com/inheaven/petservice/internal/app"
	"github.com/inheaven/petservice/pkg/config"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long: `Apply the schema for the configured database.

PostgreSQL is migrated with the embedded migration files. SQLite databases
are migrated automatically on open, so this only creates the file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := app.Migrate(cmd.Context(), cfg, Logger()); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied (%s).\n", cfg.DatabaseDriver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
