package cli

import (
	"context"
	"database/sql"
	"fmt"

	"go-mission/internal/migrations"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type migrateFunc func(ctx context.Context, db *sql.DB) error

// MigrateCmd applies the embedded schema migrations.
func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the compensation database schema",
	}
	cmd.AddCommand(migrateStep("up", "Apply all pending migrations", migrations.Up))
	cmd.AddCommand(migrateStep("down", "Roll back the latest migration", migrations.Down))
	cmd.AddCommand(migrateStep("status", "Print applied and pending migrations", migrations.Status))
	return cmd
}

func migrateStep(use, short string, run migrateFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openMigrationDB()
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			if err := run(cmd.Context(), db); err != nil {
				return fmt.Errorf("migrate %s: %w", use, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: %s\n", use, color.New(color.FgGreen).Sprint("OK"))
			return nil
		},
	}
}
