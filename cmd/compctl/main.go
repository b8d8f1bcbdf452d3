package main

import (
	"fmt"
	"os"

	"go-mission/internal/cli"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	rootCmd := &cobra.Command{
		Use:   "compctl",
		Short: "Admin tool for mission compensations",
		Long: `compctl runs schema migrations and operator tasks against the mission
compensation database: recomputing an assignation and summing totals.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cli.MigrateCmd())
	rootCmd.AddCommand(cli.RecomputeCmd())
	rootCmd.AddCommand(cli.TotalsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
