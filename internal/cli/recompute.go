package cli

import (
	"fmt"
	"io"

	"go-mission/internal/compensation"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RecomputeCmd rebuilds the compensation lines of one assignation.
func RecomputeCmd() *cobra.Command {
	var companyID, assignationID, actorID string

	cmd := &cobra.Command{
		Use:   "recompute",
		Short: "Recompute the daily compensations of an assignation",
		Long: `Recompute deletes the unpaid lines of the assignation and rebuilds them
from the current scales. Paid lines are never touched; an assignation that
already holds a paid line is rejected.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			resp, err := e.services.CompensationService.Recompute(cmd.Context(), companyID, actorID, assignationID)
			if err != nil {
				return err
			}
			printRecompute(cmd.OutOrStdout(), resp)
			return nil
		},
	}

	cmd.Flags().StringVar(&companyID, "company", "", "company id")
	cmd.Flags().StringVar(&assignationID, "assignation", "", "assignation id")
	cmd.Flags().StringVar(&actorID, "actor", "compctl", "actor recorded on the outbox event")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("assignation")
	return cmd
}

func printRecompute(w io.Writer, resp compensation.RecomputeResponse) {
	fmt.Fprintf(w, "Assignation %s: %d line(s)\n", resp.AssignationID, len(resp.Lines))
	for _, line := range resp.Lines {
		fmt.Fprintf(w, "  %s  transport=%s breakfast=%s lunch=%s dinner=%s accommodation=%s  total=%s\n",
			line.Date, line.Transport, line.Breakfast, line.Lunch, line.Dinner, line.Accommodation,
			color.New(color.FgCyan).Sprint(line.Total),
		)
	}
	fmt.Fprintf(w, "Total: %s\n", color.New(color.Bold).Sprint(resp.TotalAmount))
}
