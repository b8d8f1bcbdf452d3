package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// TotalsCmd prints the company-wide amount for a payment status.
func TotalsCmd() *cobra.Command {
	var companyID, status string

	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Sum compensations by payment status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			total, err := e.services.CompensationService.TotalForStatus(cmd.Context(), companyID, status)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", total.Status, color.New(color.Bold).Sprint(total.Amount))
			return nil
		},
	}

	cmd.Flags().StringVar(&companyID, "company", "", "company id")
	cmd.Flags().StringVar(&status, "status", "not-paid", "paid or not-paid")
	_ = cmd.MarkFlagRequired("company")
	return cmd
}
