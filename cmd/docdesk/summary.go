package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Refresh from the sheet and print the dashboard aggregates",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Sheet.FetchTimeout)
		defer cancel()
		if err := a.records.Refresh(ctx); err != nil {
			return err
		}

		dash := a.records.Dashboard(ctx)
		fmt.Printf("Records:          %d\n", dash.RowCount)
		fmt.Printf("Distinct vendors: %d\n", dash.VendorCount)
		fmt.Printf("Total sum:        %.2f\n", dash.TotalSum)
		fmt.Printf("New (NEW):        %d\n", dash.NewCount)
		fmt.Println()
		fmt.Printf("Ledger invoices:     %d\n", dash.Ledger.InvoiceCount)
		fmt.Printf("Ledger vendor pairs: %d\n", dash.Ledger.VendorPairCount)
		fmt.Printf("Ledger total spend:  %.2f\n", dash.Ledger.TotalSpend)
		return nil
	},
}
