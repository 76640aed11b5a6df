package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lmarchetti/docdesk/constants"
	"github.com/lmarchetti/docdesk/internal/records"
)

var (
	searchVendor   string
	searchStatus   string
	searchMinTotal float64
	searchMaxTotal float64
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search records with compound filters",
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

		filter := records.Filter{
			VendorContains: searchVendor,
			Status:         constants.RecordStatus(searchStatus),
			MinTotal:       searchMinTotal,
			MaxTotal:       searchMaxTotal,
			// An explicit flag distinguishes "no max" from a max of zero.
			ApplyMax: cmd.Flags().Changed("max-total"),
		}

		rows := a.records.Search(ctx, filter)
		fmt.Printf("Results: %d\n", len(rows))
		for _, r := range rows {
			fmt.Printf("%s  %-24s %-12s %10.2f  %-8s %s\n",
				r.UniqueKey, r.Vendor, r.Date, r.Total, r.Status, r.Email)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchVendor, "vendor", "", "vendor name contains (case-insensitive)")
	searchCmd.Flags().StringVar(&searchStatus, "status", "", "exact status (NEW or EMAILED)")
	searchCmd.Flags().Float64Var(&searchMinTotal, "min-total", 0, "inclusive minimum total (> 0 to apply)")
	searchCmd.Flags().Float64Var(&searchMaxTotal, "max-total", 0, "inclusive maximum total (applied when set, even at 0)")
}
