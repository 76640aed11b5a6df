package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lmarchetti/docdesk/internal/records"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the record table to an XLSX workbook",
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

		data, err := a.export.RecordsXLSX(records.Filter{})
		if err != nil {
			return err
		}
		if err := os.WriteFile(exportOut, data, 0o644); err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}
		fmt.Printf("Wrote %s (%d records)\n", exportOut, a.store.Len())
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "records.xlsx", "output file path")
}
