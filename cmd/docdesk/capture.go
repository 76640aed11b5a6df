package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var captureFilename string

var captureCmd = &cobra.Command{
	Use:   "capture <image-file>",
	Short: "Run OCR over a scanned document and append it as a NEW record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		image, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		filename := captureFilename
		if filename == "" {
			filename = filepath.Base(args[0])
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Sheet.FetchTimeout)
		defer cancel()
		// Refresh first so the dedup probe sees the live table.
		if err := a.records.Refresh(ctx); err != nil {
			return err
		}

		ocrCtx, cancelOCR := context.WithTimeout(cmd.Context(), a.cfg.OCR.Timeout)
		defer cancelOCR()
		res, err := a.records.Capture(ocrCtx, filename, image)
		if err != nil {
			return err
		}

		if res.Dedup {
			fmt.Println("Document already present (dedup).")
		} else {
			fmt.Println("Captured.")
		}
		fmt.Printf("uniqueKey: %s\n", res.UniqueKey)
		fmt.Printf("vendor:    %s\n", res.Extracted.Vendor)
		fmt.Printf("date:      %s\n", res.Extracted.Date)
		fmt.Printf("total:     %s\n", res.Extracted.Total)
		return nil
	},
}

func init() {
	captureCmd.Flags().StringVar(&captureFilename, "filename", "", "override the filename sent to the OCR endpoint")
}
