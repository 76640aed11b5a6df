package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	emailKeys     []string
	emailSubject  string
	emailBody     string
	emailBodyFile string
)

var emailCmd = &cobra.Command{
	Use:   "email",
	Short: "Send templated outreach emails for selected records",
	Long: `Sends one email per selected record. The body supports literal
placeholders {{vendor}}, {{date}}, {{total}} and {{uniqueKey}}.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if len(emailKeys) == 0 {
			return fmt.Errorf("--keys is required")
		}
		body := emailBody
		if emailBodyFile != "" {
			bs, err := os.ReadFile(emailBodyFile)
			if err != nil {
				return fmt.Errorf("read body file: %w", err)
			}
			body = string(bs)
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Sheet.FetchTimeout)
		defer cancel()
		if err := a.records.Refresh(ctx); err != nil {
			return err
		}

		report := a.outreach.SendBatch(cmd.Context(), emailKeys, emailSubject, body)
		fmt.Printf("Sent: %d, failed: %d\n", len(report.Sent), len(report.Failed))
		for _, f := range report.Failed {
			fmt.Printf("  %s: %s\n", f.Key, f.Reason)
		}
		return nil
	},
}

func init() {
	emailCmd.Flags().StringSliceVar(&emailKeys, "keys", nil, "unique keys of the records to contact")
	emailCmd.Flags().StringVar(&emailSubject, "subject", "Richiesta informazioni", "email subject")
	emailCmd.Flags().StringVar(&emailBody, "body", "", "email body template")
	emailCmd.Flags().StringVar(&emailBodyFile, "body-file", "", "read the body template from a file")
}
