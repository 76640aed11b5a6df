package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lmarchetti/docdesk/internal/common"
	"github.com/lmarchetti/docdesk/internal/export"
	"github.com/lmarchetti/docdesk/internal/extract"
	"github.com/lmarchetti/docdesk/internal/outreach"
	"github.com/lmarchetti/docdesk/internal/records"
	"github.com/lmarchetti/docdesk/internal/sheets"
)

var rootCmd = &cobra.Command{
	Use:   "docdesk",
	Short: "CLI for the docdesk document ledger",
	Long: `docdesk reconciles a spreadsheet-backed document ledger: capture
documents via OCR, inspect dashboard aggregates, search records and send
semi-automatic outreach emails.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(captureCmd)
	rootCmd.AddCommand(emailCmd)
	rootCmd.AddCommand(exportCmd)
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		// Running without a .env file is fine; env vars may be set directly.
		return
	}
}

// app bundles the wired services for one CLI invocation.
type app struct {
	cfg      *common.Config
	store    *records.Store
	records  *records.Service
	outreach *outreach.Service
	export   *export.Service
}

func newApp() (*app, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store := records.NewStore()
	recordsSrc := buildSourceChain(cfg, cfg.Sheet.RecordsGID, cfg.Sheet.RecordsRange, logger)
	var ledgerSrc sheets.RowSource
	if cfg.Sheet.LedgerGID != "" || cfg.Sheet.CredentialsFile != "" {
		ledgerSrc = buildSourceChain(cfg, cfg.Sheet.LedgerGID, cfg.Sheet.LedgerRange, logger)
	}

	var extractor extract.FieldExtractor
	if cfg.OCR.EndpointURL != "" {
		extractor = extract.NewHTTPExtractor(cfg.OCR.EndpointURL, cfg.OCR.APIKey, cfg.OCR.Timeout, logger)
	}

	var sender outreach.Sender
	if cfg.SMTP.Host != "" {
		sender = outreach.NewSMTPSender(outreach.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			Timeout:  cfg.SMTP.Timeout,
		}, logger)
	}

	recordsSvc := records.NewService(store, recordsSrc, ledgerSrc, extractor, logger)
	return &app{
		cfg:      cfg,
		store:    store,
		records:  recordsSvc,
		outreach: outreach.NewService(store, sender, logger),
		export:   export.NewService(store, logger),
	}, nil
}

func buildSourceChain(cfg *common.Config, gid, readRange string, logger *slog.Logger) sheets.RowSource {
	var sources []sheets.RowSource
	if gid != "" {
		sources = append(sources, sheets.NewCSVExportSource(cfg.Sheet.SpreadsheetID, gid, cfg.Sheet.FetchTimeout, logger))
	}
	if cfg.Sheet.CredentialsFile != "" {
		sources = append(sources, sheets.NewAPISource(cfg.Sheet.SpreadsheetID, readRange, cfg.Sheet.CredentialsFile, logger))
	}
	return sheets.NewChain(logger, sources...)
}
