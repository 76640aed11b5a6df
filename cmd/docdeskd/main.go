package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/lmarchetti/docdesk/internal/common"
	"github.com/lmarchetti/docdesk/internal/export"
	"github.com/lmarchetti/docdesk/internal/extract"
	"github.com/lmarchetti/docdesk/internal/outreach"
	"github.com/lmarchetti/docdesk/internal/records"
	"github.com/lmarchetti/docdesk/internal/server"
	"github.com/lmarchetti/docdesk/internal/sheets"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file loaded", "error", err)
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	recordsSvc := records.NewService(store, recordsSrc, ledgerSrc, extractor, logger)

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
	outreachSvc := outreach.NewService(store, sender, logger)
	exportSvc := export.NewService(store, logger)

	// Warm the store once at startup; a cold failure is survivable, the
	// first successful refresh fills it in.
	func() {
		fetchCtx, cancel := context.WithTimeout(ctx, cfg.Sheet.FetchTimeout)
		defer cancel()
		if err := recordsSvc.Refresh(fetchCtx); err != nil {
			logger.Warn("initial refresh failed, serving empty store", "error", err)
		}
	}()

	srv := server.New(recordsSvc, outreachSvc, exportSvc, logger)
	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Handler(),
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("stopped")
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
