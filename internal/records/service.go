package records

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lmarchetti/docdesk/constants"
	"github.com/lmarchetti/docdesk/internal/common"
	"github.com/lmarchetti/docdesk/internal/entity"
	"github.com/lmarchetti/docdesk/internal/extract"
	"github.com/lmarchetti/docdesk/internal/ledger"
	"github.com/lmarchetti/docdesk/internal/sheets"
)

// Service orchestrates the record store against its collaborators: the
// spreadsheet source chain for refresh and the OCR extractor for capture.
type Service struct {
	store      *Store
	recordsSrc sheets.RowSource
	ledgerSrc  sheets.RowSource
	extractor  extract.FieldExtractor
	logger     *slog.Logger
}

func NewService(store *Store, recordsSrc, ledgerSrc sheets.RowSource, extractor extract.FieldExtractor, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:      store,
		recordsSrc: recordsSrc,
		ledgerSrc:  ledgerSrc,
		extractor:  extractor,
		logger:     logger,
	}
}

// Store exposes the underlying record store to sibling services.
func (s *Service) Store() *Store {
	return s.store
}

// Refresh reloads the record table and the ledger table from the external
// source. Stale beats empty: nothing is applied unless every fetch
// succeeds, so a failed reload leaves the last-known-good tables in place
// and surfaces the error.
func (s *Service) Refresh(ctx context.Context) error {
	start := time.Now()

	table, err := s.recordsSrc.Fetch(ctx)
	if err != nil {
		s.logger.Error("records.refresh.failed", "table", "records", "error", err)
		return common.WrapError(err, "refresh records")
	}
	recs := FromTable(table)

	var ledgerRows []ledger.Row
	if s.ledgerSrc != nil {
		lt, err := s.ledgerSrc.Fetch(ctx)
		if err != nil {
			s.logger.Error("records.refresh.failed", "table", "ledger", "error", err)
			return common.WrapError(err, "refresh ledger")
		}
		ledgerRows = ledger.FromTable(lt)
	}

	s.store.ReplaceAll(recs)
	s.store.ReplaceLedger(ledgerRows)
	s.logger.Info("records.refresh.ok",
		"records", len(recs),
		"ledger_rows", len(ledgerRows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// CaptureResult reports the outcome of a capture-and-extract flow.
type CaptureResult struct {
	UniqueKey string         `json:"uniqueKey"`
	Dedup     bool           `json:"dedup"`
	Extracted extract.Fields `json:"extracted"`
}

// Capture runs OCR over a scanned image and appends exactly one NEW record,
// unless an identical document (same vendor, date and total) is already in
// the store. In that case the existing key is returned with Dedup set and
// nothing is written.
func (s *Service) Capture(ctx context.Context, filename string, image []byte) (CaptureResult, error) {
	if s.extractor == nil {
		return CaptureResult{}, common.NewAppError("OCR_UNCONFIGURED", "no extraction endpoint configured", common.ErrUnavailable)
	}
	if len(image) == 0 {
		return CaptureResult{}, common.NewAppError("CAPTURE_EMPTY", "image is empty", common.ErrInvalidInput)
	}

	fields, err := s.extractor.ExtractFields(ctx, filename, image)
	if err != nil {
		return CaptureResult{}, common.WrapError(err, "extract fields")
	}

	total := ledger.NormalizeAmount(fields.Total)
	vendor := strings.TrimSpace(fields.Vendor)
	date := strings.TrimSpace(fields.Date)

	for _, r := range s.store.Snapshot() {
		if r.Vendor == vendor && r.Date == date && r.Total == total {
			s.logger.Info("records.capture.dedup", "unique_key", r.UniqueKey, "vendor", vendor)
			return CaptureResult{UniqueKey: r.UniqueKey, Dedup: true, Extracted: fields}, nil
		}
	}

	rec := entity.DocumentRecord{
		UniqueKey: uuid.New().String(),
		Vendor:    vendor,
		Date:      date,
		Total:     total,
		Status:    constants.StatusNew,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RawText:   fields.RawText,
	}
	s.store.Append(rec)

	s.logger.Info("records.capture.ok", "unique_key", rec.UniqueKey, "vendor", vendor, "total", total)
	return CaptureResult{UniqueKey: rec.UniqueKey, Extracted: fields}, nil
}

// Dashboard is the whole-table view: every record plus the aggregate
// metrics and the reconciled ledger summary.
type Dashboard struct {
	Rows []entity.DocumentRecord `json:"rows"`

	RowCount    int     `json:"rowCount"`
	VendorCount int     `json:"vendorCount"`
	TotalSum    float64 `json:"totalSum"`
	NewCount    int     `json:"newCount"`

	Ledger        ledger.Summary `json:"ledger"`
	LedgerColumns []string       `json:"ledgerColumns"`
	LedgerRows    []ledger.Row   `json:"ledgerRows"`
}

// Dashboard computes the whole-table summary over current snapshots.
func (s *Service) Dashboard(_ context.Context) Dashboard {
	rows := s.store.Snapshot()
	ledgerRows := s.store.LedgerSnapshot()

	vendors := make(map[string]struct{})
	var totalSum float64
	newCount := 0
	for _, r := range rows {
		if v := strings.TrimSpace(r.Vendor); v != "" {
			vendors[v] = struct{}{}
		}
		totalSum += r.Total
		if r.Status == constants.StatusNew {
			newCount++
		}
	}

	return Dashboard{
		Rows:          rows,
		RowCount:      len(rows),
		VendorCount:   len(vendors),
		TotalSum:      totalSum,
		NewCount:      newCount,
		Ledger:        ledger.ComputeSummary(ledgerRows),
		LedgerColumns: ledger.Columns(),
		LedgerRows:    ledgerRows,
	}
}

// Search applies the compound filter over a snapshot of the store.
func (s *Service) Search(_ context.Context, f Filter) []entity.DocumentRecord {
	return Search(s.store.Snapshot(), f)
}
