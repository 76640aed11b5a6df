package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/lmarchetti/docdesk/internal/records"
)

// Service produces XLSX bytes for record exports.
type Service struct {
	store  *records.Store
	logger *slog.Logger
}

func NewService(store *records.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// RecordsXLSX returns an XLSX workbook (as bytes) of the current record
// table, optionally filtered. Raw OCR text stays out of the export; it is
// audit data, not tabular data.
func (s *Service) RecordsXLSX(filter records.Filter) ([]byte, error) {
	start := time.Now()

	recs := records.Search(s.store.Snapshot(), filter)

	f := excelize.NewFile()
	const sheet = "Records"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Unique Key",
		"Vendor",
		"Date",
		"Total",
		"Status",
		"Email",
		"Timestamp",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, r.UniqueKey)
		write(2, r.Vendor)
		write(3, r.Date)
		write(4, fmt.Sprintf("%.2f", r.Total))
		write(5, string(r.Status))
		write(6, r.Email)
		write(7, r.Timestamp)

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 38) // key
	_ = f.SetColWidth(sheet, "B", "B", 28) // vendor
	_ = f.SetColWidth(sheet, "C", "C", 14) // date
	_ = f.SetColWidth(sheet, "D", "D", 12) // total
	_ = f.SetColWidth(sheet, "E", "E", 10) // status
	_ = f.SetColWidth(sheet, "F", "G", 26) // email, timestamp

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
