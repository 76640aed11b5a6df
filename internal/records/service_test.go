package records

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/lmarchetti/docdesk/constants"
	"github.com/lmarchetti/docdesk/internal/extract"
)

// stubSource serves canned tables or a canned error.
type stubSource struct {
	table [][]string
	err   error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Fetch(_ context.Context) ([][]string, error) {
	return s.table, s.err
}

// stubExtractor returns fixed fields.
type stubExtractor struct {
	fields extract.Fields
	err    error
}

func (s *stubExtractor) ExtractFields(_ context.Context, _ string, _ []byte) (extract.Fields, error) {
	return s.fields, s.err
}

func recordsTable(rows ...[]string) [][]string {
	table := [][]string{{"uniqueKey", "vendor", "date", "total", "status", "email", "timestamp", "rawText"}}
	return append(table, rows...)
}

func TestRefreshStaleOverEmpty(t *testing.T) {
	src := &stubSource{table: recordsTable(
		[]string{"k1", "V1", "01/02/2025", "100,50", "NEW", "v1@example.com", "", ""},
	)}
	svc := NewService(NewStore(), src, nil, nil, nil)

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("first Refresh() failed: %v", err)
	}
	before := svc.Store().Snapshot()
	if len(before) != 1 || before[0].Total != 100.5 {
		t.Fatalf("unexpected store after first refresh: %+v", before)
	}

	// The upstream starts failing; the store must keep its contents.
	src.table, src.err = nil, errors.New("fetch: 503")
	if err := svc.Refresh(context.Background()); err == nil {
		t.Fatal("second Refresh() should surface the fetch error")
	}
	after := svc.Store().Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("store changed across a failed refresh:\nbefore = %+v\n after = %+v", before, after)
	}
}

func TestRefreshLedgerFailureKeepsEverything(t *testing.T) {
	recSrc := &stubSource{table: recordsTable([]string{"k1", "V1", "", "10", "NEW", "", "", ""})}
	ledSrc := &stubSource{err: errors.New("permission denied")}
	svc := NewService(NewStore(), recSrc, ledSrc, nil, nil)

	if err := svc.Refresh(context.Background()); err == nil {
		t.Fatal("Refresh() should fail when the ledger fetch fails")
	}
	if svc.Store().Len() != 0 {
		t.Error("a partially successful refresh must not be applied")
	}
}

func TestCaptureAppendsNewRecord(t *testing.T) {
	ext := &stubExtractor{fields: extract.Fields{Vendor: "ACME", Date: "02/03/2025", Total: "12,50", RawText: "ACME 12,50"}}
	svc := NewService(NewStore(), &stubSource{}, nil, ext, nil)

	res, err := svc.Capture(context.Background(), "scan.jpg", []byte{0x1})
	if err != nil {
		t.Fatalf("Capture() failed: %v", err)
	}
	if res.Dedup {
		t.Error("first capture should not dedup")
	}
	if res.UniqueKey == "" {
		t.Error("capture must assign a unique key")
	}

	snap := svc.Store().Snapshot()
	if len(snap) != 1 {
		t.Fatalf("store has %d records, want 1", len(snap))
	}
	rec := snap[0]
	if rec.Vendor != "ACME" || rec.Total != 12.5 || rec.Status != constants.StatusNew {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.RawText != "ACME 12,50" {
		t.Error("raw OCR text should be retained for audit")
	}
}

func TestCaptureDedup(t *testing.T) {
	ext := &stubExtractor{fields: extract.Fields{Vendor: "ACME", Date: "02/03/2025", Total: "12,50"}}
	svc := NewService(NewStore(), &stubSource{}, nil, ext, nil)

	first, err := svc.Capture(context.Background(), "a.jpg", []byte{0x1})
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Capture(context.Background(), "b.jpg", []byte{0x2})
	if err != nil {
		t.Fatal(err)
	}

	if !second.Dedup {
		t.Error("identical document should dedup")
	}
	if second.UniqueKey != first.UniqueKey {
		t.Errorf("dedup should return the existing key, got %s want %s", second.UniqueKey, first.UniqueKey)
	}
	if svc.Store().Len() != 1 {
		t.Errorf("store has %d records, want 1", svc.Store().Len())
	}
}

func TestCaptureWithoutExtractor(t *testing.T) {
	svc := NewService(NewStore(), &stubSource{}, nil, nil, nil)
	if _, err := svc.Capture(context.Background(), "a.jpg", []byte{0x1}); err == nil {
		t.Error("Capture() without an extractor should fail")
	}
}

func TestDashboard(t *testing.T) {
	recSrc := &stubSource{table: recordsTable(
		[]string{"k1", "V1", "", "100", "NEW", "", "", ""},
		[]string{"k2", "V1", "", "50,5", "EMAILED", "", "", ""},
		[]string{"k3", "V2", "", "nonsense", "NEW", "", "", ""},
	)}
	ledSrc := &stubSource{table: [][]string{
		{"A", "B", "C", "D", "E", "F", "G", "H", "I"},
		{"", "F1", "", "V1", "", "", "", "", "100"},
		{"", "F1", "", "V1", "", "", "", "", "100"},
		{"", "F2", "", "V1", "", "", "", "", "50"},
	}}
	svc := NewService(NewStore(), recSrc, ledSrc, nil, nil)
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	dash := svc.Dashboard(context.Background())
	if dash.RowCount != 3 || dash.VendorCount != 2 || dash.NewCount != 2 {
		t.Errorf("unexpected KPIs: %+v", dash)
	}
	if dash.TotalSum != 150.5 {
		t.Errorf("TotalSum = %v, want 150.5 (malformed cell coerced to zero)", dash.TotalSum)
	}
	if dash.Ledger.InvoiceCount != 2 || dash.Ledger.VendorPairCount != 2 || dash.Ledger.TotalSpend != 150 {
		t.Errorf("unexpected ledger summary: %+v", dash.Ledger)
	}
	if len(dash.LedgerColumns) != 8 {
		t.Errorf("LedgerColumns has %d names, want 8", len(dash.LedgerColumns))
	}
}

func TestDashboardShortLedgerIsZero(t *testing.T) {
	recSrc := &stubSource{table: recordsTable()}
	ledSrc := &stubSource{table: [][]string{
		{"A", "B", "C", "D", "E"},
		{"x", "F1", "d", "V1", "100"},
	}}
	svc := NewService(NewStore(), recSrc, ledSrc, nil, nil)
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	dash := svc.Dashboard(context.Background())
	if dash.Ledger.InvoiceCount != 0 || dash.Ledger.VendorPairCount != 0 || dash.Ledger.TotalSpend != 0 {
		t.Errorf("short ledger should aggregate to zero, got %+v", dash.Ledger)
	}
	if len(dash.LedgerRows) != 0 {
		t.Errorf("detail table should be empty, got %d rows", len(dash.LedgerRows))
	}
	if len(dash.LedgerColumns) != 8 {
		t.Error("canonical columns must be present even for an empty detail table")
	}
}
