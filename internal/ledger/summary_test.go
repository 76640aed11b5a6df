package ledger

import "testing"

// ledgerTable builds a header-first raw table with the canonical 9-column
// width. Each entry is {invoiceNo, vendor, documentTotal}.
func ledgerTable(entries ...[3]string) [][]string {
	table := [][]string{
		{"", "Invoice", "Date", "Vendor", "Article", "Qty", "Unit Price", "Line Total", "Document Total"},
	}
	for _, e := range entries {
		table = append(table, []string{"", e[0], "01/02/2025", e[1], "item", "1", e[2], e[2], e[2]})
	}
	return table
}

func TestComputeSummary(t *testing.T) {
	tests := []struct {
		name string
		rows []Row
		want Summary
	}{
		{
			name: "line items collapse to one document each",
			rows: FromTable(ledgerTable(
				[3]string{"F1", "V1", "100"},
				[3]string{"F1", "V1", "100"},
				[3]string{"F2", "V1", "50"},
			)),
			want: Summary{InvoiceCount: 2, VendorPairCount: 2, TotalSpend: 150},
		},
		{
			name: "empty ledger",
			rows: nil,
			want: Summary{},
		},
		{
			name: "row without vendor counts as invoice but carries no spend",
			rows: FromTable(ledgerTable(
				[3]string{"F1", "V1", "100"},
				[3]string{"F3", "", "999"},
			)),
			want: Summary{InvoiceCount: 2, VendorPairCount: 1, TotalSpend: 100},
		},
		{
			name: "row without invoice number is invisible to identity aggregates",
			rows: FromTable(ledgerTable(
				[3]string{"", "V1", "100"},
			)),
			want: Summary{InvoiceCount: 0, VendorPairCount: 0, TotalSpend: 0},
		},
		{
			name: "first occurrence wins on disagreeing totals",
			rows: FromTable(ledgerTable(
				[3]string{"F1", "V1", "100"},
				[3]string{"F1", "V1", "120"},
			)),
			want: Summary{InvoiceCount: 1, VendorPairCount: 1, TotalSpend: 100},
		},
		{
			name: "locale formatted totals",
			rows: FromTable(ledgerTable(
				[3]string{"F1", "V1", "1.234,50"},
				[3]string{"F2", "V2", "765,50"},
			)),
			want: Summary{InvoiceCount: 2, VendorPairCount: 2, TotalSpend: 2000},
		},
		{
			name: "same invoice number across vendors is two pairs",
			rows: FromTable(ledgerTable(
				[3]string{"F1", "V1", "100"},
				[3]string{"F1", "V2", "60"},
			)),
			want: Summary{InvoiceCount: 1, VendorPairCount: 2, TotalSpend: 160},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSummary(tt.rows)
			if got != tt.want {
				t.Errorf("ComputeSummary() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFromTableShortSheet(t *testing.T) {
	// A sheet with fewer than 9 columns is structurally empty: aggregation
	// yields the all-zero summary instead of failing.
	table := [][]string{
		{"Invoice", "Vendor", "Total", "Notes", "Extra"},
		{"F1", "V1", "100", "", ""},
	}
	rows := FromTable(table)
	if len(rows) != 0 {
		t.Fatalf("FromTable() returned %d rows for a 5-column sheet, want 0", len(rows))
	}
	if got := ComputeSummary(rows); got != (Summary{}) {
		t.Errorf("ComputeSummary() = %+v, want all-zero", got)
	}
	if cols := Columns(); len(cols) != 8 {
		t.Errorf("Columns() returned %d names, want 8", len(cols))
	}
}

func TestFromTableRaggedRows(t *testing.T) {
	table := [][]string{
		{"A", "B", "C", "D", "E", "F", "G", "H", "I"},
		{"", "F1", "01/02/2025", "V1"}, // short data row, padded
	}
	rows := FromTable(table)
	if len(rows) != 1 {
		t.Fatalf("FromTable() returned %d rows, want 1", len(rows))
	}
	if rows[0].InvoiceNo != "F1" || rows[0].Vendor != "V1" {
		t.Errorf("unexpected row mapping: %+v", rows[0])
	}
	if rows[0].DocumentTotal != "" {
		t.Errorf("missing trailing cell should be empty, got %q", rows[0].DocumentTotal)
	}
}

func TestIdentityKey(t *testing.T) {
	tests := []struct {
		name    string
		row     Row
		wantKey string
		wantOK  bool
	}{
		{"complete", Row{InvoiceNo: "F1", Vendor: "V1"}, "F1||V1", true},
		{"trimmed", Row{InvoiceNo: " F1 ", Vendor: " V1 "}, "F1||V1", true},
		{"missing vendor", Row{InvoiceNo: "F1"}, "", false},
		{"missing invoice", Row{Vendor: "V1"}, "", false},
		{"blank after trim", Row{InvoiceNo: "  ", Vendor: "  "}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := IdentityKey(tt.row)
			if key != tt.wantKey || ok != tt.wantOK {
				t.Errorf("IdentityKey(%+v) = (%q, %v), want (%q, %v)", tt.row, key, ok, tt.wantKey, tt.wantOK)
			}
		})
	}
}
