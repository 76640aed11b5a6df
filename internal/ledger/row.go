package ledger

// The source ledger is addressed by column offset (columns B..I). The
// positional mapping lives here and nowhere else, so a sheet layout change
// touches one file.

// minColumns is the minimum sheet width for a ledger to be structurally
// valid. Narrower sheets are treated as empty, never as an error.
const minColumns = 9

// Column offsets within a raw sheet row (column A is 0).
const (
	colInvoiceNo = 1 // B
	colDate      = 2 // C
	colVendor    = 3 // D
	colArticle   = 4 // E
	colQuantity  = 5 // F
	colUnitPrice = 6 // G
	colLineTotal = 7 // H
	colDocTotal  = 8 // I
)

// Row is one line-item from the external ledger sheet. Values are kept as
// raw cell text; normalization happens at aggregation time.
type Row struct {
	InvoiceNo     string `json:"invoiceNo"`
	InvoiceDate   string `json:"invoiceDate"`
	Vendor        string `json:"vendor"`
	Article       string `json:"article"`
	Quantity      string `json:"quantity"`
	UnitPrice     string `json:"unitPrice"`
	LineTotal     string `json:"lineTotal"`
	DocumentTotal string `json:"documentTotal"`
}

// Columns returns the canonical named columns of the detail table, in order.
func Columns() []string {
	return []string{
		"invoiceNo",
		"invoiceDate",
		"vendor",
		"article",
		"quantity",
		"unitPrice",
		"lineTotal",
		"documentTotal",
	}
}

// FromTable adapts a raw header-first positional table into ledger rows.
// A header narrower than minColumns marks the sheet structurally empty:
// every consumer gets a zero result. Ragged data rows are padded with
// empty cells.
func FromTable(table [][]string) []Row {
	if len(table) < 2 {
		return nil
	}
	if len(table[0]) < minColumns {
		return nil
	}
	rows := make([]Row, 0, len(table)-1)
	for _, rec := range table[1:] {
		rows = append(rows, Row{
			InvoiceNo:     cell(rec, colInvoiceNo),
			InvoiceDate:   cell(rec, colDate),
			Vendor:        cell(rec, colVendor),
			Article:       cell(rec, colArticle),
			Quantity:      cell(rec, colQuantity),
			UnitPrice:     cell(rec, colUnitPrice),
			LineTotal:     cell(rec, colLineTotal),
			DocumentTotal: cell(rec, colDocTotal),
		})
	}
	return rows
}

func cell(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}
