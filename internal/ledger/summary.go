package ledger

// Summary holds the dashboard aggregate over the ledger.
type Summary struct {
	InvoiceCount    int     `json:"invoiceCount"`
	VendorPairCount int     `json:"vendorPairCount"`
	TotalSpend      float64 `json:"totalSpend"`
}

// ComputeSummary aggregates a normalized ledger. The document total is
// repeated on every line-item of a document, so spend counts it once per
// identity key, first occurrence in row order. Rows without an
// identity contribute no spend.
func ComputeSummary(rows []Row) Summary {
	s := Summary{
		InvoiceCount:    DistinctInvoices(rows),
		VendorPairCount: DistinctVendorPairs(rows),
	}
	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		key, ok := IdentityKey(r)
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		s.TotalSpend += NormalizeAmount(r.DocumentTotal)
	}
	return s
}
