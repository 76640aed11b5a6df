package ledger

import "strings"

// keySeparator joins the two identity components. Unlikely to occur in
// invoice numbers or vendor names.
const keySeparator = "||"

// IdentityKey derives the dedup key collapsing line-items into one source
// document: the trimmed invoice number and vendor, joined. ok is false when
// either component is empty; such a row carries no reliable document
// identity and is excluded from identity-bearing aggregates.
func IdentityKey(r Row) (string, bool) {
	no := strings.TrimSpace(r.InvoiceNo)
	vendor := strings.TrimSpace(r.Vendor)
	if no == "" || vendor == "" {
		return "", false
	}
	return no + keySeparator + vendor, true
}

// DistinctInvoices counts distinct non-empty invoice numbers, independent
// of vendor. A row with an invoice number but no vendor still counts here
// even though it is excluded from pair and spend aggregates.
func DistinctInvoices(rows []Row) int {
	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		no := strings.TrimSpace(r.InvoiceNo)
		if no == "" {
			continue
		}
		seen[no] = struct{}{}
	}
	return len(seen)
}

// DistinctVendorPairs counts distinct identity keys.
func DistinctVendorPairs(rows []Row) int {
	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		key, ok := IdentityKey(r)
		if !ok {
			continue
		}
		seen[key] = struct{}{}
	}
	return len(seen)
}
