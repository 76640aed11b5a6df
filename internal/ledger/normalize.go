package ledger

import (
	"strconv"
	"strings"
)

// NormalizeAmount coerces a raw spreadsheet cell into a decimal amount.
// The ledger is user- and OCR-generated, so amounts arrive in mixed locale
// formats: "1234.56", "1234,56", "1.234,56". Anything unparseable collapses
// to zero; a single bad cell must never abort an aggregate.
func NormalizeAmount(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if strings.Contains(s, ",") {
		// Comma decimal; a dot alongside it is a thousands separator.
		if strings.Contains(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
		}
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
