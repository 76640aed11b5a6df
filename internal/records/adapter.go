package records

import (
	"strings"

	"github.com/lmarchetti/docdesk/constants"
	"github.com/lmarchetti/docdesk/internal/entity"
	"github.com/lmarchetti/docdesk/internal/ledger"
)

// The records tab follows a first-row-is-header convention and is addressed
// by column name, unlike the positional ledger tab.

// FromTable maps a header-first raw table into document records. Header
// matching is case-insensitive; missing columns yield zero values so a
// partially filled sheet still loads.
func FromTable(table [][]string) []entity.DocumentRecord {
	if len(table) < 2 {
		return nil
	}
	idx := make(map[string]int, len(table[0]))
	for i, h := range table[0] {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	col := func(rec []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	recs := make([]entity.DocumentRecord, 0, len(table)-1)
	for _, rec := range table[1:] {
		status := constants.RecordStatus(col(rec, "status"))
		if status == "" {
			status = constants.StatusNew
		}
		recs = append(recs, entity.DocumentRecord{
			UniqueKey: col(rec, "uniquekey"),
			Vendor:    col(rec, "vendor"),
			Date:      col(rec, "date"),
			Total:     ledger.NormalizeAmount(col(rec, "total")),
			Status:    status,
			Email:     col(rec, "email"),
			Timestamp: col(rec, "timestamp"),
			RawText:   col(rec, "rawtext"),
		})
	}
	return recs
}
