package records

import (
	"strings"

	"github.com/lmarchetti/docdesk/constants"
	"github.com/lmarchetti/docdesk/internal/entity"
)

// Filter is the compound search predicate. Predicates AND-combine and each
// one is independently optional; the zero value matches everything.
//
// MaxTotal needs ApplyMax because zero is a legitimate upper bound: a
// sentinel cannot tell "no max" apart from "max of zero".
type Filter struct {
	VendorContains string
	Status         constants.RecordStatus
	MinTotal       float64 // applied only when > 0
	MaxTotal       float64
	ApplyMax       bool
}

// IsZero reports whether no predicate is set.
func (f Filter) IsZero() bool {
	return f.VendorContains == "" && f.Status == "" && f.MinTotal <= 0 && !f.ApplyMax
}

// Search returns the records satisfying every set predicate, preserving the
// original store order. It is a stable filter: no implicit sort, and with no
// predicates set the input comes back unchanged.
func Search(recs []entity.DocumentRecord, f Filter) []entity.DocumentRecord {
	if f.IsZero() {
		return recs
	}
	needle := strings.ToLower(f.VendorContains)
	out := make([]entity.DocumentRecord, 0, len(recs))
	for _, r := range recs {
		if needle != "" && !strings.Contains(strings.ToLower(r.Vendor), needle) {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.MinTotal > 0 && r.Total < f.MinTotal {
			continue
		}
		if f.ApplyMax && r.Total > f.MaxTotal {
			continue
		}
		out = append(out, r)
	}
	return out
}
