package entity

import "github.com/lmarchetti/docdesk/constants"

// DocumentRecord is one document-level entity in the record store, distinct
// from a ledger line-item. UniqueKey is assigned at creation and immutable;
// the only mutation a record ever sees is the NEW -> EMAILED transition.
type DocumentRecord struct {
	UniqueKey string                 `json:"uniqueKey"`
	Vendor    string                 `json:"vendor"`
	Date      string                 `json:"date"` // display-formatted, source locale; never used for arithmetic
	Total     float64                `json:"total"`
	Status    constants.RecordStatus `json:"status"`
	Email     string                 `json:"email,omitempty"`
	Timestamp string                 `json:"timestamp,omitempty"`

	// RawText is the unstructured OCR source, retained for audit. It is
	// kept in storage and in API payloads but excluded from tabular views.
	RawText string `json:"rawText,omitempty"`
}
