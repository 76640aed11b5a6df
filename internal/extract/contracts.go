package extract

import "context"

// Fields is the canonical shape the OCR collaborator returns for one
// scanned document. The core validates shape, not content.
type Fields struct {
	Vendor  string `json:"vendor"`
	Date    string `json:"date"`
	Total   string `json:"total"` // raw amount text, normalized downstream
	RawText string `json:"rawText,omitempty"`
}

// FieldExtractor turns a captured image into canonical document fields.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, filename string, image []byte) (Fields, error)
}
