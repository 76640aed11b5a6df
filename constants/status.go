package constants

// RecordStatus is the canonical outreach status for a document record.
type RecordStatus string

// Stable values (these exact strings travel to and from the sheet).
const (
	StatusNew     RecordStatus = "NEW"     // created, not yet contacted
	StatusEmailed RecordStatus = "EMAILED" // outreach email sent successfully
)

// IsValid reports whether s is one of the known status values.
func (s RecordStatus) IsValid() bool {
	return s == StatusNew || s == StatusEmailed
}
