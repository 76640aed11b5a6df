package outreach

import (
	"fmt"
	"strings"

	"github.com/lmarchetti/docdesk/internal/entity"
)

// RenderTemplate substitutes a record's fields into body. Substitution is
// literal token replacement, deliberately not a templating engine, to keep
// the behavior identical to what senders preview. Unknown tokens pass
// through untouched.
func RenderTemplate(body string, rec entity.DocumentRecord) string {
	r := strings.NewReplacer(
		"{{vendor}}", rec.Vendor,
		"{{date}}", rec.Date,
		"{{total}}", FormatTotal(rec.Total),
		"{{uniqueKey}}", rec.UniqueKey,
	)
	return r.Replace(body)
}

// FormatTotal renders a normalized amount for display and templating.
func FormatTotal(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
