package sheets

import "context"

// RowSource fetches a raw header-first table from the external spreadsheet.
// A fetch is a single in-flight call bounded by the caller's context; no
// retries happen at this layer.
type RowSource interface {
	Name() string
	Fetch(ctx context.Context) ([][]string, error)
}
