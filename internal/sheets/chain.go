package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lmarchetti/docdesk/internal/common"
)

// Chain tries each configured source in order and returns the first table
// that comes back. The public export goes first; the credentialed API is
// the fallback. With nothing configured the result is a permission error,
// not a silent empty table.
type Chain struct {
	sources []RowSource
	logger  *slog.Logger
}

func NewChain(logger *slog.Logger, sources ...RowSource) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	kept := make([]RowSource, 0, len(sources))
	for _, src := range sources {
		if src != nil {
			kept = append(kept, src)
		}
	}
	return &Chain{sources: kept, logger: logger}
}

func (c *Chain) Name() string { return "chain" }

func (c *Chain) Fetch(ctx context.Context) ([][]string, error) {
	if len(c.sources) == 0 {
		return nil, common.NewAppError("SHEET_ACCESS", "no spreadsheet source configured", common.ErrUnauthorized)
	}

	var errs []error
	for _, src := range c.sources {
		table, err := src.Fetch(ctx)
		if err == nil {
			return table, nil
		}
		c.logger.Warn("sheets.fetch.fallback", "source", src.Name(), "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
	}
	return nil, common.NewAppError("SHEET_ACCESS", "all spreadsheet sources failed", errors.Join(errs...))
}
