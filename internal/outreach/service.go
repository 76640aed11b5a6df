package outreach

import (
	"context"
	"log/slog"

	"github.com/lmarchetti/docdesk/internal/entity"
	"github.com/lmarchetti/docdesk/internal/records"
)

// SendFailure is one undeliverable item of a batch.
type SendFailure struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// SendReport is the per-batch outcome. Partial failure is the normal case:
// both subsets are reported and neither aborts the other.
type SendReport struct {
	Sent   []string      `json:"sent"`
	Failed []SendFailure `json:"failed"`
}

// Service composes and sends semi-automatic outreach emails for selected
// records and transitions the delivered ones to EMAILED.
type Service struct {
	store  *records.Store
	sender Sender
	logger *slog.Logger
}

func NewService(store *records.Store, sender Sender, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, sender: sender, logger: logger}
}

// SendBatch renders the body template per record and sends one message per
// key. Records that are missing, lack an address, or fail delivery land in
// Failed with a reason; everything delivered is marked EMAILED.
func (s *Service) SendBatch(ctx context.Context, keys []string, subject, body string) SendReport {
	report := SendReport{Sent: []string{}, Failed: []SendFailure{}}
	if s.sender == nil {
		for _, key := range keys {
			report.Failed = append(report.Failed, SendFailure{Key: key, Reason: "no sender configured"})
		}
		return report
	}

	byKey := make(map[string]entity.DocumentRecord)
	for _, rec := range s.store.Snapshot() {
		byKey[rec.UniqueKey] = rec
	}

	for _, key := range keys {
		rec, ok := byKey[key]
		if !ok {
			report.Failed = append(report.Failed, SendFailure{Key: key, Reason: "record not found"})
			continue
		}
		if rec.Email == "" {
			report.Failed = append(report.Failed, SendFailure{Key: key, Reason: "no email address"})
			continue
		}
		rendered := RenderTemplate(body, rec)
		if err := s.sender.Send(ctx, rec.Email, subject, rendered); err != nil {
			s.logger.Warn("outreach.send.failed", "unique_key", key, "error", err)
			report.Failed = append(report.Failed, SendFailure{Key: key, Reason: err.Error()})
			continue
		}
		report.Sent = append(report.Sent, key)
	}

	if len(report.Sent) > 0 {
		s.store.MarkEmailed(report.Sent)
	}
	s.logger.Info("outreach.batch.done", "sent", len(report.Sent), "failed", len(report.Failed))
	return report
}
