package server

import (
	"log/slog"
	"net/http"

	"github.com/lmarchetti/docdesk/internal/export"
	"github.com/lmarchetti/docdesk/internal/outreach"
	"github.com/lmarchetti/docdesk/internal/records"
)

// Server exposes the HTTP surface over the records, outreach and export
// services.
type Server struct {
	records  *records.Service
	outreach *outreach.Service
	export   *export.Service
	logger   *slog.Logger
}

func New(recordsSvc *records.Service, outreachSvc *outreach.Service, exportSvc *export.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		records:  recordsSvc,
		outreach: outreachSvc,
		export:   exportSvc,
		logger:   logger,
	}
}

// Handler builds the routed handler with the middleware stack applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/records", s.handleRecords)
	mux.HandleFunc("POST /api/capture", s.handleCapture)
	mux.HandleFunc("POST /api/emails", s.handleEmails)
	mux.HandleFunc("POST /api/refresh", s.handleRefresh)
	mux.HandleFunc("GET /api/export", s.handleExport)

	var h http.Handler = mux
	h = requestLogger(s.logger)(h)
	h = recovery(s.logger)(h)
	return h
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
