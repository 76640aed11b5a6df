package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lmarchetti/docdesk/constants"
	"github.com/lmarchetti/docdesk/internal/records"
)

// Query surface modes.
const (
	modeDashboard = "dashboard"
	modeSearch    = "search"
)

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = modeDashboard
	}

	switch mode {
	case modeDashboard:
		dash := s.records.Dashboard(r.Context())
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":            true,
			"rows":          dash.Rows,
			"rowCount":      dash.RowCount,
			"vendorCount":   dash.VendorCount,
			"totalSum":      dash.TotalSum,
			"newCount":      dash.NewCount,
			"ledger":        dash.Ledger,
			"ledgerColumns": dash.LedgerColumns,
			"ledgerRows":    dash.LedgerRows,
		})
	case modeSearch:
		filter, err := filterFromQuery(r.URL.Query())
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		rows := s.records.Search(r.Context(), filter)
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":    true,
			"rows":  rows,
			"count": len(rows),
		})
	default:
		writeError(w, http.StatusBadRequest, "unknown mode: "+mode)
	}
}

// filterPayload is the JSON filter object clients may pass in the "filters"
// query parameter. Pointers distinguish "absent" from a real zero: a null
// maxTotal means no upper bound, a zero maxTotal is a genuine threshold.
type filterPayload struct {
	Vendor   string   `json:"vendor"`
	Status   string   `json:"status"`
	MinTotal *float64 `json:"minTotal"`
	MaxTotal *float64 `json:"maxTotal"`
}

// filterFromQuery builds the search filter. A JSON "filters" parameter wins;
// otherwise the individual vendor/status/minTotal/maxTotal/applyMax
// parameters are read.
func filterFromQuery(q url.Values) (records.Filter, error) {
	if raw := q.Get("filters"); raw != "" {
		var p filterPayload
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return records.Filter{}, &badFilterError{"filters must be a JSON object"}
		}
		f := records.Filter{
			VendorContains: p.Vendor,
			Status:         constants.RecordStatus(p.Status),
		}
		if p.MinTotal != nil {
			f.MinTotal = *p.MinTotal
		}
		if p.MaxTotal != nil {
			f.MaxTotal = *p.MaxTotal
			f.ApplyMax = true
		}
		return f, nil
	}

	f := records.Filter{
		VendorContains: q.Get("vendor"),
		Status:         constants.RecordStatus(q.Get("status")),
	}
	if raw := q.Get("minTotal"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return records.Filter{}, &badFilterError{"minTotal must be a number"}
		}
		f.MinTotal = v
	}
	if raw := q.Get("maxTotal"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return records.Filter{}, &badFilterError{"maxTotal must be a number"}
		}
		f.MaxTotal = v
	}
	if raw := q.Get("applyMax"); raw == "true" || raw == "1" {
		f.ApplyMax = true
	}
	return f, nil
}

type badFilterError struct{ msg string }

func (e *badFilterError) Error() string { return e.msg }

func (s *Server) handleCapture(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Filename    string `json:"filename"`
		ImageBase64 string `json:"imageBase64"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ImageBase64 == "" {
		writeError(w, http.StatusBadRequest, "imageBase64 is required")
		return
	}
	image, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "imageBase64 is not valid base64")
		return
	}

	res, err := s.records.Capture(r.Context(), req.Filename, image)
	if err != nil {
		s.logger.Error("capture failed", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"dedup":     res.Dedup,
		"extracted": res.Extracted,
		"uniqueKey": res.UniqueKey,
	})
}

func (s *Server) handleEmails(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Keys    []string `json:"keys"`
		Subject string   `json:"subject"`
		Body    string   `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Keys) == 0 {
		writeError(w, http.StatusBadRequest, "keys is required")
		return
	}

	report := s.outreach.SendBatch(r.Context(), req.Keys, req.Subject, req.Body)
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":     true,
		"sent":   report.Sent,
		"failed": report.Failed,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.records.Refresh(r.Context()); err != nil {
		s.logger.Error("refresh failed", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":   true,
		"rows": s.records.Store().Len(),
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	data, err := s.export.RecordsXLSX(filter)
	if err != nil {
		s.logger.Error("export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="records.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
