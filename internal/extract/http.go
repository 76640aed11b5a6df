package extract

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// HTTPExtractor calls an external OCR endpoint that accepts a base64 image
// and answers with the canonical {vendor, date, total} shape. The response
// is schema-validated before use; content is never second-guessed.
type HTTPExtractor struct {
	client *http.Client
	url    string
	apiKey string
	logger *slog.Logger
}

func NewHTTPExtractor(url, apiKey string, timeout time.Duration, logger *slog.Logger) *HTTPExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &HTTPExtractor{
		client: &http.Client{Timeout: timeout},
		url:    url,
		apiKey: apiKey,
		logger: logger,
	}
}

func (e *HTTPExtractor) ExtractFields(ctx context.Context, filename string, image []byte) (Fields, error) {
	reqID := uuid.New().String()
	start := time.Now()

	body := map[string]any{
		"filename":    filename,
		"imageBase64": base64.StdEncoding.EncodeToString(image),
	}
	bs, err := json.Marshal(body)
	if err != nil {
		return Fields{}, fmt.Errorf("encode json: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(bs))
	if err != nil {
		return Fields{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	e.logger.Info("ocr.http.request",
		"req_id", reqID,
		"filename", filename,
		"content_length", len(bs),
	)

	resp, err := e.client.Do(req)
	if err != nil {
		e.logger.Error("ocr.http.send_error", "req_id", reqID, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return Fields{}, fmt.Errorf("ocr request: %w", err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			e.logger.Warn("ocr.http.body_close_error", "req_id", reqID, "error", err)
		}
	}(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Fields{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		e.logger.Error("ocr.http.status_error", "req_id", reqID, "status", resp.StatusCode)
		return Fields{}, fmt.Errorf("ocr endpoint returned status %d", resp.StatusCode)
	}

	fields, err := ParseFields(raw)
	if err != nil {
		e.logger.Error("ocr.http.shape_error", "req_id", reqID, "error", err)
		return Fields{}, err
	}

	e.logger.Info("ocr.http.ok",
		"req_id", reqID,
		"vendor", fields.Vendor,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return fields, nil
}

// ParseFields validates raw extractor output against the canonical schema
// and decodes it. Numeric totals are stringified; normalization is the
// aggregation layer's job.
func ParseFields(raw []byte) (Fields, error) {
	if err := ValidateJSONAgainstSchema(BuildFieldsJSONSchema(), raw); err != nil {
		return Fields{}, fmt.Errorf("extraction shape: %w", err)
	}
	var payload struct {
		Vendor  string `json:"vendor"`
		Date    string `json:"date"`
		Total   any    `json:"total"`
		RawText string `json:"rawText"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Fields{}, fmt.Errorf("decode extraction: %w", err)
	}
	total := ""
	switch v := payload.Total.(type) {
	case string:
		total = v
	case float64:
		total = fmt.Sprint(v)
	}
	return Fields{
		Vendor:  payload.Vendor,
		Date:    payload.Date,
		Total:   total,
		RawText: payload.RawText,
	}, nil
}
