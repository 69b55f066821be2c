package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mikey/llm-email-triage/internal/core"
	"go.uber.org/zap"
)

// maxResponseBody caps how much of an error response is kept for logging
const maxResponseBody = 4096

// Sink posts notification payloads as JSON to a webhook URL
type Sink struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewSink creates a new webhook sink
func NewSink(url string, client *http.Client, logger *zap.Logger) *Sink {
	if client == nil {
		client = http.DefaultClient
	}
	return &Sink{
		url:    url,
		client: client,
		logger: logger,
	}
}

// Send posts the payload. Any non-2xx answer is returned as *core.StatusError.
func (s *Sink) Send(ctx context.Context, payload *core.Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
		return &core.StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	s.logger.Debug("Webhook accepted payload", zap.Int("status", resp.StatusCode))
	return nil
}
