package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lurelabs/lurebox/pkg/httputil"
)

// Webhook delivers final reports to an external HTTP endpoint with a single
// POST. Delivery is best-effort; retry policy belongs to the consumer.
type Webhook struct {
	url    string
	apiKey string
	client *http.Client
}

// NewWebhook creates a webhook reporter targeting url. apiKey is optional
// and sent as a Bearer token when set.
func NewWebhook(url, apiKey string) *Webhook {
	return &Webhook{
		url:    url,
		apiKey: apiKey,
		client: httputil.FastClient(),
	}
}

// Deliver posts the report as JSON. A non-2xx status is an error.
func (w *Webhook) Deliver(ctx context.Context, f *Final) error {
	payload, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if w.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+w.apiKey)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post report: %w", err)
	}
	defer httputil.DrainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("report endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
