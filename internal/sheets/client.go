// Package sheets mirrors incoming orders to an external spreadsheet through
// a webhook (a Google Apps Script endpoint in production). The mirror is a
// best-effort side channel: failures are logged by the caller and never
// affect the order write.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	webhookURL string
	apiKey     string
	httpClient *http.Client
}

// MirrorRow is the denormalized order snapshot appended to the sheet.
type MirrorRow struct {
	MirrorID    string          `json:"mirror_id"`
	OrderID     int64           `json:"order_id"`
	ShopOrderID string          `json:"shop_order_id,omitempty"`
	Email       string          `json:"email,omitempty"`
	MapStyle    string          `json:"map_style,omitempty"`
	MapSize     string          `json:"map_size,omitempty"`
	TextFront   string          `json:"text_front,omitempty"`
	TextBack    string          `json:"text_back,omitempty"`
	Pins        json.RawMessage `json:"pins,omitempty"`
	PreviewURL  string          `json:"preview_url"`
	CreatedAt   time.Time       `json:"created_at"`
}

func NewClient(webhookURL, apiKey string) *Client {
	return &Client{
		webhookURL: webhookURL,
		apiKey:     apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Enabled reports whether a webhook is configured. Safe on a nil client so
// callers can skip the mirror when the collaborator is absent.
func (c *Client) Enabled() bool {
	return c != nil && c.webhookURL != ""
}

func (c *Client) AppendRow(ctx context.Context, row MirrorRow) error {
	payload, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to marshal mirror row: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sheet webhook returned %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
