package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shub-krishan208/pale-tsg-v2/internal/wire"
)

// Client posts event batches to the backend's ingest endpoint. The gate
// authenticates with a shared key; there is no per-user auth on this link.
type Client struct {
	url    string
	apiKey string
	http   *http.Client
}

func NewClient(syncURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		url:    syncURL,
		apiKey: apiKey,
		http:   &http.Client{Timeout: timeout},
	}
}

// PostEvents ships one batch and returns the backend's ack report. Any
// non-2xx reply is an error carrying the status and response body, so the
// retry log shows what the backend said.
func (c *Client) PostEvents(ctx context.Context, events []wire.Event) (*wire.SyncResponse, error) {
	body, err := json.Marshal(wire.SyncRequest{Events: events})
	if err != nil {
		return nil, fmt.Errorf("failed to encode sync request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build sync request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GATE-API-KEY", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach backend: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read sync response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = resp.Status
		}
		return nil, fmt.Errorf("HTTPError %d: %s", resp.StatusCode, msg)
	}

	var out wire.SyncResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode sync response: %w", err)
	}
	return &out, nil
}
