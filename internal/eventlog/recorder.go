package eventlog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"deploy-monitor/internal/model"
)

// Recorder is the write path webhook handlers use to log events. The
// in-process Store satisfies it; Client records to a remote instance
// over HTTP for split deployments.
type Recorder interface {
	Record(ctx context.Context, event model.WebhookEvent) (model.WebhookEvent, error)
}

// Client records events by POSTing them to another instance's
// /webhook/status endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client targeting the given base application URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type recordRequest struct {
	Type     model.EventType        `json:"type"`
	Source   model.EventSource      `json:"source"`
	Status   model.EventStatus      `json:"status"`
	Summary  string                 `json:"summary"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type recordResponse struct {
	Data struct {
		EventID string `json:"event_id"`
	} `json:"data"`
}

// Record sends the event to the remote status endpoint and returns it
// with the remotely assigned id filled in.
func (c *Client) Record(ctx context.Context, event model.WebhookEvent) (model.WebhookEvent, error) {
	body, err := json.Marshal(recordRequest{
		Type:     event.Type,
		Source:   event.Source,
		Status:   event.Status,
		Summary:  event.Summary,
		Metadata: event.Metadata,
	})
	if err != nil {
		return event, fmt.Errorf("failed to encode event: %w", err)
	}

	url := c.baseURL + "/webhook/status"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return event, fmt.Errorf("failed to create record request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return event, fmt.Errorf("failed to record event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return event, fmt.Errorf("event log responded with status %d", resp.StatusCode)
	}

	var rr recordResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return event, fmt.Errorf("failed to decode record response: %w", err)
	}

	event.ID = rr.Data.EventID
	return event, nil
}
