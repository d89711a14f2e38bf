package model

import "time"

// EventSource identifies the platform that delivered a webhook.
type EventSource string

const (
	SourceGitHub       EventSource = "github"
	SourceDigitalOcean EventSource = "digitalocean"
)

// EventStatus is the processing outcome carried by an event.
type EventStatus string

const (
	StatusSuccess    EventStatus = "success"
	StatusError      EventStatus = "error"
	StatusProcessing EventStatus = "processing"
)

// EventType is the canonical event kind after normalization.
type EventType string

const (
	EventPush             EventType = "push"
	EventPullRequest      EventType = "pull_request"
	EventDeploymentStatus EventType = "deployment_status"

	EventDeploymentStarted   EventType = "deployment.started"
	EventDeploymentCompleted EventType = "deployment.completed"
	EventDeploymentFailed    EventType = "deployment.failed"
	EventBuildCompleted      EventType = "build.completed"
	EventBuildFailed         EventType = "build.failed"

	// EventAuthentication records a rejected webhook delivery.
	EventAuthentication EventType = "authentication"
	// EventError records a processing failure.
	EventError EventType = "error"
	// EventUnknown is the catch-all for unrecognized provider kinds.
	EventUnknown EventType = "unknown"
)

// WebhookEvent is the canonical record every provider payload is
// normalized into. ID and Timestamp are assigned by the event log at
// append time; events are immutable once appended.
type WebhookEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Source    EventSource            `json:"source"`
	Status    EventStatus            `json:"status"`
	Summary   string                 `json:"summary"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// EventListItem is the reduced shape returned by the status listing.
// Metadata is deliberately dropped to keep polling responses small.
type EventListItem struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Source    EventSource `json:"source"`
	Timestamp time.Time   `json:"timestamp"`
	Status    EventStatus `json:"status"`
	Summary   string      `json:"summary"`
}

// ListItem returns the reduced listing shape of an event.
func (e WebhookEvent) ListItem() EventListItem {
	return EventListItem{
		ID:        e.ID,
		Type:      e.Type,
		Source:    e.Source,
		Timestamp: e.Timestamp,
		Status:    e.Status,
		Summary:   e.Summary,
	}
}
