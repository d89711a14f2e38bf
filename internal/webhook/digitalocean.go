package webhook

import (
	"encoding/json"
	"fmt"
	"strings"

	"deploy-monitor/internal/model"
)

// DigitalOceanNormalizer maps App Platform webhook payloads to canonical
// events. The platform has shipped the same logical events under
// several kind names over time (`app.deployment.completed`,
// `deployment.completed`); all historical spellings normalize to the
// same canonical type.
type DigitalOceanNormalizer struct{}

func NewDigitalOceanNormalizer() *DigitalOceanNormalizer {
	return &DigitalOceanNormalizer{}
}

// doPayload is the loose superset of fields the platform sends across
// event kinds. Every field is optional.
type doPayload struct {
	Type string `json:"type"`
	App  struct {
		ID      string `json:"id"`
		LiveURL string `json:"live_url"`
	} `json:"app"`
	Deployment struct {
		ID    string `json:"id"`
		Error string `json:"error"`
	} `json:"deployment"`
	Build struct {
		ID    string `json:"id"`
		Error string `json:"error"`
	} `json:"build"`
}

// ResolveKind returns the event kind for a delivery, preferring the
// header and falling back to the payload-embedded type field.
func (n *DigitalOceanNormalizer) ResolveKind(headerKind string, payload []byte) string {
	if headerKind != "" {
		return headerKind
	}
	var p doPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return ""
	}
	return p.Type
}

// Normalize maps a delivery to the canonical event. Unrecognized kinds
// normalize to EventUnknown with processing status.
func (n *DigitalOceanNormalizer) Normalize(eventKind string, payload []byte) (*model.WebhookEvent, error) {
	var p doPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("failed to parse payload: %w", err)
	}

	switch canonicalKind(eventKind) {
	case "deployment.started":
		return n.event(p, model.EventDeploymentStarted, model.StatusProcessing,
			"Deployment started on DigitalOcean", nil), nil

	case "deployment.completed":
		extra := map[string]interface{}{}
		if p.App.LiveURL != "" {
			extra["live_url"] = p.App.LiveURL
		}
		return n.event(p, model.EventDeploymentCompleted, model.StatusSuccess,
			"Deployment completed successfully", extra), nil

	case "deployment.failed":
		extra := map[string]interface{}{}
		if p.Deployment.Error != "" {
			extra["error"] = p.Deployment.Error
		}
		return n.event(p, model.EventDeploymentFailed, model.StatusError,
			"Deployment failed", extra), nil

	case "build.completed":
		return n.event(p, model.EventBuildCompleted, model.StatusSuccess,
			"Build completed successfully", nil), nil

	case "build.failed":
		extra := map[string]interface{}{}
		if p.Build.Error != "" {
			extra["error"] = p.Build.Error
		}
		return n.event(p, model.EventBuildFailed, model.StatusError,
			"Build failed", extra), nil

	default:
		if eventKind == "" {
			eventKind = "unknown"
		}
		return &model.WebhookEvent{
			Type:    model.EventUnknown,
			Source:  model.SourceDigitalOcean,
			Status:  model.StatusProcessing,
			Summary: fmt.Sprintf("Unhandled DigitalOcean event: %s", eventKind),
			Metadata: map[string]interface{}{
				"raw_event": eventKind,
			},
		}, nil
	}
}

func (n *DigitalOceanNormalizer) event(p doPayload, t model.EventType, status model.EventStatus, summary string, extra map[string]interface{}) *model.WebhookEvent {
	metadata := map[string]interface{}{}
	if p.App.ID != "" {
		metadata["app_id"] = p.App.ID
	}
	if p.Deployment.ID != "" {
		metadata["deployment_id"] = p.Deployment.ID
	}
	if p.Build.ID != "" {
		metadata["build_id"] = p.Build.ID
	}
	for k, v := range extra {
		metadata[k] = v
	}

	return &model.WebhookEvent{
		Type:     t,
		Source:   model.SourceDigitalOcean,
		Status:   status,
		Summary:  summary,
		Metadata: metadata,
	}
}

// canonicalKind strips the historical `app.` prefix so both naming
// conventions dispatch identically.
func canonicalKind(kind string) string {
	return strings.TrimPrefix(kind, "app.")
}
