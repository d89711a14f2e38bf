package webhook

import (
	"encoding/json"
	"fmt"
	"strings"

	"deploy-monitor/internal/model"
)

// GitHubNormalizer maps GitHub webhook payloads to canonical events.
// Payload fields are read defensively: absent optional fields are
// omitted from metadata, never an error. Only an unparsable body fails.
type GitHubNormalizer struct{}

func NewGitHubNormalizer() *GitHubNormalizer {
	return &GitHubNormalizer{}
}

// Normalize dispatches on the X-GitHub-Event kind and returns the
// canonical event. Unrecognized kinds normalize to EventUnknown with the
// raw kind preserved in metadata.
func (n *GitHubNormalizer) Normalize(eventKind string, payload []byte) (*model.WebhookEvent, error) {
	switch eventKind {
	case "push":
		return n.normalizePush(payload)
	case "pull_request":
		return n.normalizePullRequest(payload)
	case "deployment_status":
		return n.normalizeDeploymentStatus(payload)
	default:
		if err := checkParsable(payload); err != nil {
			return nil, err
		}
		if eventKind == "" {
			eventKind = "unknown"
		}
		return &model.WebhookEvent{
			Type:    model.EventUnknown,
			Source:  model.SourceGitHub,
			Status:  model.StatusProcessing,
			Summary: fmt.Sprintf("Unhandled GitHub event: %s", eventKind),
			Metadata: map[string]interface{}{
				"raw_event": eventKind,
			},
		}, nil
	}
}

func (n *GitHubNormalizer) normalizePush(payload []byte) (*model.WebhookEvent, error) {
	var event struct {
		Ref        string `json:"ref"`
		After      string `json:"after"`
		Repository struct {
			FullName string `json:"full_name"`
		} `json:"repository"`
		Commits []struct {
			ID string `json:"id"`
		} `json:"commits"`
		Pusher struct {
			Name string `json:"name"`
		} `json:"pusher"`
	}

	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to parse push event: %w", err)
	}

	branch := strings.TrimPrefix(event.Ref, "refs/heads/")
	commits := len(event.Commits)

	metadata := map[string]interface{}{
		"repository": event.Repository.FullName,
		"commit_sha": event.After,
		"branch":     event.Ref,
		"commits":    commits,
	}
	if event.Pusher.Name != "" {
		metadata["pusher"] = event.Pusher.Name
	}

	// All branches are treated uniformly; deployment progress is reported
	// by the deployment platform's own webhook, not simulated here.
	return &model.WebhookEvent{
		Type:     model.EventPush,
		Source:   model.SourceGitHub,
		Status:   model.StatusSuccess,
		Summary:  fmt.Sprintf("%d commits pushed to %s", commits, branch),
		Metadata: metadata,
	}, nil
}

func (n *GitHubNormalizer) normalizePullRequest(payload []byte) (*model.WebhookEvent, error) {
	var event struct {
		Action      string `json:"action"`
		Number      int    `json:"number"`
		PullRequest struct {
			Title string `json:"title"`
		} `json:"pull_request"`
		Repository struct {
			FullName string `json:"full_name"`
		} `json:"repository"`
	}

	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to parse pull request event: %w", err)
	}

	return &model.WebhookEvent{
		Type:    model.EventPullRequest,
		Source:  model.SourceGitHub,
		Status:  model.StatusSuccess,
		Summary: fmt.Sprintf("PR %s: %s", event.Action, event.PullRequest.Title),
		Metadata: map[string]interface{}{
			"action":     event.Action,
			"pr_number":  event.Number,
			"repository": event.Repository.FullName,
		},
	}, nil
}

func (n *GitHubNormalizer) normalizeDeploymentStatus(payload []byte) (*model.WebhookEvent, error) {
	var event struct {
		DeploymentStatus struct {
			State       string `json:"state"`
			Environment string `json:"environment"`
		} `json:"deployment_status"`
	}

	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to parse deployment status event: %w", err)
	}

	state := event.DeploymentStatus.State

	var status model.EventStatus
	var summary string
	switch state {
	case "success":
		status = model.StatusSuccess
		summary = "Deployment completed successfully"
	case "failure":
		status = model.StatusError
		summary = "Deployment failed"
	default:
		status = model.StatusProcessing
		summary = fmt.Sprintf("Deployment %s", state)
	}

	return &model.WebhookEvent{
		Type:    model.EventDeploymentStatus,
		Source:  model.SourceGitHub,
		Status:  status,
		Summary: summary,
		Metadata: map[string]interface{}{
			"state":       state,
			"environment": event.DeploymentStatus.Environment,
		},
	}, nil
}

// checkParsable rejects structurally invalid JSON bodies for kinds that
// have no dedicated payload shape.
func checkParsable(payload []byte) error {
	if len(payload) == 0 {
		return nil
	}
	var raw json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return fmt.Errorf("failed to parse payload: %w", err)
	}
	return nil
}
