package webhook

import (
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"deploy-monitor/internal/model"
	pkgResponse "deploy-monitor/pkg/response"
)

const maxPayloadBytes = 1 << 20

// HandleGitHubWebhook processes GitHub webhook deliveries.
// @Summary GitHub webhook ingress
// @Description Verifies, normalizes and logs a GitHub webhook delivery
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param X-GitHub-Event header string true "GitHub event kind"
// @Param X-Hub-Signature-256 header string false "HMAC-SHA256 signature over the raw body"
// @Success 200 {object} response.Resp "Event processed"
// @Failure 401 {object} response.Resp "Invalid signature"
// @Router /webhook [post]
func (h *Handler) HandleGitHubWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	// The signature covers the exact request bytes, so the raw body must
	// be read before any parsing.
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPayloadBytes))
	if err != nil {
		h.l.Errorf(ctx, "Failed to read webhook body: %v", err)
		pkgResponse.InternalError(c, err)
		return
	}

	if err := h.security.ValidateIPAddress(c.Request); err != nil {
		h.l.Warnf(ctx, "GitHub webhook rejected: %v", err)
		pkgResponse.Unauthorized(c, "IP not allowed")
		return
	}

	signature := c.GetHeader(GitHubSignatureHeader)
	if err := h.security.ValidateGitHubSignature(body, signature); err != nil {
		h.l.Errorf(ctx, "GitHub signature verification failed: %v", err)
		h.record(c, model.WebhookEvent{
			Type:    model.EventAuthentication,
			Source:  model.SourceGitHub,
			Status:  model.StatusError,
			Summary: "Invalid webhook signature",
		})
		pkgResponse.Unauthorized(c, "Invalid signature")
		return
	}

	if err := h.security.CheckRateLimit("github"); err != nil {
		h.l.Warnf(ctx, "Rate limit exceeded: %v", err)
		pkgResponse.TooManyRequests(c)
		return
	}

	eventKind := c.GetHeader(GitHubEventHeader)
	event, err := h.github.Normalize(eventKind, body)
	if err != nil {
		h.l.Errorf(ctx, "Failed to normalize GitHub event: %v", err)
		h.record(c, model.WebhookEvent{
			Type:    model.EventError,
			Source:  model.SourceGitHub,
			Status:  model.StatusError,
			Summary: fmt.Sprintf("Webhook processing failed: %v", err),
			Metadata: map[string]interface{}{
				"error": err.Error(),
			},
		})
		pkgResponse.Error(c, err, nil)
		return
	}

	h.record(c, *event)
	pkgResponse.OK(c, ackFields(*event))
}

// HandleGitHubInfo answers liveness checks on the GitHub ingress path.
// @Summary GitHub webhook info
// @Tags Webhooks
// @Produce json
// @Success 200 {object} response.Resp
// @Router /webhook [get]
func (h *Handler) HandleGitHubInfo(c *gin.Context) {
	url := h.webhookURL("/webhook")
	pkgResponse.OK(c, gin.H{
		"message":          "GitHub webhook endpoint is active",
		"status":           "active",
		"url":              url,
		"supported_events": GitHubSupportedEvents,
		"setup_instructions": []string{
			"Go to GitHub repo, Settings, Webhooks",
			"Add webhook: " + url,
			"Content type: application/json",
			"Select events: Push, Pull requests, Deployments",
		},
		"timestamp": time.Now().UTC(),
	})
}

// HandleDigitalOceanWebhook processes DigitalOcean App Platform deliveries.
// @Summary DigitalOcean webhook ingress
// @Description Normalizes and logs a DigitalOcean App Platform event
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param X-DigitalOcean-Event header string false "Event kind; payload type field used as fallback"
// @Success 200 {object} response.Resp "Event processed"
// @Router /webhook/platform [post]
func (h *Handler) HandleDigitalOceanWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPayloadBytes))
	if err != nil {
		h.l.Errorf(ctx, "Failed to read webhook body: %v", err)
		pkgResponse.InternalError(c, err)
		return
	}

	if err := h.security.CheckRateLimit("digitalocean"); err != nil {
		h.l.Warnf(ctx, "Rate limit exceeded: %v", err)
		pkgResponse.TooManyRequests(c)
		return
	}

	eventKind := h.do.ResolveKind(c.GetHeader(DigitalOceanHeader), body)
	event, err := h.do.Normalize(eventKind, body)
	if err != nil {
		h.l.Errorf(ctx, "Failed to normalize DigitalOcean event: %v", err)
		h.record(c, model.WebhookEvent{
			Type:    model.EventError,
			Source:  model.SourceDigitalOcean,
			Status:  model.StatusError,
			Summary: fmt.Sprintf("Webhook processing failed: %v", err),
			Metadata: map[string]interface{}{
				"error": err.Error(),
			},
		})
		pkgResponse.Error(c, err, nil)
		return
	}

	h.record(c, *event)
	pkgResponse.OK(c, ackFields(*event))
}

// HandleDigitalOceanInfo answers liveness checks on the platform ingress
// path and lists the supported event kinds.
// @Summary DigitalOcean webhook info
// @Tags Webhooks
// @Produce json
// @Success 200 {object} response.Resp
// @Router /webhook/platform [get]
func (h *Handler) HandleDigitalOceanInfo(c *gin.Context) {
	url := h.webhookURL("/webhook/platform")
	pkgResponse.OK(c, gin.H{
		"message":          "DigitalOcean webhook endpoint is active",
		"status":           "active",
		"url":              url,
		"supported_events": DigitalOceanSupportedEvents,
		"setup_instructions": []string{
			"Open your App Platform app, Settings, Notifications",
			"Add a webhook destination: " + url,
			"Select deployment and build events",
		},
		"timestamp": time.Now().UTC(),
	})
}

// record logs an event through the configured recorder. Recording
// failures must never fail the webhook acknowledgement: providers retry
// aggressively on non-2xx, so a secondary logging failure is only
// reported operationally.
func (h *Handler) record(c *gin.Context, event model.WebhookEvent) {
	if _, err := h.recorder.Record(c.Request.Context(), event); err != nil {
		h.l.Errorf(c.Request.Context(), "Failed to log webhook event: %v", err)
	}
}

// ackFields builds the acknowledgement body for a processed event.
func ackFields(event model.WebhookEvent) gin.H {
	meta := func(key string) interface{} {
		if event.Metadata == nil {
			return nil
		}
		return event.Metadata[key]
	}

	switch event.Type {
	case model.EventPush:
		return gin.H{
			"message":    "Push event processed",
			"repository": meta("repository"),
			"branch":     meta("branch"),
			"commits":    meta("commits"),
		}
	case model.EventPullRequest:
		return gin.H{
			"message": "Pull request event processed",
			"action":  meta("action"),
			"pr":      meta("pr_number"),
		}
	case model.EventDeploymentStatus:
		return gin.H{
			"message":     "Deployment event processed",
			"state":       meta("state"),
			"environment": meta("environment"),
		}
	case model.EventDeploymentStarted, model.EventDeploymentCompleted, model.EventDeploymentFailed,
		model.EventBuildCompleted, model.EventBuildFailed:
		ack := gin.H{
			"message": fmt.Sprintf("%s notification processed", event.Summary),
			"app_id":  meta("app_id"),
		}
		if url := meta("live_url"); url != nil {
			ack["live_url"] = url
		}
		if errText := meta("error"); errText != nil {
			ack["error"] = errText
		}
		return ack
	default:
		return gin.H{
			"message": "Event received but not handled",
		}
	}
}
