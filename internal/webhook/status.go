package webhook

import (
	"github.com/gin-gonic/gin"

	"deploy-monitor/internal/eventlog"
	"deploy-monitor/internal/model"
	pkgResponse "deploy-monitor/pkg/response"
)

// EndpointPaths maps provider names to their ingress paths, returned by
// the status surface so dashboards can render setup hints.
var EndpointPaths = gin.H{
	"github":       "/webhook",
	"digitalocean": "/webhook/platform",
}

// HandleStatus returns the recent event log plus summary counters. This
// is the read contract the polling dashboards rely on; metadata is
// stripped from the listing to keep responses small.
// @Summary Webhook event log
// @Tags Status
// @Produce json
// @Success 200 {object} response.Resp
// @Router /webhook/status [get]
func (h *Handler) HandleStatus(c *gin.Context) {
	recent := h.store.Recent(eventlog.DefaultRecentLimit)

	events := make([]model.EventListItem, 0, len(recent))
	for _, e := range recent {
		events = append(events, e.ListItem())
	}

	pkgResponse.OK(c, gin.H{
		"events":       events,
		"total_events": h.store.Count(),
		"status":       "active",
		"endpoints":    EndpointPaths,
	})
}

type logEventRequest struct {
	Type     model.EventType        `json:"type"`
	Source   model.EventSource      `json:"source"`
	Status   model.EventStatus      `json:"status"`
	Summary  string                 `json:"summary"`
	Metadata map[string]interface{} `json:"metadata"`
}

// HandleLogEvent appends a pre-normalized event directly. This is the
// internal write path used by ingress endpoints running in a separate
// process.
// @Summary Append a normalized event
// @Tags Status
// @Accept json
// @Produce json
// @Success 200 {object} response.Resp "Assigned event id"
// @Router /webhook/status [post]
func (h *Handler) HandleLogEvent(c *gin.Context) {
	var req logEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Errorf(c.Request.Context(), "Failed to decode event: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	stored := h.store.Append(model.WebhookEvent{
		Type:     req.Type,
		Source:   req.Source,
		Status:   req.Status,
		Summary:  req.Summary,
		Metadata: req.Metadata,
	})

	pkgResponse.OK(c, gin.H{
		"message":  "Event logged",
		"event_id": stored.ID,
	})
}
