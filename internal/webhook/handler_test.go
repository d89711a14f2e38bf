package webhook_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"deploy-monitor/internal/eventlog"
	"deploy-monitor/internal/model"
	"deploy-monitor/internal/webhook"
)

type mockLogger struct{}

func (mockLogger) Debug(context.Context, ...any)          {}
func (mockLogger) Debugf(context.Context, string, ...any) {}
func (mockLogger) Info(context.Context, ...any)           {}
func (mockLogger) Infof(context.Context, string, ...any)  {}
func (mockLogger) Warn(context.Context, ...any)           {}
func (mockLogger) Warnf(context.Context, string, ...any)  {}
func (mockLogger) Error(context.Context, ...any)          {}
func (mockLogger) Errorf(context.Context, string, ...any) {}
func (mockLogger) Fatal(context.Context, ...any)          {}
func (mockLogger) Fatalf(context.Context, string, ...any) {}

type failingRecorder struct{}

func (failingRecorder) Record(_ context.Context, e model.WebhookEvent) (model.WebhookEvent, error) {
	return e, errors.New("event log unreachable")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk read error")
}

const testBaseURL = "https://deploys.example.com"

func newTestRouter(secret string, recorder eventlog.Recorder) (*gin.Engine, *eventlog.Store) {
	gin.SetMode(gin.TestMode)

	store := eventlog.NewStore(0)
	h := webhook.NewHandler(store, recorder, webhook.SecurityConfig{
		Secret:          secret,
		RateLimitPerMin: 60000,
	}, testBaseURL, mockLogger{})

	r := gin.New()
	r.POST("/webhook", h.HandleGitHubWebhook)
	r.GET("/webhook", h.HandleGitHubInfo)
	r.POST("/webhook/platform", h.HandleDigitalOceanWebhook)
	r.GET("/webhook/platform", h.HandleDigitalOceanInfo)
	r.GET("/webhook/status", h.HandleStatus)
	r.POST("/webhook/status", h.HandleLogEvent)
	return r, store
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
			t.Fatalf("response is not JSON: %v\n%s", err, w.Body.String())
		}
	}
	return w, parsed
}

func respData(t *testing.T, parsed map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := parsed["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no data object: %#v", parsed)
	}
	return data
}

func TestGitHubWebhookEndToEnd(t *testing.T) {
	const secret = "hub-secret"

	t.Run("Signed Push Is Processed", func(t *testing.T) {
		r, store := newTestRouter(secret, nil)

		w, parsed := doRequest(t, r, http.MethodPost, "/webhook", pushPayload, map[string]string{
			"X-GitHub-Event":      "push",
			"X-Hub-Signature-256": sign(secret, []byte(pushPayload)),
		})

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		data := respData(t, parsed)
		if data["commits"] != float64(3) {
			t.Errorf("expected commits 3 in ack, got %v", data["commits"])
		}

		_, statusParsed := doRequest(t, r, http.MethodGet, "/webhook/status", "", nil)
		statusData := respData(t, statusParsed)

		events, ok := statusData["events"].([]interface{})
		if !ok || len(events) != 1 {
			t.Fatalf("expected 1 event in status, got %#v", statusData["events"])
		}
		first := events[0].(map[string]interface{})
		if first["type"] != "push" || first["status"] != "success" {
			t.Errorf("unexpected event: %#v", first)
		}
		if !strings.Contains(first["summary"].(string), "3") {
			t.Errorf("summary should mention commit count: %v", first["summary"])
		}
		if _, hasMeta := first["metadata"]; hasMeta {
			t.Error("status listing must not include metadata")
		}
		if statusData["total_events"] != float64(1) {
			t.Errorf("expected total_events 1, got %v", statusData["total_events"])
		}

		if store.Count() != 1 {
			t.Errorf("expected 1 stored event, got %d", store.Count())
		}
	})

	t.Run("Invalid Signature Is Rejected And Logged", func(t *testing.T) {
		r, store := newTestRouter(secret, nil)

		w, _ := doRequest(t, r, http.MethodPost, "/webhook", pushPayload, map[string]string{
			"X-GitHub-Event":      "push",
			"X-Hub-Signature-256": sign("wrong-secret", []byte(pushPayload)),
		})

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}

		events := store.Recent(10)
		if len(events) != 1 {
			t.Fatalf("expected exactly the auth event, got %d events", len(events))
		}
		if events[0].Type != model.EventAuthentication || events[0].Status != model.StatusError {
			t.Errorf("unexpected event: %s/%s", events[0].Type, events[0].Status)
		}
		for _, e := range events {
			if e.Type == model.EventPush {
				t.Error("push payload must not be normalized after auth failure")
			}
		}
	})

	t.Run("No Secret Configured Accepts Unsigned Delivery", func(t *testing.T) {
		r, store := newTestRouter("", nil)

		w, _ := doRequest(t, r, http.MethodPost, "/webhook", pushPayload, map[string]string{
			"X-GitHub-Event": "push",
		})

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if store.Count() != 1 {
			t.Errorf("expected event stored, got %d", store.Count())
		}
	})

	t.Run("Unknown Kind Is Acknowledged", func(t *testing.T) {
		r, store := newTestRouter("", nil)

		w, _ := doRequest(t, r, http.MethodPost, "/webhook", `{}`, map[string]string{
			"X-GitHub-Event": "totally.unknown.event",
		})

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		events := store.Recent(1)
		if len(events) != 1 || events[0].Type != model.EventUnknown || events[0].Status != model.StatusProcessing {
			t.Fatalf("expected unknown/processing event, got %#v", events)
		}
	})

	t.Run("Unparsable Body Is Logged And Rejected", func(t *testing.T) {
		r, store := newTestRouter("", nil)

		w, _ := doRequest(t, r, http.MethodPost, "/webhook", "{not json", map[string]string{
			"X-GitHub-Event": "push",
		})

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		events := store.Recent(1)
		if len(events) != 1 || events[0].Type != model.EventError {
			t.Fatalf("expected error event logged, got %#v", events)
		}
	})

	t.Run("Recorder Failure Does Not Fail Acknowledgement", func(t *testing.T) {
		r, store := newTestRouter("", failingRecorder{})

		w, _ := doRequest(t, r, http.MethodPost, "/webhook", pushPayload, map[string]string{
			"X-GitHub-Event": "push",
		})

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 despite recorder failure, got %d", w.Code)
		}
		if store.Count() != 0 {
			t.Errorf("store should be untouched when recorder fails, got %d", store.Count())
		}
	})

	t.Run("Info Endpoint", func(t *testing.T) {
		r, _ := newTestRouter("", nil)

		w, parsed := doRequest(t, r, http.MethodGet, "/webhook", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		data := respData(t, parsed)
		if data["status"] != "active" {
			t.Errorf("expected active status, got %v", data["status"])
		}
		if data["url"] != testBaseURL+"/webhook" {
			t.Errorf("expected delivery url %s/webhook, got %v", testBaseURL, data["url"])
		}
		steps, ok := data["setup_instructions"].([]interface{})
		if !ok || len(steps) == 0 {
			t.Fatalf("expected setup instructions, got %#v", data["setup_instructions"])
		}
		found := false
		for _, s := range steps {
			if strings.Contains(s.(string), testBaseURL+"/webhook") {
				found = true
			}
		}
		if !found {
			t.Errorf("setup instructions should include the delivery url: %#v", steps)
		}
	})

	t.Run("Body Read Failure Returns Server Error", func(t *testing.T) {
		r, store := newTestRouter("", nil)

		req := httptest.NewRequest(http.MethodPost, "/webhook", failingReader{})
		req.Header.Set("X-GitHub-Event", "push")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
		}
		if strings.Contains(w.Body.String(), "disk read error") {
			t.Error("internal error details must not leak into the response")
		}
		if store.Count() != 0 {
			t.Errorf("no event should be logged for an unread body, got %d", store.Count())
		}
	})
}

func TestDigitalOceanWebhookEndToEnd(t *testing.T) {
	t.Run("Deployment Failed Reaches Status", func(t *testing.T) {
		r, store := newTestRouter("", nil)

		payload := `{"app": {"id": "abc"}, "deployment": {"error": "oom"}}`
		w, _ := doRequest(t, r, http.MethodPost, "/webhook/platform", payload, map[string]string{
			"X-DigitalOcean-Event": "app.deployment.failed",
		})

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		events := store.Recent(1)
		if len(events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(events))
		}
		if events[0].Status != model.StatusError {
			t.Errorf("expected error status, got %s", events[0].Status)
		}
		if events[0].Metadata["app_id"] != "abc" {
			t.Errorf("expected metadata app_id abc, got %v", events[0].Metadata["app_id"])
		}
	})

	t.Run("Kind From Payload Type Field", func(t *testing.T) {
		r, store := newTestRouter("", nil)

		payload := `{"type": "deployment.completed", "app": {"id": "abc", "live_url": "https://x"}}`
		w, _ := doRequest(t, r, http.MethodPost, "/webhook/platform", payload, nil)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		events := store.Recent(1)
		if len(events) != 1 || events[0].Type != model.EventDeploymentCompleted {
			t.Fatalf("expected deployment.completed event, got %#v", events)
		}
	})

	t.Run("Info Lists Supported Kinds", func(t *testing.T) {
		r, _ := newTestRouter("", nil)

		w, parsed := doRequest(t, r, http.MethodGet, "/webhook/platform", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		data := respData(t, parsed)
		kinds, ok := data["supported_events"].([]interface{})
		if !ok || len(kinds) == 0 {
			t.Errorf("expected supported_events list, got %#v", data["supported_events"])
		}
		if data["url"] != testBaseURL+"/webhook/platform" {
			t.Errorf("expected delivery url %s/webhook/platform, got %v", testBaseURL, data["url"])
		}
	})
}

func TestStatusEndpoint(t *testing.T) {
	t.Run("Direct Append Returns Id", func(t *testing.T) {
		r, store := newTestRouter("", nil)

		body := `{"type": "push", "source": "github", "status": "success", "summary": "manual entry"}`
		w, parsed := doRequest(t, r, http.MethodPost, "/webhook/status", body, nil)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		data := respData(t, parsed)
		if data["event_id"] == "" || data["event_id"] == nil {
			t.Errorf("expected assigned event_id, got %v", data["event_id"])
		}
		if store.Count() != 1 {
			t.Errorf("expected 1 stored event, got %d", store.Count())
		}
	})

	t.Run("Malformed Append Is Rejected", func(t *testing.T) {
		r, _ := newTestRouter("", nil)

		w, _ := doRequest(t, r, http.MethodPost, "/webhook/status", "{not json", nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("Endpoints Map Present", func(t *testing.T) {
		r, _ := newTestRouter("", nil)

		_, parsed := doRequest(t, r, http.MethodGet, "/webhook/status", "", nil)
		data := respData(t, parsed)
		endpoints, ok := data["endpoints"].(map[string]interface{})
		if !ok {
			t.Fatalf("expected endpoints map, got %#v", data["endpoints"])
		}
		if endpoints["github"] != "/webhook" || endpoints["digitalocean"] != "/webhook/platform" {
			t.Errorf("unexpected endpoints map: %#v", endpoints)
		}
	})
}
