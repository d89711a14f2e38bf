package config_test

import (
	"testing"

	"deploy-monitor/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTPServer.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.HTTPServer.Port)
	}
	if cfg.EventLog.MaxRetained != 1000 {
		t.Errorf("expected default max_retained 1000, got %d", cfg.EventLog.MaxRetained)
	}
	if cfg.Webhook.RateLimitPerMin != 120 {
		t.Errorf("expected default rate limit 120, got %d", cfg.Webhook.RateLimitPerMin)
	}
	if cfg.App.BaseURL == "" {
		t.Error("expected default base URL")
	}
}
