package main

import (
	"context"
	"fmt"

	"deploy-monitor/config"
	_ "deploy-monitor/docs" // Swagger docs
	"deploy-monitor/internal/eventlog"
	"deploy-monitor/internal/httpserver"
	"deploy-monitor/internal/webhook"
	"deploy-monitor/pkg/log"
)

// @title       Deploy Monitor API
// @description CI/CD webhook ingestion and event-log service: GitHub and DigitalOcean App Platform webhooks normalized into a polling-friendly status feed.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx := context.Background()
	logger.Info(ctx, "Starting deploy-monitor...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Event log
	store := eventlog.NewStore(cfg.EventLog.MaxRetained)

	// The ingress endpoints normally record straight into the local
	// store; a remote URL splits ingestion and storage across instances.
	var recorder eventlog.Recorder = store
	if cfg.EventLog.RemoteURL != "" {
		logger.Infof(ctx, "Recording events to remote log at %s", cfg.EventLog.RemoteURL)
		recorder = eventlog.NewClient(cfg.EventLog.RemoteURL)
	}

	// 4. Webhook handler
	webhookHandler := webhook.NewHandler(store, recorder, webhook.SecurityConfig{
		Secret:          cfg.Webhook.GitHubSecret,
		AllowedIPs:      cfg.Webhook.AllowedIPs,
		RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
	}, cfg.App.BaseURL, logger)

	if webhookHandler.SignatureSkipped() {
		logger.Warn(ctx, "GITHUB_WEBHOOK_SECRET not set: GitHub deliveries will be accepted without signature verification")
	}

	// 5. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:         logger,
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		Environment:    cfg.Environment.Name,
		WebhookHandler: webhookHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 6. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
