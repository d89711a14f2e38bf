package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig

	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// App-level settings shared across components.
	App AppConfig

	// Webhook ingress
	Webhook WebhookConfig

	// In-memory event log
	EventLog EventLogConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type AppConfig struct {
	// BaseURL is the externally reachable base URL of this service, used
	// by the remote event recorder and printed in setup hints.
	BaseURL string
}

type WebhookConfig struct {
	// GitHubSecret is the shared secret for signature verification.
	// Leaving it empty disables verification entirely — a deliberate
	// fallback for environments without a configured secret, at the cost
	// of accepting unauthenticated deliveries.
	GitHubSecret    string
	AllowedIPs      []string
	RateLimitPerMin int
}

type EventLogConfig struct {
	// MaxRetained caps the in-memory log; oldest events are evicted first.
	MaxRetained int
	// RemoteURL, when set, makes the webhook endpoints record events to
	// another instance's /webhook/status endpoint instead of the local
	// store. Empty means in-process recording.
	RemoteURL string
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	cfg.App.BaseURL = viper.GetString("app.base_url")
	if appURL := viper.GetString("app_url"); appURL != "" {
		cfg.App.BaseURL = appURL
	}

	cfg.Webhook.GitHubSecret = viper.GetString("webhook.github_secret")
	if secret := viper.GetString("github_webhook_secret"); secret != "" {
		cfg.Webhook.GitHubSecret = secret
	}
	cfg.Webhook.AllowedIPs = viper.GetStringSlice("webhook.allowed_ips")
	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")

	cfg.EventLog.MaxRetained = viper.GetInt("event_log.max_retained")
	cfg.EventLog.RemoteURL = viper.GetString("event_log.remote_url")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.HTTPServer.Port <= 0 || cfg.HTTPServer.Port > 65535 {
		return fmt.Errorf("invalid http_server.port: %d", cfg.HTTPServer.Port)
	}
	if cfg.EventLog.MaxRetained <= 0 {
		return fmt.Errorf("event_log.max_retained must be positive, got %d", cfg.EventLog.MaxRetained)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "development")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("app.base_url", "http://localhost:8080")
	viper.SetDefault("webhook.rate_limit_per_min", 120)
	viper.SetDefault("event_log.max_retained", 1000)
}
