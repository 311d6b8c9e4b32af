package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Run modes for the inbound boundary.
const (
	ModePolling = "polling"
	ModeWebhook = "webhook"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken      string `envconfig:"BOT_TOKEN" required:"true"`
	DBPath        string `envconfig:"DB_PATH" default:"./data/pillbot.db"`
	RunMode       string `envconfig:"RUN_MODE" default:"polling"` // polling|webhook
	WebhookPath   string `envconfig:"WEBHOOK_PATH" default:"/telegram"`
	HTTPAddr      string `envconfig:"HTTP_ADDR" default:":8080"` // healthz, metrics, webhook
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`  // debug|info|warn|error
	Workers       int    `envconfig:"DISPATCH_WORKERS" default:"8"`
	QuoteCategory string `envconfig:"QUOTE_CATEGORY" default:"love"`
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	// envconfig's required tag only checks presence; an empty value
	// still sneaks through.
	if cfg.BotToken == "" {
		return cfg, fmt.Errorf("BOT_TOKEN must not be empty")
	}
	if cfg.RunMode != ModePolling && cfg.RunMode != ModeWebhook {
		return cfg, fmt.Errorf("invalid RUN_MODE %q", cfg.RunMode)
	}
	if cfg.Workers < 1 {
		return cfg, fmt.Errorf("DISPATCH_WORKERS must be positive, got %d", cfg.Workers)
	}
	return cfg, nil
}
