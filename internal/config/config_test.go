package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.BotToken)
	assert.Equal(t, ModePolling, cfg.RunMode)
	assert.Equal(t, "/telegram", cfg.WebhookPath)
	assert.Equal(t, "love", cfg.QuoteCategory)
	assert.Equal(t, 8, cfg.Workers)
}

func TestLoad_MissingToken(t *testing.T) {
	// Setenv registers restore-on-cleanup; the variable must then be
	// truly absent, since envconfig accepts a set-but-empty required key.
	t.Setenv("BOT_TOKEN", "x")
	_ = os.Unsetenv("BOT_TOKEN")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsEmptyToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownRunMode(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("RUN_MODE", "carrier-pigeon")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsNonPositiveWorkers(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("DISPATCH_WORKERS", "0")

	_, err := Load()
	assert.Error(t, err)
}
