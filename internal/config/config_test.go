package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
backend:
  base_url: https://api.retrohunt.example
  routes:
    list_items:
      - /v2/items/{userID}
agent:
  base_url: https://agent.retrohunt.example
  rate_limit:
    per_second: 1.5
    daily_limit: 200
currency:
  interval: 6h
schedule:
  price_refresh: "@every 12h"
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.retrohunt.example", cfg.Backend.BaseURL)
	assert.Equal(t, "https://api.retrohunt.example", cfg.Backend.AuthURL, "auth url defaults to the backend url")
	assert.Equal(t, []string{"/v2/items/{userID}"}, cfg.Backend.Routes.ListItems)
	assert.Equal(t, 1.5, cfg.Agent.RateLimit.PerSecond)
	assert.Equal(t, 5, cfg.Agent.RateLimit.Burst, "unset fields get defaults")
	assert.Equal(t, 200, cfg.Agent.RateLimit.DailyLimit)
	assert.Equal(t, 6*time.Hour, cfg.Currency.Interval)
	assert.Equal(t, "@every 12h", cfg.Schedule.PriceRefresh)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("RETRO_BACKEND_URL", "https://env.retrohunt.example")

	path := writeConfig(t, `
backend:
  base_url: ${RETRO_BACKEND_URL}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.retrohunt.example", cfg.Backend.BaseURL)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadValidationErrors(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
logging:
  level: loud
  format: yaml
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend.base_url is required")
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "logging.format")
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, "@daily", cfg.Schedule.PriceRefresh)
	assert.Equal(t, "https://api.exchangerate-api.com/v4/latest/USD", cfg.Currency.ProviderURL)
	assert.Equal(t, "localhost:9090", cfg.Metrics.Addr)
}
