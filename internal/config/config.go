// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/retrohunt/retro-hunter/internal/collections"
)

// Config is the top-level application configuration.
type Config struct {
	Backend  BackendConfig  `yaml:"backend"`
	Agent    AgentConfig    `yaml:"agent"`
	Currency CurrencyConfig `yaml:"currency"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// BackendConfig defines the collection and auth backend settings.
type BackendConfig struct {
	BaseURL string             `yaml:"base_url"`
	AuthURL string             `yaml:"auth_url"`
	Routes  collections.Routes `yaml:"routes"`
}

// AgentConfig defines the search/OCR agent backend settings.
type AgentConfig struct {
	BaseURL   string          `yaml:"base_url"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines agent call rate limiting settings.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int     `yaml:"daily_limit"`
}

// CurrencyConfig defines exchange-rate provider settings.
type CurrencyConfig struct {
	ProviderURL string        `yaml:"provider_url"`
	Interval    time.Duration `yaml:"interval"`
}

// ScheduleConfig defines the background refresh schedule.
type ScheduleConfig struct {
	PriceRefresh string `yaml:"price_refresh"` // cron spec, e.g. @daily
}

// MetricsConfig defines the watch-mode metrics listener.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration used when no config file is given. It
// points at a local development backend.
func Default() *Config {
	cfg := &Config{}
	cfg.Backend.BaseURL = "http://localhost:3000"
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	applyBackendDefaults(&cfg.Backend)
	applyAgentDefaults(&cfg.Agent)
	applyCurrencyDefaults(&cfg.Currency)
	applyScheduleDefaults(&cfg.Schedule)
	applyMetricsDefaults(&cfg.Metrics)
	applyLoggingDefaults(&cfg.Logging)
}

func applyBackendDefaults(b *BackendConfig) {
	if b.AuthURL == "" {
		b.AuthURL = b.BaseURL
	}
}

func applyAgentDefaults(a *AgentConfig) {
	if a.BaseURL == "" {
		a.BaseURL = "http://localhost:8000"
	}
	applyRateLimitDefaults(&a.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 2.0
	}
	if r.Burst == 0 {
		r.Burst = 5
	}
	if r.DailyLimit == 0 {
		r.DailyLimit = 500
	}
}

func applyCurrencyDefaults(c *CurrencyConfig) {
	if c.ProviderURL == "" {
		c.ProviderURL = "https://api.exchangerate-api.com/v4/latest/USD"
	}
	if c.Interval == 0 {
		c.Interval = 12 * time.Hour
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.PriceRefresh == "" {
		s.PriceRefresh = "@daily"
	}
}

func applyMetricsDefaults(m *MetricsConfig) {
	if m.Addr == "" {
		m.Addr = "localhost:9090"
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Backend.BaseURL == "" {
		errs = append(errs, fmt.Errorf("backend.base_url is required"))
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf(
			"logging.level must be one of: debug, info, warn, error (got %q)",
			cfg.Logging.Level,
		))
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf(
			"logging.format must be one of: text, json (got %q)",
			cfg.Logging.Format,
		))
	}

	if cfg.Agent.RateLimit.PerSecond < 0 {
		errs = append(errs, fmt.Errorf("agent.rate_limit.per_second must not be negative"))
	}
	if cfg.Currency.Interval < 0 {
		errs = append(errs, fmt.Errorf("currency.interval must not be negative"))
	}

	return errors.Join(errs...)
}
