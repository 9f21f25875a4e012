package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all environment-based configuration for the connector.
type Config struct {
	// HTTP listen address for the banking-API adapter surface.
	Addr string `env:"SCAFLOW_ADDR" envDefault:":8080"`

	// Core-banking authorisation service.
	BackendBaseURL string        `env:"BACKEND_BASE_URL"`
	BackendTimeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"30s"`

	// Consent-management status notification endpoint. Empty disables the
	// best-effort notifications.
	ConsentManagementURL string `env:"CONSENT_MANAGEMENT_URL"`

	// MaxLoginAttempts feeds the remaining-attempts feedback after a failed
	// TAN submission.
	MaxLoginAttempts int           `env:"MAX_LOGIN_ATTEMPTS" envDefault:"3"`
	AttemptWindow    time.Duration `env:"ATTEMPT_WINDOW" envDefault:"15m"`

	// DecoupledURLTemplate is the out-of-band confirmation link with
	// {psu-id}, {object-id}, {authorisation-id} and {tan} placeholders.
	DecoupledURLTemplate string `env:"DECOUPLED_URL_TEMPLATE"`

	// RedisURL enables the shared attempt counter. Empty falls back to the
	// in-memory store.
	RedisURL string `env:"REDIS_URL"`

	// SandboxMode swaps the HTTP backend gateway for the in-process sandbox.
	SandboxMode bool `env:"SANDBOX_MODE" envDefault:"false"`

	// Environment controls log format.
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
}

// Load reads configuration from environment variables. A .env file is loaded
// first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if !c.SandboxMode && c.BackendBaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required unless SANDBOX_MODE is enabled")
	}
	if c.MaxLoginAttempts < 1 {
		return fmt.Errorf("MAX_LOGIN_ATTEMPTS must be at least 1")
	}
	return nil
}

// IsProduction returns true when the environment is set to production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
