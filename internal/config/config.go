// Package config manages application configuration
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration. It is parsed once at startup
// and passed into component constructors; components never read ambient
// environment state themselves.
type Config struct {
	// Server settings
	Port        string `env:"ORACLE_PORT" envDefault:"8080"`
	Environment string `env:"ORACLE_ENV" envDefault:"development"` // "development" or "production"

	// Security. The draw secret has a deliberate dev default so an
	// unconfigured process still produces stable per-user draws; production
	// overrides both secrets.
	SessionSecret string `env:"ORACLE_SESSION_SECRET" envDefault:"dev-session-secret-change-in-production"`
	DrawSecret    string `env:"ORACLE_DRAW_SECRET" envDefault:"oracle-default-draw-secret"`

	// Card image root directory
	ImagesDir string `env:"ORACLE_IMAGES_DIR" envDefault:"images"`

	// Mailing list
	MailchimpAPIKey     string `env:"MAILCHIMP_API_KEY"`
	MailchimpAudienceID string `env:"MAILCHIMP_AUDIENCE_ID"`
	MailchimpTag        string `env:"MAILCHIMP_TAG" envDefault:"oracle_daily"`

	// Reading generation
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL" envDefault:"gpt-4.1-mini"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
