package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment string `env:"ENV" envDefault:"development"`
	Port        string `env:"API_PORT" envDefault:"8080"`
	LogFile     string `env:"LOG_FILE"`

	// CORS Configuration
	AllowedOrigins string `env:"ALLOWED_ORIGINS"`

	// Rate limiting for the public contact endpoint (RPS=0 disables it)
	RateLimitRPS   int `env:"RATE_LIMIT_RPS" envDefault:"0"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST" envDefault:"5"`

	// Turnstile Configuration
	TurnstileSecretKey string `env:"TURNSTILE_SECRET_KEY"`
	TurnstileSiteKey   string `env:"TURNSTILE_SITE_KEY"`
	TurnstileVerifyURL string `env:"TURNSTILE_VERIFY_URL" envDefault:"https://challenges.cloudflare.com/turnstile/v0/siteverify"`

	// Resend Configuration
	ResendAPIKey string `env:"RESEND_API_KEY"`
	ResendAPIURL string `env:"RESEND_API_URL" envDefault:"https://api.resend.com/emails"`
	ContactFrom  string `env:"CONTACT_FROM" envDefault:"contact@badr.lol"`
	ContactTo    string `env:"CONTACT_TO" envDefault:"contact@badr.lol"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	// Try multiple locations for .env file. godotenv.Load doesn't overwrite
	// variables that are already set, so the first file found wins.
	envLocations := []string{".env"}
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}

	for _, loc := range envLocations {
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Set default log file if not set
	if cfg.LogFile == "" {
		if cfg.Environment == "production" {
			cfg.LogFile = "/app/logs/api.log"
		} else {
			cfg.LogFile = "./logs/api.log"
		}
	}

	// Ensure log directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return cfg, nil
}

// Validate checks that the secrets needed to serve contact submissions are set.
// The site key has no embedded fallback; it must come from the environment.
func (c *Config) Validate() error {
	if c.TurnstileSecretKey == "" {
		return fmt.Errorf("TURNSTILE_SECRET_KEY is required")
	}
	if c.TurnstileSiteKey == "" {
		return fmt.Errorf("TURNSTILE_SITE_KEY is required")
	}
	if c.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY is required")
	}
	return nil
}
