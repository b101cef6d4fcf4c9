package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DatabaseURL string `env:"DATABASE_URL"`

	// Admin
	AdminPass string `env:"ADMIN_PASS"`

	// Server
	Port        string `env:"PORT" envDefault:"3000"`
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:3000"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// Optional spreadsheet mirror for incoming orders
	SheetsWebhookURL string `env:"SHEETS_WEBHOOK_URL"`
	SheetsAPIKey     string `env:"SHEETS_API_KEY"`
}

func Load() (*Config, error) {
	// .env is optional; deployments normally inject the environment directly
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.AdminPass == "" {
		return fmt.Errorf("ADMIN_PASS is required")
	}
	return nil
}
