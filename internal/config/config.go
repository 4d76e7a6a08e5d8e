// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"EVENTDESK_DB_PATH" envDefault:"./data/eventdesk.db"`
	ServerHost string `env:"EVENTDESK_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"EVENTDESK_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"EVENTDESK_ENV" envDefault:"development"`
	LogLevel   string `env:"EVENTDESK_LOG_LEVEL" envDefault:"info"`

	// Registration URL policy. When true, hosts must register events on
	// lu.ma; any well-formed https URL passes otherwise.
	RequireLumaDomain bool `env:"EVENTDESK_REQUIRE_LUMA_DOMAIN" envDefault:"true"`

	// Rate limiting for the API surface.
	RateLimitRPS   float64 `env:"EVENTDESK_RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int     `env:"EVENTDESK_RATE_LIMIT_BURST" envDefault:"20"`

	// Retention windows, in days.
	DraftRetentionDays  int `env:"EVENTDESK_DRAFT_RETENTION_DAYS" envDefault:"30"`
	AppLogRetentionDays int `env:"EVENTDESK_APP_LOG_RETENTION_DAYS" envDefault:"90"`

	// Seeding configuration
	DoSeed bool `env:"EVENTDESK_DO_SEED" envDefault:"false"` // Enable database seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.RateLimitRPS <= 0 {
		return nil, fmt.Errorf("EVENTDESK_RATE_LIMIT_RPS must be positive, got %v", cfg.RateLimitRPS)
	}
	if cfg.DraftRetentionDays < 1 {
		return nil, fmt.Errorf("EVENTDESK_DRAFT_RETENTION_DAYS must be at least 1, got %d", cfg.DraftRetentionDays)
	}
	if cfg.AppLogRetentionDays < 1 {
		return nil, fmt.Errorf("EVENTDESK_APP_LOG_RETENTION_DAYS must be at least 1, got %d", cfg.AppLogRetentionDays)
	}

	return cfg, nil
}
