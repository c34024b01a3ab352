// Package config loads the YAML application config and publishes reloads.
package config

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/energyflow/internal/constants"
)

// Config is the application config. Storage location and user settings live elsewhere.
type Config struct {
	Log    LogConfig    `json:"log"`
	Server ServerConfig `json:"server"`
	Jobs   JobsConfig   `json:"jobs"`
}

type LogConfig struct {
	Debug bool `json:"debug"`
}

type ServerConfig struct {
	Addr string `json:"addr"`
	// RateLimit is requests per second; 0 disables limiting.
	RateLimit *float64 `json:"rate_limit"`
	Burst     int      `json:"burst"`
	// ShutdownTimeout is a Go duration string, e.g. "5s".
	ShutdownTimeout string `json:"shutdown_timeout"`
}

type JobsConfig struct {
	// BoardCleanup is a cron spec for clearing completed board tasks. Empty disables it.
	BoardCleanup *string `json:"board_cleanup"`
}

// Default returns the config used when no file exists.
func Default() *Config {
	cleanup := constants.DefaultCleanupSpec
	rate := constants.DefaultRateLimit
	return &Config{
		Server: ServerConfig{
			Addr:            constants.DefaultServerAddr,
			RateLimit:       &rate,
			Burst:           constants.DefaultRateBurst,
			ShutdownTimeout: "5s",
		},
		Jobs: JobsConfig{BoardCleanup: &cleanup},
	}
}

// applyDefaults fills zero fields from Default. An explicit empty board_cleanup is kept.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Server.RateLimit == nil {
		c.Server.RateLimit = def.Server.RateLimit
	}
	if c.Server.Burst == 0 {
		c.Server.Burst = def.Server.Burst
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = def.Server.ShutdownTimeout
	}
	if c.Jobs.BoardCleanup == nil {
		c.Jobs.BoardCleanup = def.Jobs.BoardCleanup
	}
}

// CleanupSpec returns the board cleanup cron spec, or "" when disabled.
func (c *Config) CleanupSpec() string {
	if c.Jobs.BoardCleanup == nil {
		return ""
	}
	return *c.Jobs.BoardCleanup
}

// Rate returns the request rate limit per second.
func (c *Config) Rate() float64 {
	if c.Server.RateLimit == nil {
		return constants.DefaultRateLimit
	}
	return *c.Server.RateLimit
}

// Shutdown returns the parsed shutdown timeout.
func (c *Config) Shutdown() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}

// Validate checks values that would fail later at runtime.
func (c *Config) Validate() error {
	if c.Rate() < 0 {
		return fmt.Errorf("server.rate_limit must not be negative")
	}
	if c.Server.Burst < 0 {
		return fmt.Errorf("server.burst must not be negative")
	}
	if _, err := time.ParseDuration(c.Server.ShutdownTimeout); err != nil {
		return fmt.Errorf("server.shutdown_timeout: %w", err)
	}
	if spec := c.CleanupSpec(); spec != "" {
		if _, err := cron.ParseStandard(spec); err != nil {
			return fmt.Errorf("jobs.board_cleanup: %w", err)
		}
	}
	return nil
}
