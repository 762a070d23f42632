// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and FIGHTPICKS_ env vars.
// - Validation failures wrap ErrInvalidConfig; load failures wrap ErrLoadConfig.
package config

import (
	"time"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the local view API listen address, e.g. ":9090".
	Addr string `koanf:"addr"`

	// ServerURL is the base URL of the picks server.
	ServerURL string `koanf:"server_url"`

	// DefaultEvent is opened when no event id is given. The server
	// resolves "latest" to the upcoming card.
	DefaultEvent string `koanf:"default_event"`

	// SessionCookieName and SessionToken authenticate requests to the server.
	SessionCookieName string `koanf:"session_cookie_name"`
	SessionToken      string `koanf:"session_token"`

	// RequestTimeoutMS bounds each upstream request.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// PollIntervalMS sets how often open views refetch; 0 disables polling.
	PollIntervalMS int `koanf:"poll_interval_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9090",
		ServerURL:         "http://localhost:8080",
		DefaultEvent:      "latest",
		SessionCookieName: "session",
		RequestTimeoutMS:  10_000,
		PollIntervalMS:    30_000,
	}
}

// RequestTimeout returns RequestTimeoutMS as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// PollInterval returns PollIntervalMS as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}
