// Package config holds runtime settings for the Hoaxify CLI and the
// defaults → JSON file → flags layering that populates them.
package config

import "time"

// Config holds runtime settings for the Hoaxify CLI.
//
// UserPageSize and HoaxPageSize are the fixed page sizes of the user
// listing and the hoax feeds. RequestTimeout bounds each HTTP request.
type Config struct {
	APIBaseURL     string
	SessionDBPath  string
	UserPageSize   int
	HoaxPageSize   int
	RequestTimeout time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.SessionDBPath = "hoaxify.db"
	c.UserPageSize = 3
	c.HoaxPageSize = 5
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
