package config

import "time"

// Config holds runtime settings for the Momento client.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API.
//   - MirrorPath: filesystem path (or sqlite DSN) of the local mirror DB.
//   - RequestTimeout: per-request deadline for API calls.
type Config struct {
	APIBaseURL     string
	MirrorPath     string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.MirrorPath = "momento.db"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file was given) and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
