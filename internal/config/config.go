package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config represents the application configuration
type Config struct {
	OpenSky OpenSkyConfig `toml:"opensky"`
	Server  ServerConfig  `toml:"server"`
	Logging LoggingConfig `toml:"logging"`
}

// OpenSkyConfig represents the upstream OpenSky Network API configuration
type OpenSkyConfig struct {
	BaseURL               string `toml:"base_url"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	DefaultLimit          int    `toml:"default_limit"`
	MaxLimit              int    `toml:"max_limit"`
}

// ServerConfig represents the optional HTTP API server configuration
type ServerConfig struct {
	HTTPEnabled        bool     `toml:"http_enabled"`
	Host               string   `toml:"host"`
	Port               int      `toml:"port"`
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`
}

// LoggingConfig represents the logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the default configuration. The OpenSky API is used
// anonymously; no credentials are configured here.
func Default() *Config {
	return &Config{
		OpenSky: OpenSkyConfig{
			BaseURL:               "https://opensky-network.org/api",
			RequestTimeoutSeconds: 10,
			DefaultLimit:          50,
			MaxLimit:              1000,
		},
		Server: ServerConfig{
			HTTPEnabled: false,
			Host:        "127.0.0.1",
			Port:        8080,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads the configuration from the given TOML file. A missing file
// is not an error: defaults are returned so the server runs with zero
// local setup.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.OpenSky.BaseURL == "" {
		return fmt.Errorf("opensky.base_url must not be empty")
	}
	if c.OpenSky.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("opensky.request_timeout_seconds must be positive, got %d", c.OpenSky.RequestTimeoutSeconds)
	}
	if c.OpenSky.DefaultLimit <= 0 {
		return fmt.Errorf("opensky.default_limit must be positive, got %d", c.OpenSky.DefaultLimit)
	}
	if c.OpenSky.MaxLimit < c.OpenSky.DefaultLimit {
		return fmt.Errorf("opensky.max_limit (%d) must not be below opensky.default_limit (%d)", c.OpenSky.MaxLimit, c.OpenSky.DefaultLimit)
	}
	if c.Server.HTTPEnabled && (c.Server.Port < 1 || c.Server.Port > 65535) {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	return nil
}
