package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the remote client.
// All configuration is loaded from YAML and can be overridden by
// environment variables. There is no process-wide state: broker
// credentials live inside the shareable link, never in the binary.
type Config struct {
	Link     LinkConfig     `yaml:"link"`
	Session  SessionConfig  `yaml:"session"`
	InfluxDB InfluxDBConfig `yaml:"influxdb"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LinkConfig carries the shareable link that scopes this client to one
// agent instance. The link embeds the access code, remote id, and broker
// connection string.
type LinkConfig struct {
	URL string `yaml:"url"`
}

// SessionConfig contains broker session tuning. All durations are in
// seconds.
type SessionConfig struct {
	ConnectTimeout int             `yaml:"connect_timeout"`
	KeepAlive      int             `yaml:"keep_alive"`
	Reconnect      ReconnectConfig `yaml:"reconnect"`
}

// ReconnectConfig contains transport reconnection backoff settings.
type ReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
}

// InfluxDBConfig contains the optional playback telemetry sink settings.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment
// variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: ACMEREMOTE_SECTION_KEY
// For example: ACMEREMOTE_LINK_URL, ACMEREMOTE_INFLUXDB_TOKEN
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Session: SessionConfig{
			ConnectTimeout: 10,
			KeepAlive:      60,
			Reconnect: ReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
			},
		},
		InfluxDB: InfluxDBConfig{
			Enabled:       false,
			BatchSize:     100,
			FlushInterval: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Environment variables follow the pattern:
// ACMEREMOTE_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ACMEREMOTE_LINK_URL"); v != "" {
		cfg.Link.URL = v
	}

	if v := os.Getenv("ACMEREMOTE_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// The InfluxDB token should come from the environment in production.
	if v := os.Getenv("ACMEREMOTE_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}
	if v := os.Getenv("ACMEREMOTE_INFLUXDB_URL"); v != "" {
		cfg.InfluxDB.URL = v
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []string

	if c.Link.URL == "" {
		errs = append(errs, "link.url is required")
	}

	if c.Session.ConnectTimeout < 0 {
		errs = append(errs, "session.connect_timeout cannot be negative")
	}
	if c.Session.Reconnect.InitialDelay < 0 {
		errs = append(errs, "session.reconnect.initial_delay cannot be negative")
	}
	if c.Session.Reconnect.MaxDelay < c.Session.Reconnect.InitialDelay {
		errs = append(errs, "session.reconnect.max_delay must be >= initial_delay")
	}

	if c.InfluxDB.Enabled {
		if c.InfluxDB.URL == "" {
			errs = append(errs, "influxdb.url is required when influxdb is enabled")
		}
		if c.InfluxDB.Org == "" {
			errs = append(errs, "influxdb.org is required when influxdb is enabled")
		}
		if c.InfluxDB.Bucket == "" {
			errs = append(errs, "influxdb.bucket is required when influxdb is enabled")
		}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("logging.level %q is not recognised", c.Logging.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}
