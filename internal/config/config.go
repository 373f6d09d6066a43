package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all run settings, populated from environment variables.
// Command-line flags may override the input paths afterwards.
type Config struct {
	NEOPath   string
	CADPath   string
	LogLevel  string
	LogFormat string

	// MetricsTextfile, when set, receives a Prometheus text dump at exit.
	MetricsTextfile string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	cfg := &Config{
		NEOPath:         sharedcfg.EnvOrDefault("NEO_CSV_PATH", "data/neos.csv"),
		CADPath:         sharedcfg.EnvOrDefault("CAD_JSON_PATH", "data/cad.json"),
		LogLevel:        strings.ToLower(sharedcfg.EnvOrDefault("LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(sharedcfg.EnvOrDefault("LOG_FORMAT", "text")),
		MetricsTextfile: sharedcfg.EnvOrDefault("METRICS_TEXTFILE", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that Load and flag overrides can produce.
func (c *Config) Validate() error {
	if c.NEOPath == "" {
		return errors.New("NEO_CSV_PATH is required")
	}
	if c.CADPath == "" {
		return errors.New("CAD_JSON_PATH is required")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q", c.LogFormat)
	}
	return nil
}
