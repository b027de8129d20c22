package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file, applies defaults and
// environment overrides, and validates the result. Environment variables
// follow the convention GANYMEDE_SECTION_FIELD and always take precedence
// over file-based configuration.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides applies GANYMEDE_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("GANYMEDE_LOG_FILE"); val != "" {
		cfg.Log.File = val
	}
	if val := os.Getenv("GANYMEDE_LOG_MAX_SIZE_BYTES"); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Log.MaxSizeBytes = n
		}
	}
	if val := os.Getenv("GANYMEDE_LOG_INCLUDE_HEADERS"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Log.IncludeHeaders = b
		}
	}
	if val := os.Getenv("GANYMEDE_LOG_SWEEP_SCHEDULE"); val != "" {
		cfg.Log.SweepSchedule = val
	}
	if val := os.Getenv("GANYMEDE_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.LoggingLevel = val
	}
}
