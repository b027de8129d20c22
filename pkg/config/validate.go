package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validShapes = map[string]bool{
	"type": true,
	"done": true,
}

// Validate checks the configuration for errors. It returns the first
// problem found; configuration errors are fatal to logger setup, not
// per-exchange.
func Validate(cfg *Config) error {
	if cfg.Log.File == "" {
		return fmt.Errorf("log.file must not be empty")
	}
	if cfg.Log.MaxSizeBytes <= 0 {
		return fmt.Errorf("log.max_size_bytes must be positive, got %d", cfg.Log.MaxSizeBytes)
	}
	if cfg.Log.MaxBodyBytes <= 0 {
		return fmt.Errorf("log.max_body_bytes must be positive, got %d", cfg.Log.MaxBodyBytes)
	}
	if !validShapes[cfg.Log.DoneChunkShape] {
		return fmt.Errorf("log.done_chunk_shape must be %q or %q, got %q",
			"type", "done", cfg.Log.DoneChunkShape)
	}
	if cfg.Log.SweepSchedule != "" {
		if _, err := cron.ParseStandard(cfg.Log.SweepSchedule); err != nil {
			return fmt.Errorf("log.sweep_schedule is not a valid cron expression: %w", err)
		}
	}
	if !validLevels[cfg.Telemetry.LoggingLevel] {
		return fmt.Errorf("telemetry.logging_level must be one of debug, info, warn, error; got %q",
			cfg.Telemetry.LoggingLevel)
	}
	return nil
}
