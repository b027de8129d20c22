package config

// Config is the root configuration structure for Ganymede.
type Config struct {
	// Log contains the exchange-log pipeline configuration: destination
	// file, rotation budget, capture limits, redaction and path filters.
	Log LogConfig `yaml:"log"`

	// Telemetry contains observability configuration for the logger's
	// own operational side channel.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// LogConfig configures the exchange-log pipeline.
type LogConfig struct {
	// File is the destination path for NDJSON records. The directory is
	// created if absent.
	// Default: "ganymede.log"
	File string `yaml:"file"`

	// MaxSizeBytes is the rotation threshold: before each append, a file
	// larger than this keeps only its most recent quarter of lines.
	// Default: 10485760 (10 MiB)
	MaxSizeBytes int64 `yaml:"max_size_bytes"`

	// MaxBodyBytes caps how much of a request or buffered response body
	// is retained in a record.
	// Default: 65536 (64 KiB)
	MaxBodyBytes int `yaml:"max_body_bytes"`

	// IncludeHeaders includes request headers verbatim in records.
	// Default: false
	IncludeHeaders bool `yaml:"include_headers"`

	// Redact is the field-name set masked with "[REDACTED]" at any
	// nesting depth.
	// Default: [password, token, authorization, cookie]
	Redact []string `yaml:"redact"`

	// IncludePaths is a wildcard allow-list; when non-empty it takes
	// precedence over IgnorePaths. "*" matches any run of characters.
	IncludePaths []string `yaml:"include_paths"`

	// IgnorePaths is a wildcard deny-list.
	IgnorePaths []string `yaml:"ignore_paths"`

	// DoneChunkShape selects the "[DONE]" sentinel chunk shape:
	// "type" -> {"type":"done"}, "done" -> {"done":true}.
	// Default: "type"
	DoneChunkShape string `yaml:"done_chunk_shape"`

	// SweepSchedule is an optional cron expression for the off-path
	// rotation sweep. Empty disables it.
	SweepSchedule string `yaml:"sweep_schedule"`
}

// TelemetryConfig configures the operational side channel.
type TelemetryConfig struct {
	// MetricsEnabled registers Prometheus counters for emitted records,
	// rotations, and swallowed store errors.
	// Default: true
	MetricsEnabled *bool `yaml:"metrics_enabled"`

	// LoggingLevel is the slog level for the logger's own diagnostics
	// ("debug", "info", "warn", "error").
	// Default: "info"
	LoggingLevel string `yaml:"logging_level"`
}

// MetricsOn reports whether metrics are enabled, applying the default.
func (t TelemetryConfig) MetricsOn() bool {
	return t.MetricsEnabled == nil || *t.MetricsEnabled
}
