package config

// Default values for configuration fields.
const (
	DefaultLogFile        = "ganymede.log"
	DefaultMaxSizeBytes   = int64(10 * 1024 * 1024)
	DefaultMaxBodyBytes   = 64 * 1024
	DefaultDoneChunkShape = "type"
	DefaultLoggingLevel   = "info"
)

// DefaultRedactFields is the default redaction set.
var DefaultRedactFields = []string{"password", "token", "authorization", "cookie"}

// ApplyDefaults fills in default values for fields that were not set.
func ApplyDefaults(cfg *Config) {
	if cfg.Log.File == "" {
		cfg.Log.File = DefaultLogFile
	}
	if cfg.Log.MaxSizeBytes == 0 {
		cfg.Log.MaxSizeBytes = DefaultMaxSizeBytes
	}
	if cfg.Log.MaxBodyBytes == 0 {
		cfg.Log.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.Log.Redact == nil {
		cfg.Log.Redact = append([]string(nil), DefaultRedactFields...)
	}
	if cfg.Log.DoneChunkShape == "" {
		cfg.Log.DoneChunkShape = DefaultDoneChunkShape
	}
	if cfg.Telemetry.LoggingLevel == "" {
		cfg.Telemetry.LoggingLevel = DefaultLoggingLevel
	}
}

// DefaultConfig returns a configuration with all defaults applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
