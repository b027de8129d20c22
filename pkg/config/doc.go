// Package config defines the YAML configuration for the exchange logger,
// with defaults, validation, GANYMEDE_* environment overrides, and
// debounced hot reload of the reloadable subset (redaction set, path
// filters, header capture).
package config
