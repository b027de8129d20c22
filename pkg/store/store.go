package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"mercator-hq/ganymede/pkg/exchange"
	"mercator-hq/ganymede/pkg/redact"
	"mercator-hq/ganymede/pkg/telemetry/metrics"
)

// DefaultMaxSizeBytes is the default rotation threshold (10 MiB).
const DefaultMaxSizeBytes = 10 * 1024 * 1024

// retainRatio keeps the most recent quarter of existing lines when the
// file exceeds the size budget. The retained count is ceil(n/4); a line
// is the atomic unit of truncation.
const retainRatio = 4

// Config contains configuration for the rotating log store.
type Config struct {
	// Path is the destination file. Its directory is created if absent.
	Path string

	// MaxSizeBytes is the rotation threshold. Default: 10 MiB.
	MaxSizeBytes int64

	// Redactor masks sensitive fields before serialization. Default:
	// redact.New(nil).
	Redactor *redact.Redactor

	// Metrics is the operational side channel. Optional.
	Metrics *metrics.Metrics

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Store appends one redacted, JSON-serialized record per line to the
// destination file, rotating it under the size budget before each write.
type Store struct {
	mu       sync.Mutex
	path     string
	maxSize  int64
	redactor *redact.Redactor
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// New creates a Store and verifies the destination is usable: the
// directory is created if absent, and an unwritable destination is a
// constructor error, not a per-exchange one.
func New(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("store: path is required")
	}
	if cfg.MaxSizeBytes <= 0 {
		cfg.MaxSizeBytes = DefaultMaxSizeBytes
	}
	if cfg.Redactor == nil {
		cfg.Redactor = redact.New(nil)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if dir := filepath.Dir(cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: failed to create log directory %q: %w", dir, err)
		}
	}
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("store: log file %q is not writable: %w", cfg.Path, err)
	}
	_ = f.Close()

	return &Store{
		path:     cfg.Path,
		maxSize:  cfg.MaxSizeBytes,
		redactor: cfg.Redactor,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger.With("component", "store"),
	}, nil
}

// Path returns the destination file path.
func (s *Store) Path() string {
	return s.path
}

// SetRedactor swaps the redaction set, used by configuration hot reload.
func (s *Store) SetRedactor(r *redact.Redactor) {
	if r == nil {
		return
	}
	s.mu.Lock()
	s.redactor = r
	s.mu.Unlock()
}

// Append serializes one record through the redactor and appends it as a
// single line, rotating the file first if it exceeds the size budget.
// All failures are swallowed into the operational side channel; Append
// never reports an error to the exchange that produced the record.
func (s *Store) Append(rec *exchange.LogRecord) {
	if rec == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	line, err := s.serialize(rec)
	if err != nil {
		s.reportError("failed to serialize record", rec.CorrelationID, err)
		return
	}

	if err := s.rotateLocked(); err != nil {
		s.reportError("rotation failed", rec.CorrelationID, err)
		// Fall through: a failed rotation must not lose the new record.
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		s.reportError("failed to open log file", rec.CorrelationID, err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		s.reportError("failed to append record", rec.CorrelationID, err)
	}
}

// Sweep runs the rotation check without appending, for the off-path
// scheduled sweeper. Returns whether a rotation occurred.
func (s *Store) Sweep() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if before.Size() <= s.maxSize {
		return false, nil
	}
	if err := s.rotateLocked(); err != nil {
		return false, err
	}
	return true, nil
}

// serialize redacts and marshals a record into one line. Redaction works
// on the record's JSON form so every configured field name is masked at
// any nesting depth, in request and response bodies alike.
func (s *Store) serialize(rec *exchange.LogRecord) ([]byte, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	var asMap map[string]any
	if err := json.Unmarshal(raw, &asMap); err != nil {
		return nil, err
	}
	return json.Marshal(s.redactor.Apply(asMap))
}

// rotateLocked truncates the file to its most recent quarter of lines
// when it exceeds the size budget. Caller holds the mutex.
func (s *Store) rotateLocked() error {
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Size() <= s.maxSize {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	keep := (len(lines) + retainRatio - 1) / retainRatio
	retained := lines[len(lines)-keep:]

	var sb strings.Builder
	for _, line := range retained {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(s.path, []byte(sb.String()), 0o644); err != nil {
		return err
	}

	s.metrics.Rotation()
	s.logger.Info("log file rotated",
		"path", s.path,
		"prior_lines", len(lines),
		"retained_lines", keep,
		"prior_bytes", info.Size(),
	)
	return nil
}

func (s *Store) reportError(msg, correlationID string, err error) {
	s.metrics.StoreError()
	s.logger.Error(msg,
		"path", s.path,
		"correlation_id", correlationID,
		"error", err,
	)
}
