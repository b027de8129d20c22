package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Sweeper runs the store's rotation check on a cron schedule, off the
// request path. The per-append check already enforces the size budget;
// the sweeper additionally bounds the file during long quiet periods
// after a burst of large records.
type Sweeper struct {
	store    *Store
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	logger   *slog.Logger
	running  bool
}

// NewSweeper creates a sweeper for the given store. An empty schedule
// disables it.
//
// Common cron expressions:
//   - "0 3 * * *"   - daily at 3 AM
//   - "*/10 * * * *" - every 10 minutes
func NewSweeper(store *Store, schedule string) *Sweeper {
	return &Sweeper{
		store:    store,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "store.sweeper"),
	}
}

// Start begins scheduled sweeping. If no schedule is configured the
// sweeper does nothing. The sweeper stops when ctx is cancelled or Stop
// is called.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("sweep schedule not configured, skipping sweeper")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runSweep); err != nil {
		return fmt.Errorf("failed to schedule sweep: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("rotation sweeper started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

func (s *Sweeper) runSweep() {
	rotated, err := s.store.Sweep()
	if err != nil {
		s.logger.Error("scheduled sweep failed", "error", err)
		return
	}
	if rotated {
		s.logger.Info("scheduled sweep rotated log file", "path", s.store.Path())
	} else {
		s.logger.Debug("scheduled sweep found nothing to rotate")
	}
}

// Stop stops the sweeper and waits for a running sweep to complete.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		<-s.cron.Stop().Done()
		s.running = false
		s.logger.Info("rotation sweeper stopped")
	}
}
