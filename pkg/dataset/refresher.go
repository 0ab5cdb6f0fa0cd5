package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher reloads a dataset on a cron schedule.
//
// Common schedules:
//   - "*/15 * * * *" - every 15 minutes
//   - "0 * * * *"    - hourly
//   - "@every 30s"   - fixed interval
type Refresher struct {
	schedule string
	target   Reloader
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewRefresher creates a refresher. An empty schedule yields a refresher
// whose Start is a no-op.
func NewRefresher(schedule string, target Reloader) *Refresher {
	return &Refresher{
		schedule: schedule,
		target:   target,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "dataset.refresher"),
	}
}

// ValidateSchedule reports whether schedule is a valid standard cron
// expression or descriptor. The empty schedule is valid.
func ValidateSchedule(schedule string) error {
	if schedule == "" {
		return nil
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}
	return nil
}

// Start schedules reloads and returns immediately. The refresher stops when
// ctx is cancelled or Stop is called.
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.schedule == "" {
		r.logger.Info("refresh schedule not configured, skipping refresher")
		return nil
	}
	if r.running {
		return fmt.Errorf("refresher already running")
	}
	if err := ValidateSchedule(r.schedule); err != nil {
		return err
	}

	if _, err := r.cron.AddFunc(r.schedule, func() { r.refresh(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}

	r.cron.Start()
	r.running = true
	r.logger.Info("dataset refresher started", "schedule", r.schedule)

	go func() {
		<-ctx.Done()
		r.Stop()
	}()
	return nil
}

func (r *Refresher) refresh(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	r.logger.Debug("scheduled dataset refresh")
	if err := r.target.Reload(ctx); err != nil {
		r.logger.Error("scheduled dataset refresh failed", "error", err)
	}
}

// Stop stops the schedule and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}
	<-r.cron.Stop().Done()
	r.running = false
	r.logger.Info("dataset refresher stopped")
}

// IsRunning reports whether the schedule is active.
func (r *Refresher) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// NextRun returns the next scheduled refresh, or nil when not running.
func (r *Refresher) NextRun() *time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return nil
	}
	entries := r.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
