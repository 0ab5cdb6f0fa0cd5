package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherRunning is returned when Watch is called on a running watcher.
var ErrWatcherRunning = errors.New("watcher already running")

// WatcherConfig configures a Watcher.
type WatcherConfig struct {
	// Path is the dataset file to watch.
	Path string

	// Debounce is the quiet period after the last change before a reload
	// is triggered (default: 250ms).
	Debounce time.Duration
}

// DefaultWatcherConfig returns the default watcher configuration.
func DefaultWatcherConfig() *WatcherConfig {
	return &WatcherConfig{Debounce: 250 * time.Millisecond}
}

// Reloader is the part of Dataset the watcher and refresher drive.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Watcher reloads a dataset when its backing file changes.
//
// The file's directory is watched rather than the file itself so that
// editors and tools that replace the file by rename are still seen.
type Watcher struct {
	config   *WatcherConfig
	target   Reloader
	watcher  *fsnotify.Watcher
	debounce *Debouncer
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewWatcher creates a watcher that reloads target when config.Path
// changes.
func NewWatcher(config *WatcherConfig, target Reloader) (*Watcher, error) {
	if config == nil || config.Path == "" {
		return nil, errors.New("watch path is required")
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultWatcherConfig().Debounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	abs, err := filepath.Abs(config.Path)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to resolve watch path: %w", err)
	}
	cfg := *config
	cfg.Path = abs

	return &Watcher{
		config:   &cfg,
		target:   target,
		watcher:  fw,
		debounce: NewDebouncer(cfg.Debounce),
		logger:   slog.Default().With("component", "dataset.watcher"),
	}, nil
}

// Watch blocks, reloading the target on relevant file events, until ctx is
// cancelled. It releases the underlying fsnotify watcher before returning
// and waits for any reload it started.
//
// A Watcher is single use: the fsnotify watcher is closed when Watch
// returns.
func (w *Watcher) Watch(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return ErrWatcherRunning
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.debounce.Stop()
		w.watcher.Close()

		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	dir := filepath.Dir(w.config.Path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", dir, err)
	}

	w.logger.Info("dataset watcher started",
		"path", w.config.Path,
		"debounce_ms", w.config.Debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("dataset watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}

			w.logger.Debug("dataset file event", "path", event.Name, "op", event.Op.String())

			w.debounce.Trigger(func() {
				if ctx.Err() != nil {
					return
				}
				w.logger.Info("dataset file changed, reloading", "path", w.config.Path)
				if err := w.target.Reload(ctx); err != nil {
					w.logger.Error("dataset reload failed", "error", err)
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error("dataset watcher error", "error", err)
		}
	}
}

// relevant reports whether event may have changed the dataset contents.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.config.Path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// Close releases the watcher without running it. It is safe to call after
// Watch has returned.
func (w *Watcher) Close() error {
	w.debounce.Stop()
	return w.watcher.Close()
}
