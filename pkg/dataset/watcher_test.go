package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

type countingReloader struct {
	calls atomic.Int32
}

func (r *countingReloader) Reload(context.Context) error {
	r.calls.Add(1)
	return nil
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestNewWatcher_RequiresPath(t *testing.T) {
	if _, err := NewWatcher(&WatcherConfig{}, &countingReloader{}); err == nil {
		t.Error("Expected error for empty path")
	}
	if _, err := NewWatcher(nil, &countingReloader{}); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prospects.json")
	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}

	target := &countingReloader{}
	w, err := NewWatcher(&WatcherConfig{Path: path, Debounce: 50 * time.Millisecond}, target)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte(`[{"fullName":"A"}]`), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if !waitFor(t, 2*time.Second, func() bool { return target.calls.Load() >= 1 }) {
		t.Fatal("Expected a reload after the file changed")
	}
	time.Sleep(150 * time.Millisecond)
	if got := target.calls.Load(); got != 1 {
		t.Errorf("Expected burst to collapse into 1 reload, got %d", got)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned error: %v", err)
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prospects.json")
	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}

	target := &countingReloader{}
	w, err := NewWatcher(&WatcherConfig{Path: path, Debounce: 20 * time.Millisecond}, target)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)

	if target.calls.Load() != 0 {
		t.Errorf("Expected no reload for unrelated file, got %d", target.calls.Load())
	}

	cancel()
	<-done
}

func TestWatcher_RejectsSecondWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prospects.json")

	w, err := NewWatcher(&WatcherConfig{Path: path}, &countingReloader{})
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()
	time.Sleep(50 * time.Millisecond)

	if err := w.Watch(ctx); !errors.Is(err, ErrWatcherRunning) {
		t.Errorf("Expected ErrWatcherRunning, got %v", err)
	}

	cancel()
	<-done
}

func TestWatcher_CloseWithoutWatch(t *testing.T) {
	w, err := NewWatcher(&WatcherConfig{Path: filepath.Join(t.TempDir(), "x.json")}, &countingReloader{})
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
