package dataset

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"dealscope/prospector/pkg/prospect"
	"dealscope/prospector/pkg/prospect/storage"
)

// ErrClosed is returned by Reload after Close.
var ErrClosed = errors.New("dataset closed")

// Snapshot is one materialised version of the dataset. Snapshots are never
// modified after they are published.
type Snapshot struct {
	// Records in source order.
	Records []prospect.Prospect

	// Source names the storage the records came from.
	Source string

	// LoadedAt is when the snapshot was published. Zero for the initial
	// empty snapshot.
	LoadedAt time.Time

	// Version increases by one with every successful reload.
	Version uint64
}

// Loaded reports whether the snapshot came from a successful load.
func (s *Snapshot) Loaded() bool {
	return s.Version > 0
}

// ReloadObserver receives the outcome of each reload attempt.
type ReloadObserver interface {
	ObserveReload(source string, duration time.Duration, count int, err error)
}

// Dataset is the process-wide holder of the current prospect list.
type Dataset struct {
	source   storage.Source
	current  atomic.Pointer[Snapshot]
	reloadMu sync.Mutex
	closed   atomic.Bool

	observer ReloadObserver
	tracer   trace.Tracer
	logger   *slog.Logger
}

// Option configures a Dataset.
type Option func(*Dataset)

// WithObserver reports reload outcomes to o.
func WithObserver(o ReloadObserver) Option {
	return func(d *Dataset) { d.observer = o }
}

// WithTracer overrides the global OpenTelemetry tracer.
func WithTracer(t trace.Tracer) Option {
	return func(d *Dataset) { d.tracer = t }
}

// WithLogger overrides the default component logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dataset) { d.logger = l }
}

// New creates a Dataset backed by source. It starts empty; call Reload to
// populate it.
func New(source storage.Source, opts ...Option) *Dataset {
	d := &Dataset{
		source: source,
		tracer: otel.Tracer("dealscope/prospector/dataset"),
		logger: slog.Default().With("component", "dataset"),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.current.Store(&Snapshot{Records: []prospect.Prospect{}, Source: source.Name()})
	return d
}

// Snapshot returns the current snapshot.
func (d *Dataset) Snapshot() *Snapshot {
	return d.current.Load()
}

// Records returns the current record list. Callers must not modify it.
func (d *Dataset) Records() []prospect.Prospect {
	return d.current.Load().Records
}

// Loaded reports whether at least one reload has succeeded.
func (d *Dataset) Loaded() bool {
	return d.current.Load().Loaded()
}

// Source returns the backing source.
func (d *Dataset) Source() storage.Source {
	return d.source
}

// Reload loads the full dataset from the source and publishes it. On
// failure the previous snapshot stays in place and the error is returned.
// Concurrent reloads are serialised.
func (d *Dataset) Reload(ctx context.Context) error {
	if d.closed.Load() {
		return ErrClosed
	}

	d.reloadMu.Lock()
	defer d.reloadMu.Unlock()
	if d.closed.Load() {
		return ErrClosed
	}

	ctx, span := d.tracer.Start(ctx, "dataset.reload",
		trace.WithAttributes(attribute.String("dataset.source", d.source.Name())),
	)
	defer span.End()

	start := time.Now()
	records, err := d.source.Load(ctx)
	duration := time.Since(start)

	if d.observer != nil {
		d.observer.ObserveReload(d.source.Name(), duration, len(records), err)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		prev := d.current.Load()
		d.logger.ErrorContext(ctx, "dataset reload failed, keeping previous records",
			"source", d.source.Name(),
			"kept", len(prev.Records),
			"error", err,
		)
		return err
	}

	prev := d.current.Load()
	next := &Snapshot{
		Records:  records,
		Source:   d.source.Name(),
		LoadedAt: time.Now(),
		Version:  prev.Version + 1,
	}
	d.current.Store(next)

	span.SetAttributes(
		attribute.Int("prospects.count", len(records)),
		attribute.Int64("dataset.version", int64(next.Version)),
	)
	d.logger.InfoContext(ctx, "dataset loaded",
		"source", next.Source,
		"prospects", len(records),
		"version", next.Version,
		"duration_ms", duration.Milliseconds(),
	)
	return nil
}

// Close releases the source. Subsequent reloads fail with ErrClosed; the
// last snapshot remains readable.
func (d *Dataset) Close() error {
	if d.closed.Swap(true) {
		return nil
	}
	d.reloadMu.Lock()
	defer d.reloadMu.Unlock()
	return d.source.Close()
}
