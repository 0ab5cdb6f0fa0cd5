package metrics

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"dealscope/prospector/pkg/config"
)

// Collector owns every Prometheus metric Prospector exports and records
// observations on behalf of the query pipeline, the dataset holder, the
// exporters, and the HTTP server.
//
// It satisfies query.Observer and dataset.ReloadObserver.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	pipeline *PipelineMetrics
	dataset  *DatasetMetrics
	exports  *ExportMetrics
	http     *HTTPMetrics

	routes *CardinalityLimiter
}

// NewCollector creates a collector registering its metrics with registry.
// A nil registry gets a fresh one. A nil cfg uses the defaults.
//
// Example:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	pipeline := query.NewPipeline(query.WithObserver(collector))
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if cfg == nil {
		cfg = &config.NewDefault().Telemetry.Metrics
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = config.DefaultMetricsNamespace
	}

	return &Collector{
		config:   cfg,
		registry: registry,
		pipeline: NewPipelineMetrics(namespace, registry),
		dataset:  NewDatasetMetrics(namespace, registry),
		exports:  NewExportMetrics(namespace, registry),
		http:     NewHTTPMetrics(namespace, registry),
		routes:   NewCardinalityLimiter(200),
	}
}

// ObservePipeline records one query pipeline run.
func (c *Collector) ObservePipeline(groupBy string, duration time.Duration, total, filtered int) {
	if !c.config.Enabled {
		return
	}
	c.pipeline.Record(groupBy, duration, total, filtered)
}

// ObserveReload records one dataset reload attempt.
func (c *Collector) ObserveReload(source string, duration time.Duration, count int, err error) {
	if !c.config.Enabled {
		return
	}
	c.dataset.Record(duration, count, err)
}

// RecordExport records an export of rows in format.
func (c *Collector) RecordExport(format string, rows int, err error) {
	if !c.config.Enabled {
		return
	}
	c.exports.Record(format, rows, err)
}

// RecordHTTPRequest records a completed API request. Routes beyond the
// cardinality limit are reported as "other".
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	if !c.routes.Allow(method + " " + route) {
		route = "other"
	}
	c.http.Record(method, route, status, duration)
}

// HTTPInFlight adjusts the in-flight request gauge by delta.
func (c *Collector) HTTPInFlight(delta int) {
	if !c.config.Enabled {
		return
	}
	c.http.inFlight.Add(float64(delta))
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func statusLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}

// CardinalityLimiter caps the number of distinct label sets a metric may
// grow to.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a limiter admitting up to maxCardinality
// distinct label sets.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether labelSet is already known or still fits.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	_, exists := cl.current[labelSet]
	cl.mu.RUnlock()
	if exists {
		return true
	}

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, exists := cl.current[labelSet]; exists {
		return true
	}
	if len(cl.current) >= cl.maxCardinality {
		return false
	}
	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
