package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DatasetMetrics tracks dataset reloads.
//
// Metrics:
//   - prospector_dataset_reloads_total: reload attempts by status
//   - prospector_dataset_reload_duration_seconds: load duration histogram
//   - prospector_dataset_prospects: records in the published snapshot
//   - prospector_dataset_last_success_timestamp_seconds: time of last good load
type DatasetMetrics struct {
	reloadsTotal *prometheus.CounterVec
	duration     prometheus.Histogram
	prospects    prometheus.Gauge
	lastSuccess  prometheus.Gauge
}

// NewDatasetMetrics creates and registers dataset metrics.
func NewDatasetMetrics(namespace string, registry *prometheus.Registry) *DatasetMetrics {
	dm := &DatasetMetrics{
		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "dataset",
				Name:      "reloads_total",
				Help:      "Total number of dataset reload attempts",
			},
			[]string{"status"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "reload_duration_seconds",
			Help:      "Duration of dataset loads in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		prospects: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "prospects",
			Help:      "Number of prospects in the current dataset snapshot",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful dataset load",
		}),
	}

	registry.MustRegister(dm.reloadsTotal, dm.duration, dm.prospects, dm.lastSuccess)
	return dm
}

// Record records one reload attempt. The prospect gauge only moves on
// success because a failed reload keeps the previous snapshot.
func (dm *DatasetMetrics) Record(duration time.Duration, count int, err error) {
	dm.reloadsTotal.WithLabelValues(statusLabel(err)).Inc()
	dm.duration.Observe(duration.Seconds())
	if err == nil {
		dm.prospects.Set(float64(count))
		dm.lastSuccess.SetToCurrentTime()
	}
}
