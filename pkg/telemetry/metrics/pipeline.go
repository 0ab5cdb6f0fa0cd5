package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics tracks query pipeline runs.
//
// Metrics:
//   - prospector_pipeline_runs_total: runs by grouping
//   - prospector_pipeline_duration_seconds: run duration histogram
//   - prospector_pipeline_filtered_prospects: size of the last filtered set
//   - prospector_pipeline_filter_ratio: filtered/total of each run
type PipelineMetrics struct {
	runsTotal   *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	filtered    prometheus.Gauge
	filterRatio prometheus.Histogram
}

// NewPipelineMetrics creates and registers pipeline metrics.
func NewPipelineMetrics(namespace string, registry *prometheus.Registry) *PipelineMetrics {
	pm := &PipelineMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "pipeline",
				Name:      "runs_total",
				Help:      "Total number of query pipeline runs",
			},
			[]string{"group_by"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "pipeline",
				Name:      "duration_seconds",
				Help:      "Duration of query pipeline runs in seconds",
				// 100µs to ~400ms
				Buckets: prometheus.ExponentialBuckets(0.0001, 2.5, 10),
			},
			[]string{"group_by"},
		),
		filtered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "filtered_prospects",
			Help:      "Number of prospects matching the filters in the last run",
		}),
		filterRatio: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "filter_ratio",
			Help:      "Fraction of prospects kept by the filters",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
		}),
	}

	registry.MustRegister(pm.runsTotal, pm.duration, pm.filtered, pm.filterRatio)
	return pm
}

// Record records one run.
func (pm *PipelineMetrics) Record(groupBy string, duration time.Duration, total, filtered int) {
	if groupBy == "" {
		groupBy = "none"
	}
	pm.runsTotal.WithLabelValues(groupBy).Inc()
	pm.duration.WithLabelValues(groupBy).Observe(duration.Seconds())
	pm.filtered.Set(float64(filtered))
	if total > 0 {
		pm.filterRatio.Observe(float64(filtered) / float64(total))
	}
}
