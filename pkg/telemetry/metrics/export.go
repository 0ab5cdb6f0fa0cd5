package metrics

import "github.com/prometheus/client_golang/prometheus"

// ExportMetrics tracks CSV and JSON exports.
//
// Metrics:
//   - prospector_exports_total: exports by format and status
//   - prospector_export_rows: rows per export histogram
type ExportMetrics struct {
	exportsTotal *prometheus.CounterVec
	rows         *prometheus.HistogramVec
}

// NewExportMetrics creates and registers export metrics.
func NewExportMetrics(namespace string, registry *prometheus.Registry) *ExportMetrics {
	em := &ExportMetrics{
		exportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "exports_total",
				Help:      "Total number of prospect exports",
			},
			[]string{"format", "status"},
		),
		rows: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "export_rows",
				Help:      "Number of rows written per export",
				Buckets:   prometheus.ExponentialBuckets(10, 4, 7), // 10 to ~40K
			},
			[]string{"format"},
		),
	}

	registry.MustRegister(em.exportsTotal, em.rows)
	return em
}

// Record records one export.
func (em *ExportMetrics) Record(format string, rows int, err error) {
	em.exportsTotal.WithLabelValues(format, statusLabel(err)).Inc()
	if err == nil {
		em.rows.WithLabelValues(format).Observe(float64(rows))
	}
}
