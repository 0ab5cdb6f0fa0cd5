// Package metrics exposes Prospector's Prometheus metrics.
//
// A Collector owns a dedicated registry and groups metrics by concern:
// query pipeline runs, dataset reloads, exports, and HTTP requests. It
// plugs into the rest of the system through small observer interfaces:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	pipeline := query.NewPipeline(query.WithObserver(collector))
//	ds := dataset.New(src, dataset.WithObserver(collector))
//	mux.Handle("/metrics", collector.Handler())
//
// All recording methods are no-ops when metrics are disabled.
package metrics
