// Package tracing configures OpenTelemetry tracing for Prospector.
//
// New installs a global tracer provider exporting over OTLP gRPC when
// telemetry.tracing.enabled is set, and a noop tracer otherwise.
// Components create spans through otel.Tracer, so they pick up whichever
// provider is installed:
//
//   - dataset.reload around every load
//   - query.run around every pipeline run
//   - export.csv and export.json around exports
//   - one server span per HTTP request (HTTPMiddleware)
//
// Example:
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version.Version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
package tracing
