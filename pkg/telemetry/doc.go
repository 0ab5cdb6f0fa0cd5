// Package telemetry groups Prospector's observability packages.
//
//   - logging: slog-based structured logging with PII redaction for
//     prospect emails, phone numbers and LinkedIn profile URLs
//   - metrics: Prometheus collectors for pipeline runs, dataset reloads,
//     exports and HTTP requests
//   - tracing: OpenTelemetry spans exported over OTLP gRPC
//   - health: liveness, readiness and version probes
//
// Each subpackage is configured from the matching section of
// config.TelemetryConfig.
package telemetry
