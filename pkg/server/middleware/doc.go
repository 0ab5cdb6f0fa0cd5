// Package middleware provides the HTTP middleware chain of the Prospector
// API server.
//
// The server applies them outermost first:
//
//	Recovery -> RequestID -> Logging -> CORS -> RateLimit -> Timeout -> handler
//
// Logging also reports each request to a RequestRecorder (the Prometheus
// collector) labelled by the matched route pattern. Handlers registered
// through Route record that pattern so the outer middleware can see it.
//
// Error responses use the same JSON envelope as the API handlers:
//
//	{"error": {"code": "rate_limited", "message": "too many requests"}}
package middleware
