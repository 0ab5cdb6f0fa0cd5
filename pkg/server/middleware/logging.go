package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"
)

// RequestRecorder receives one observation per request.
type RequestRecorder interface {
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
	HTTPInFlight(delta int)
}

// responseWriter captures the status code and body size.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	bytes      int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.written {
		return
	}
	rw.statusCode = code
	rw.written = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

type routeKey struct{}

type routeHolder struct{ pattern atomic.Pointer[string] }

func (h *routeHolder) get() string {
	if p := h.pattern.Load(); p != nil {
		return *p
	}
	return ""
}

// Route records the ServeMux pattern that matched r so Logging can label
// the request with it. Wrap every handler registered on the mux.
func Route(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := r.Context().Value(routeKey{}).(*routeHolder); ok {
			pattern := r.Pattern
			h.pattern.Store(&pattern)
		}
		next.ServeHTTP(w, r)
	})
}

// RoutePattern returns the pattern recorded by Route, or "" before
// routing has happened.
func RoutePattern(ctx context.Context) string {
	if h, ok := ctx.Value(routeKey{}).(*routeHolder); ok {
		return h.get()
	}
	return ""
}

// Logging logs each completed request and reports it to recorder, which
// may be nil. Requests without a matched route are labelled "unmatched".
//
//	level=INFO msg="request completed" method=GET route="GET /api/v1/view" status=200 latency_ms=3 request_id=...
func Logging(recorder RequestRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			holder := &routeHolder{}
			ctx := context.WithValue(r.Context(), routeKey{}, holder)

			if recorder != nil {
				recorder.HTTPInFlight(1)
				defer recorder.HTTPInFlight(-1)
			}

			rw := newResponseWriter(w)
			next.ServeHTTP(rw, r.WithContext(ctx))

			latency := time.Since(start)
			route := holder.get()
			if route == "" {
				route = "unmatched"
			}

			level := slog.LevelInfo
			switch {
			case rw.statusCode >= 500:
				level = slog.LevelError
			case rw.statusCode >= 400:
				level = slog.LevelWarn
			}

			slog.Log(ctx, level, "request completed",
				"component", "server",
				"method", r.Method,
				"path", r.URL.Path,
				"route", route,
				"status", rw.statusCode,
				"bytes", rw.bytes,
				"latency_ms", latency.Milliseconds(),
				"remote_addr", r.RemoteAddr,
			)

			if recorder != nil {
				recorder.RecordHTTPRequest(r.Method, route, rw.statusCode, latency)
			}
		})
	}
}
