package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	t.Run("generates request ID when not provided", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/view", nil))

		got := rec.Header().Get(RequestIDHeader)
		if len(got) != 36 {
			t.Errorf("expected a UUID request ID, got %q", got)
		}
		if seen != got {
			t.Errorf("expected context ID %q, got %q", got, seen)
		}
	})

	t.Run("uses provided request ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/view", nil)
		req.Header.Set(RequestIDHeader, "client-id-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get(RequestIDHeader); got != "client-id-123" {
			t.Errorf("expected client-id-123, got %q", got)
		}
	})

	t.Run("replaces oversized request ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/view", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLength+1))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get(RequestIDHeader); len(got) != 36 {
			t.Errorf("expected a generated UUID, got %q", got)
		}
	})

	t.Run("generates unique IDs", func(t *testing.T) {
		rec1 := httptest.NewRecorder()
		handler.ServeHTTP(rec1, httptest.NewRequest(http.MethodGet, "/", nil))
		rec2 := httptest.NewRecorder()
		handler.ServeHTTP(rec2, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec1.Header().Get(RequestIDHeader) == rec2.Header().Get(RequestIDHeader) {
			t.Error("expected distinct request IDs")
		}
	})
}
