package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"dealscope/prospector/pkg/config"
)

func TestCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("allowed origin is echoed", func(t *testing.T) {
		handler := CORS(config.CORSConfig{Enabled: true, AllowedOrigins: []string{"https://app.example.com"}})(ok)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/view", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
			t.Errorf("expected origin echoed, got %q", got)
		}
		if rec.Header().Get("Access-Control-Expose-Headers") == "" {
			t.Error("expected exposed headers")
		}
	})

	t.Run("wildcard allows any origin", func(t *testing.T) {
		handler := CORS(config.CORSConfig{Enabled: true, AllowedOrigins: []string{"*"}})(ok)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/view", nil)
		req.Header.Set("Origin", "https://other.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("expected *, got %q", got)
		}
	})

	t.Run("disallowed origin gets no header", func(t *testing.T) {
		handler := CORS(config.CORSConfig{Enabled: true, AllowedOrigins: []string{"https://app.example.com"}})(ok)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/view", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("expected no allow-origin header, got %q", got)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("expected request to proceed, got %d", rec.Code)
		}
	})

	t.Run("preflight", func(t *testing.T) {
		handler := CORS(config.CORSConfig{Enabled: true, AllowedOrigins: []string{"*"}, MaxAge: 600})(ok)

		req := httptest.NewRequest(http.MethodOptions, "/api/v1/state/search", nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", "PUT")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("expected 204, got %d", rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Max-Age"); got != "600" {
			t.Errorf("expected max age 600, got %q", got)
		}
		if rec.Header().Get("Access-Control-Allow-Methods") == "" {
			t.Error("expected allowed methods")
		}
	})

	t.Run("preflight from disallowed origin", func(t *testing.T) {
		handler := CORS(config.CORSConfig{Enabled: true, AllowedOrigins: []string{"https://app.example.com"}})(ok)

		req := httptest.NewRequest(http.MethodOptions, "/api/v1/state/search", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		req.Header.Set("Access-Control-Request-Method", "PUT")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		handler := CORS(config.CORSConfig{Enabled: false, AllowedOrigins: []string{"*"}})(ok)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("expected no CORS headers, got %q", got)
		}
	})
}
