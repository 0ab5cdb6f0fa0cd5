package metrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"dealscope/prospector/pkg/config"
	"dealscope/prospector/pkg/dataset"
	"dealscope/prospector/pkg/prospect/query"
)

var (
	_ query.Observer         = (*Collector)(nil)
	_ dataset.ReloadObserver = (*Collector)(nil)
)

func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{Enabled: true, Namespace: "test", Path: "/metrics"}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)
	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}

	if NewCollector(nil, nil).Registry() == nil {
		t.Error("Expected a registry to be created")
	}
}

func TestCollector_ObservePipeline(t *testing.T) {
	c := NewCollector(testConfig(), nil)

	c.ObservePipeline("combined", 2*time.Millisecond, 100, 25)
	c.ObservePipeline("combined", time.Millisecond, 100, 40)
	c.ObservePipeline("", time.Millisecond, 0, 0)

	if got := testutil.ToFloat64(c.pipeline.runsTotal.WithLabelValues("combined")); got != 2 {
		t.Errorf("Expected 2 combined runs, got %v", got)
	}
	if got := testutil.ToFloat64(c.pipeline.runsTotal.WithLabelValues("none")); got != 1 {
		t.Errorf("Expected empty grouping recorded as none, got %v", got)
	}
	if got := testutil.ToFloat64(c.pipeline.filtered); got != 0 {
		t.Errorf("Expected gauge to hold last filtered count 0, got %v", got)
	}
	if n := testutil.CollectAndCount(c.pipeline.duration); n != 2 {
		t.Errorf("Expected 2 duration series, got %d", n)
	}
}

func TestCollector_ObserveReload(t *testing.T) {
	c := NewCollector(testConfig(), nil)

	c.ObserveReload("file", 10*time.Millisecond, 1200, nil)
	c.ObserveReload("file", 10*time.Millisecond, 0, errors.New("boom"))
	c.ObserveReload("file", time.Millisecond, 0, fmt.Errorf("load: %w", context.Canceled))

	if got := testutil.ToFloat64(c.dataset.reloadsTotal.WithLabelValues("success")); got != 1 {
		t.Errorf("Expected 1 successful reload, got %v", got)
	}
	if got := testutil.ToFloat64(c.dataset.reloadsTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("Expected 1 failed reload, got %v", got)
	}
	if got := testutil.ToFloat64(c.dataset.reloadsTotal.WithLabelValues("canceled")); got != 1 {
		t.Errorf("Expected 1 canceled reload, got %v", got)
	}
	if got := testutil.ToFloat64(c.dataset.prospects); got != 1200 {
		t.Errorf("Expected failed reloads to keep the gauge at 1200, got %v", got)
	}
	if got := testutil.ToFloat64(c.dataset.lastSuccess); got == 0 {
		t.Error("Expected last success timestamp to be set")
	}
}

func TestCollector_RecordExport(t *testing.T) {
	c := NewCollector(testConfig(), nil)

	c.RecordExport("csv", 50, nil)
	c.RecordExport("csv", 0, errors.New("disk full"))

	expected := `
# HELP test_exports_total Total number of prospect exports
# TYPE test_exports_total counter
test_exports_total{format="csv",status="error"} 1
test_exports_total{format="csv",status="success"} 1
`
	if err := testutil.CollectAndCompare(c.exports.exportsTotal, strings.NewReader(expected)); err != nil {
		t.Error(err)
	}
}

func TestCollector_RecordHTTPRequest(t *testing.T) {
	c := NewCollector(testConfig(), nil)
	c.routes = NewCardinalityLimiter(1)

	c.RecordHTTPRequest("GET", "/api/v1/view", 200, time.Millisecond)
	c.RecordHTTPRequest("GET", "/api/v1/view", 200, time.Millisecond)
	c.RecordHTTPRequest("GET", "/api/v1/state", 200, time.Millisecond)

	if got := testutil.ToFloat64(c.http.requestsTotal.WithLabelValues("GET", "/api/v1/view", "200")); got != 2 {
		t.Errorf("Expected 2 view requests, got %v", got)
	}
	if got := testutil.ToFloat64(c.http.requestsTotal.WithLabelValues("GET", "other", "200")); got != 1 {
		t.Errorf("Expected route over the limit to be folded into other, got %v", got)
	}

	c.HTTPInFlight(1)
	c.HTTPInFlight(1)
	c.HTTPInFlight(-1)
	if got := testutil.ToFloat64(c.http.inFlight); got != 1 {
		t.Errorf("Expected 1 in flight, got %v", got)
	}
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	c := NewCollector(cfg, nil)

	c.ObservePipeline("none", time.Millisecond, 1, 1)
	c.ObserveReload("file", time.Millisecond, 1, nil)
	c.RecordExport("csv", 1, nil)
	c.RecordHTTPRequest("GET", "/", 200, time.Millisecond)

	if n := testutil.CollectAndCount(c.pipeline.runsTotal); n != 0 {
		t.Errorf("Expected no pipeline series when disabled, got %d", n)
	}
	if n := testutil.CollectAndCount(c.http.requestsTotal); n != 0 {
		t.Errorf("Expected no http series when disabled, got %d", n)
	}
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector(testConfig(), nil)
	c.ObservePipeline("industry", time.Millisecond, 10, 5)

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("scrape failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `test_pipeline_runs_total{group_by="industry"} 1`) {
		t.Errorf("Expected pipeline counter in scrape output, got:\n%s", body)
	}
}

func TestCardinalityLimiter(t *testing.T) {
	cl := NewCardinalityLimiter(2)

	if !cl.Allow("a") || !cl.Allow("b") {
		t.Fatal("Expected first two label sets to be allowed")
	}
	if cl.Allow("c") {
		t.Error("Expected third label set to be rejected")
	}
	if !cl.Allow("a") {
		t.Error("Expected known label set to stay allowed")
	}
	if cl.Count() != 2 {
		t.Errorf("Expected count 2, got %d", cl.Count())
	}
}
