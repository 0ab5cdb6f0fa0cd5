package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"dealscope/prospector/pkg/config"
)

func restoreGlobals(t *testing.T) {
	t.Helper()
	provider := otel.GetTracerProvider()
	propagator := otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(provider)
		otel.SetTextMapPropagator(propagator)
	})
}

func newRecordingTracer(t *testing.T) (*Tracer, *tracetest.InMemoryExporter) {
	t.Helper()
	restoreGlobals(t)

	exporter := tracetest.NewInMemoryExporter()
	tracer, err := NewWithExporter(&config.TracingConfig{
		Enabled:     true,
		SampleRatio: 1,
		ServiceName: "prospector-test",
	}, exporter, "test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = tracer.Shutdown(context.Background()) })
	return tracer, exporter
}

func TestNew_Disabled(t *testing.T) {
	tracer, err := New(&config.TracingConfig{Enabled: false}, "test")
	require.NoError(t, err)

	assert.False(t, tracer.Enabled())

	ctx, span := tracer.Start(context.Background(), "noop")
	span.End()
	assert.Empty(t, TraceID(ctx))
	assert.NoError(t, tracer.Shutdown(context.Background()))
	assert.NoError(t, tracer.Flush(context.Background()))
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(nil, "test")
	assert.Error(t, err)
}

func TestNew_InvalidRatio(t *testing.T) {
	_, err := New(&config.TracingConfig{Enabled: true, SampleRatio: 2, Endpoint: "localhost:4317"}, "test")
	assert.Error(t, err)
}

func TestTracer_RecordsSpans(t *testing.T) {
	tracer, exporter := newRecordingTracer(t)

	ctx, span := tracer.Start(context.Background(), "dataset.reload")
	assert.NotEmpty(t, TraceID(ctx))
	SetError(span, errors.New("boom"))
	span.End()

	require.NoError(t, tracer.Flush(context.Background()))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "dataset.reload", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "boom", spans[0].Status.Description)
}

func TestSetStatus(t *testing.T) {
	tracer, exporter := newRecordingTracer(t)

	_, ok := tracer.Start(context.Background(), "ok")
	SetStatus(ok, nil)
	ok.End()

	_, failed := tracer.Start(context.Background(), "failed")
	SetStatus(failed, errors.New("bad"))
	failed.End()

	SetError(ok, nil)

	require.NoError(t, tracer.Flush(context.Background()))
	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assert.Equal(t, codes.Error, spans[1].Status.Code)
}

func TestCreateSampler(t *testing.T) {
	tests := []struct {
		ratio   float64
		wantErr bool
	}{
		{ratio: 0},
		{ratio: 0.25},
		{ratio: 1},
		{ratio: -0.1, wantErr: true},
		{ratio: 1.5, wantErr: true},
	}

	for _, tt := range tests {
		sampler, err := createSampler(tt.ratio)
		if tt.wantErr {
			assert.Error(t, err, "ratio %v", tt.ratio)
			continue
		}
		require.NoError(t, err, "ratio %v", tt.ratio)
		assert.Contains(t, sampler.Description(), "ParentBased")
	}
}

func TestCreateSampler_NeverSamplesRoots(t *testing.T) {
	restoreGlobals(t)

	exporter := tracetest.NewInMemoryExporter()
	tracer, err := NewWithExporter(&config.TracingConfig{Enabled: true, SampleRatio: 0, ServiceName: "x"}, exporter, "test")
	require.NoError(t, err)
	defer func() { _ = tracer.Shutdown(context.Background()) }()

	_, span := tracer.Start(context.Background(), "dropped")
	span.End()

	require.NoError(t, tracer.Flush(context.Background()))
	assert.Empty(t, exporter.GetSpans())
}

func TestHTTPMiddleware(t *testing.T) {
	tracer, exporter := newRecordingTracer(t)

	var traceID string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/prospects", func(w http.ResponseWriter, r *http.Request) {
		traceID = TraceID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	HTTPMiddleware(mux).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/prospects?q=acme", nil))

	require.NotEmpty(t, traceID)
	assert.Equal(t, traceID, rec.Header().Get("X-Trace-ID"))

	require.NoError(t, tracer.Flush(context.Background()))
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /api/prospects", spans[0].Name)
}

func TestHTTPMiddleware_ContinuesParentTrace(t *testing.T) {
	tracer, exporter := newRecordingTracer(t)

	parentCtx, parent := tracer.Start(context.Background(), "client")
	headers := http.Header{}
	Inject(parentCtx, headers)
	parent.End()

	require.NotEmpty(t, headers.Get("traceparent"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header = headers
	rec := httptest.NewRecorder()
	HTTPMiddleware(http.NotFoundHandler()).ServeHTTP(rec, req)

	assert.Equal(t, TraceID(parentCtx), rec.Header().Get("X-Trace-ID"))

	require.NoError(t, tracer.Flush(context.Background()))
	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
}

func TestExtract_NoHeaders(t *testing.T) {
	restoreGlobals(t)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	ctx := Extract(context.Background(), http.Header{})
	assert.Empty(t, TraceID(ctx))
}

var _ sdktrace.SpanExporter = (*tracetest.InMemoryExporter)(nil)
