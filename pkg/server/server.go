package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"dealscope/prospector/pkg/config"
	"dealscope/prospector/pkg/server/middleware"
	"dealscope/prospector/pkg/telemetry/health"
	"dealscope/prospector/pkg/telemetry/metrics"
	"dealscope/prospector/pkg/telemetry/tracing"
)

// Server is the Prospector HTTP server.
type Server struct {
	config     *config.Config
	api        *API
	health     *health.Checker
	version    health.VersionInfo
	metrics    *metrics.Collector
	httpServer *http.Server
	logger     *slog.Logger

	mu        sync.RWMutex
	isRunning bool
	addr      string
}

// Options holds the collaborators of a Server. Metrics may be nil to
// disable the /metrics endpoint and request metrics.
type Options struct {
	API     *API
	Health  *health.Checker
	Version health.VersionInfo
	Metrics *metrics.Collector
}

// New creates a server for cfg.
func New(cfg *config.Config, opts Options) *Server {
	checker := opts.Health
	if checker == nil {
		checker = health.New(0)
	}
	return &Server{
		config:  cfg,
		api:     opts.API,
		health:  checker,
		version: opts.Version,
		metrics: opts.Metrics,
		logger:  slog.Default().With("component", "server"),
	}
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	s.api.Register(mux, middleware.Route)
	mux.Handle("GET /health", middleware.Route(s.health.LivenessHandler()))
	mux.Handle("GET /ready", middleware.Route(s.health.ReadinessHandler()))
	mux.Handle("GET /version", middleware.Route(health.VersionHandler(s.version)))

	metricsCfg := s.config.Telemetry.Metrics
	if s.metrics != nil && metricsCfg.Enabled {
		mux.Handle("GET "+metricsCfg.Path, middleware.Route(s.metrics.Handler()))
	}

	var recorder middleware.RequestRecorder
	if s.metrics != nil {
		recorder = s.metrics
	}

	var handler http.Handler = mux
	handler = tracing.HTTPMiddleware(handler)
	handler = middleware.Timeout(s.config.Server.RequestTimeout)(handler)
	handler = middleware.RateLimit(s.config.Server.RateLimit)(handler)
	handler = middleware.CORS(s.config.Server.CORS)(handler)
	handler = middleware.Logging(recorder)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(handler)
	return handler
}

// Start listens on the configured address and serves until ctx is
// cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return errors.New("server is already running")
	}

	cfg := s.config.Server
	listener, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to listen on %s: %w", cfg.ListenAddress, err)
	}

	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		BaseContext: func(net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}
	s.addr = listener.Addr().String()
	s.isRunning = true
	s.mu.Unlock()

	s.logger.Info("starting API server", "address", s.addr)

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case err, ok := <-errChan:
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
		if !ok {
			return nil
		}
		return err
	}
}

// Shutdown stops accepting connections and waits up to the configured
// shutdown timeout for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning || s.httpServer == nil {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	srv := s.httpServer
	s.mu.Unlock()

	timeout := s.config.Server.ShutdownTimeout
	s.logger.Info("initiating graceful shutdown", "timeout", timeout.String())

	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("error during server shutdown", "error", err)
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.logger.Info("API server stopped")
	return nil
}

// IsRunning reports whether the server is serving.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Addr returns the bound listen address once the server has started.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}
