package config

import (
	"time"

	"dealscope/prospector/pkg/prospect"
	"dealscope/prospector/pkg/prospect/export"
	"dealscope/prospector/pkg/prospect/query"
	"dealscope/prospector/pkg/prospect/storage"
)

// Default values for configuration fields.
const (
	// Dataset defaults
	DefaultDatasetSource        = storage.KindJSON
	DefaultDatasetPath          = "./data/prospects.json"
	DefaultSQLitePath           = "data/prospects.db"
	DefaultSQLiteDriver         = storage.DriverModernc
	DefaultSQLiteBusyTimeout    = 5 * time.Second
	DefaultDatasetWatchDebounce = 250 * time.Millisecond

	// View defaults
	DefaultGroupBy       = "none"
	DefaultIndustryLimit = query.DefaultIndustryLimit

	// Export defaults
	DefaultExportFilename   = export.DefaultFilename
	DefaultExportJSONPretty = true

	// Server defaults
	DefaultListenAddress   = "127.0.0.1:8080"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
	DefaultRequestTimeout  = 10 * time.Second

	// CORS defaults
	DefaultCORSEnabled = true
	DefaultCORSMaxAge  = 3600 // 1 hour

	// Rate limit defaults
	DefaultRateLimitRPS   = 50.0
	DefaultRateLimitBurst = 100

	// Telemetry defaults
	DefaultLoggingLevel       = "info"
	DefaultLoggingFormat      = "text"
	DefaultLoggingRedactPII   = true
	DefaultMetricsEnabled     = true
	DefaultMetricsPath        = "/metrics"
	DefaultMetricsNamespace   = "prospector"
	DefaultTracingEndpoint    = "localhost:4317"
	DefaultTracingInsecure    = true
	DefaultTracingSampleRatio = 1.0
	DefaultTracingServiceName = "prospector"
)

// DefaultCORSAllowedOrigins is the default CORS origin list.
var DefaultCORSAllowedOrigins = []string{"*"}

// NewDefault returns a configuration with every field at its default,
// including boolean options whose default is true. LoadConfig decodes YAML
// on top of it so that omitted booleans keep their defaults.
func NewDefault() *Config {
	cfg := &Config{}
	cfg.Export.JSONPretty = DefaultExportJSONPretty
	cfg.Server.CORS.Enabled = DefaultCORSEnabled
	cfg.Telemetry.Logging.RedactPII = DefaultLoggingRedactPII
	cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
	cfg.Telemetry.Tracing.Insecure = DefaultTracingInsecure
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields with their defaults. Boolean
// fields are left alone; see NewDefault.
func ApplyDefaults(cfg *Config) {
	// Dataset defaults
	if cfg.Dataset.Source == "" {
		cfg.Dataset.Source = DefaultDatasetSource
	}
	if cfg.Dataset.Path == "" {
		cfg.Dataset.Path = DefaultDatasetPath
	}
	if cfg.Dataset.SQLite.Path == "" {
		cfg.Dataset.SQLite.Path = DefaultSQLitePath
	}
	if cfg.Dataset.SQLite.Driver == "" {
		cfg.Dataset.SQLite.Driver = DefaultSQLiteDriver
	}
	if cfg.Dataset.SQLite.BusyTimeout == 0 {
		cfg.Dataset.SQLite.BusyTimeout = DefaultSQLiteBusyTimeout
	}
	if cfg.Dataset.WatchDebounce == 0 {
		cfg.Dataset.WatchDebounce = DefaultDatasetWatchDebounce
	}

	// View defaults
	if cfg.View.DefaultGroupBy == "" {
		cfg.View.DefaultGroupBy = DefaultGroupBy
	}
	if len(cfg.View.DefaultColumns) == 0 {
		cfg.View.DefaultColumns = prospect.DefaultVisibleColumns()
	}
	if cfg.View.IndustryLimit == 0 {
		cfg.View.IndustryLimit = DefaultIndustryLimit
	}

	// Export defaults
	if cfg.Export.Filename == "" {
		cfg.Export.Filename = DefaultExportFilename
	}

	// Server defaults
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	applyCORSDefaults(cfg)
	if cfg.Server.RateLimit.RequestsPerSecond == 0 {
		cfg.Server.RateLimit.RequestsPerSecond = DefaultRateLimitRPS
	}
	if cfg.Server.RateLimit.Burst == 0 {
		cfg.Server.RateLimit.Burst = DefaultRateLimitBurst
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Tracing.Endpoint == "" {
		cfg.Telemetry.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingServiceName
	}
}

func applyCORSDefaults(cfg *Config) {
	if len(cfg.Server.CORS.AllowedOrigins) == 0 {
		cfg.Server.CORS.AllowedOrigins = append([]string(nil), DefaultCORSAllowedOrigins...)
	}
	if cfg.Server.CORS.MaxAge == 0 {
		cfg.Server.CORS.MaxAge = DefaultCORSMaxAge
	}
}
