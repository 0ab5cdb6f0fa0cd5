package config

import "time"

// Config is the root configuration structure for Prospector.
// It contains the dataset source, view defaults, export options, the HTTP
// server, and telemetry settings.
type Config struct {
	// Dataset selects where prospect records are loaded from and how the
	// loaded list is kept fresh.
	Dataset DatasetConfig `yaml:"dataset"`

	// View contains the defaults applied to a fresh view state.
	View ViewConfig `yaml:"view"`

	// Export contains CSV and JSON export settings.
	Export ExportConfig `yaml:"export"`

	// Server contains HTTP API server configuration including listen
	// address, timeouts, CORS, and rate limiting.
	Server ServerConfig `yaml:"server"`

	// Telemetry contains configuration for observability including logging,
	// metrics, and distributed tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// DatasetConfig configures the prospect dataset source.
type DatasetConfig struct {
	// Source selects the backend.
	// Options: "json", "sqlite"
	// Default: "json"
	Source string `yaml:"source"`

	// Path is the JSON dataset file. With source "sqlite" it is the file
	// imported by the import command.
	// Default: "./data/prospects.json"
	Path string `yaml:"path"`

	// SQLite configures the snapshot database used when Source is "sqlite".
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Watch reloads the dataset when the JSON file changes on disk.
	// Only meaningful with source "json".
	// Default: false
	Watch bool `yaml:"watch"`

	// WatchDebounce is the quiet period after the last file change before
	// a reload is triggered.
	// Default: 250ms
	WatchDebounce time.Duration `yaml:"watch_debounce"`

	// RefreshSchedule is a cron expression for periodic reloads.
	// Examples: "*/15 * * * *", "@hourly", "@every 5m"
	// Default: "" (disabled)
	RefreshSchedule string `yaml:"refresh_schedule"`
}

// SQLiteConfig configures the SQLite snapshot store.
type SQLiteConfig struct {
	// Path is the database file path.
	// Default: "data/prospects.db"
	Path string `yaml:"path"`

	// Driver selects the database/sql driver.
	// Options: "sqlite" (pure Go), "sqlite3" (cgo)
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// BusyTimeout is how long a connection waits on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// ViewConfig contains view-state defaults.
type ViewConfig struct {
	// DefaultGroupBy is the initial grouping.
	// Options: "none", "combined", "boomer", "industry"
	// Default: "none"
	DefaultGroupBy string `yaml:"default_group_by"`

	// DefaultColumns is the initial visible column list. Its order is the
	// CSV column order.
	// Default: the eleven standard columns starting with rating
	DefaultColumns []string `yaml:"default_columns"`

	// IndustryLimit caps the industries offered for filtering.
	// Default: 20
	IndustryLimit int `yaml:"industry_limit"`
}

// ExportConfig contains export settings.
type ExportConfig struct {
	// Filename is the suggested download name for CSV exports.
	// Default: "ma-prospects.csv"
	Filename string `yaml:"filename"`

	// StrictQuoting writes RFC 4180 CSV instead of the compatible format
	// that quotes only string values containing commas.
	// Default: false
	StrictQuoting bool `yaml:"strict_quoting"`

	// JSONPretty indents JSON exports.
	// Default: true
	JSONPretty bool `yaml:"json_pretty"`
}

// ServerConfig contains configuration for the HTTP API server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:8080", "0.0.0.0:8080").
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body.
	// Default: 15s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response.
	// Default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// Default: 15s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// RequestTimeout bounds the handling time of a single API request.
	// Default: 10s
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// CORS contains Cross-Origin Resource Sharing configuration.
	CORS CORSConfig `yaml:"cors"`

	// RateLimit throttles API requests across all clients.
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig contains CORS configuration.
type CORSConfig struct {
	// Enabled controls whether CORS headers are sent.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// AllowedOrigins is the list of origins allowed to call the API.
	// Use "*" to allow all origins.
	// Default: ["*"]
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxAge is how long browsers may cache preflight responses, in seconds.
	// Default: 3600
	MaxAge int `yaml:"max_age"`
}

// RateLimitConfig configures the API token bucket.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained request rate. Zero disables
	// rate limiting.
	// Default: 50
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// Burst is the bucket size.
	// Default: 100
	Burst int `yaml:"burst"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// RedactPII masks contact emails and LinkedIn profile URLs in logs.
	// Default: true
	RedactPII bool `yaml:"redact_pii"`

	// RedactPatterns contains additional redaction patterns.
	RedactPatterns []RedactPattern `yaml:"redact_patterns"`
}

// RedactPattern defines a custom redaction pattern.
type RedactPattern struct {
	// Name is a descriptive name for the pattern.
	Name string `yaml:"name"`

	// Pattern is the regular expression to match.
	Pattern string `yaml:"pattern"`

	// Replacement is the string to replace matches with.
	Replacement string `yaml:"replacement"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether the Prometheus endpoint is served.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "prospector"
	Namespace string `yaml:"namespace"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether spans are exported.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS for the collector connection.
	// Default: true
	Insecure bool `yaml:"insecure"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// ServiceName is the service name in traces.
	// Default: "prospector"
	ServiceName string `yaml:"service_name"`
}
