package config

import (
	"fmt"
	"net"
	"regexp"
	"strings"

	"dealscope/prospector/pkg/dataset"
	"dealscope/prospector/pkg/prospect"
	"dealscope/prospector/pkg/prospect/storage"
	"dealscope/prospector/pkg/viewstate"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "server.listen_address").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. All validation errors are collected and
// returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateDataset(&cfg.Dataset)...)
	errs = append(errs, validateView(&cfg.View)...)
	errs = append(errs, validateExport(&cfg.Export)...)
	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateDataset(cfg *DatasetConfig) []FieldError {
	var errs []FieldError

	switch cfg.Source {
	case storage.KindJSON:
		if cfg.Path == "" {
			errs = append(errs, FieldError{Field: "dataset.path", Message: "path is required for json source"})
		}
	case storage.KindSQLite:
		if cfg.SQLite.Path == "" {
			errs = append(errs, FieldError{Field: "dataset.sqlite.path", Message: "path is required for sqlite source"})
		}
		if cfg.Watch {
			errs = append(errs, FieldError{Field: "dataset.watch", Message: "watch is only supported for json source"})
		}
	default:
		errs = append(errs, FieldError{
			Field:   "dataset.source",
			Message: fmt.Sprintf("must be one of: json, sqlite (got %q)", cfg.Source),
		})
	}

	if d := cfg.SQLite.Driver; d != storage.DriverModernc && d != storage.DriverMattn {
		errs = append(errs, FieldError{
			Field:   "dataset.sqlite.driver",
			Message: fmt.Sprintf("must be one of: sqlite, sqlite3 (got %q)", d),
		})
	}
	if cfg.SQLite.BusyTimeout < 0 {
		errs = append(errs, FieldError{Field: "dataset.sqlite.busy_timeout", Message: "busy timeout must be positive"})
	}
	if cfg.WatchDebounce < 0 {
		errs = append(errs, FieldError{Field: "dataset.watch_debounce", Message: "debounce must be positive"})
	}
	if err := dataset.ValidateSchedule(cfg.RefreshSchedule); err != nil {
		errs = append(errs, FieldError{Field: "dataset.refresh_schedule", Message: err.Error()})
	}

	return errs
}

func validateView(cfg *ViewConfig) []FieldError {
	var errs []FieldError

	if _, err := viewstate.ParseGroupBy(cfg.DefaultGroupBy); err != nil {
		errs = append(errs, FieldError{Field: "view.default_group_by", Message: err.Error()})
	}
	for i, col := range cfg.DefaultColumns {
		if _, ok := prospect.LookupField(col); !ok {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("view.default_columns[%d]", i),
				Message: fmt.Sprintf("unknown column %q", col),
			})
		}
	}
	if cfg.IndustryLimit < 0 {
		errs = append(errs, FieldError{Field: "view.industry_limit", Message: "industry limit must be non-negative"})
	}

	return errs
}

func validateExport(cfg *ExportConfig) []FieldError {
	var errs []FieldError

	if cfg.Filename == "" {
		errs = append(errs, FieldError{Field: "export.filename", Message: "filename is required"})
	} else if strings.ContainsAny(cfg.Filename, `/\"`) {
		errs = append(errs, FieldError{Field: "export.filename", Message: "filename must not contain path separators or quotes"})
	}

	return errs
}

func validateServer(cfg *ServerConfig) []FieldError {
	var errs []FieldError

	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{Field: "server.listen_address", Message: "listen address is required"})
	} else if _, _, err := net.SplitHostPort(cfg.ListenAddress); err != nil {
		errs = append(errs, FieldError{
			Field:   "server.listen_address",
			Message: fmt.Sprintf("invalid host:port: %v", err),
		})
	}

	timeouts := []struct {
		field string
		value int64
	}{
		{"server.read_timeout", int64(cfg.ReadTimeout)},
		{"server.write_timeout", int64(cfg.WriteTimeout)},
		{"server.idle_timeout", int64(cfg.IdleTimeout)},
		{"server.shutdown_timeout", int64(cfg.ShutdownTimeout)},
		{"server.request_timeout", int64(cfg.RequestTimeout)},
	}
	for _, tt := range timeouts {
		if tt.value < 0 {
			errs = append(errs, FieldError{Field: tt.field, Message: "timeout must be positive"})
		}
	}

	if cfg.CORS.Enabled && len(cfg.CORS.AllowedOrigins) == 0 {
		errs = append(errs, FieldError{Field: "server.cors.allowed_origins", Message: "at least one origin is required when CORS is enabled"})
	}
	if cfg.CORS.MaxAge < 0 {
		errs = append(errs, FieldError{Field: "server.cors.max_age", Message: "max age must be non-negative"})
	}

	if cfg.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, FieldError{Field: "server.rate_limit.requests_per_second", Message: "rate must be non-negative"})
	}
	if cfg.RateLimit.RequestsPerSecond > 0 && cfg.RateLimit.Burst < 1 {
		errs = append(errs, FieldError{Field: "server.rate_limit.burst", Message: "burst must be at least 1 when rate limiting is enabled"})
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(cfg.Logging.Level)] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("must be one of: debug, info, warn, error (got %q)", cfg.Logging.Level),
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "console": true}
	if !validFormats[strings.ToLower(cfg.Logging.Format)] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("must be one of: json, text, console (got %q)", cfg.Logging.Format),
		})
	}

	for i, p := range cfg.Logging.RedactPatterns {
		if p.Pattern == "" {
			errs = append(errs, FieldError{Field: fmt.Sprintf("telemetry.logging.redact_patterns[%d].pattern", i), Message: "pattern is required"})
			continue
		}
		if _, err := regexp.Compile(p.Pattern); err != nil {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("telemetry.logging.redact_patterns[%d].pattern", i),
				Message: fmt.Sprintf("invalid regular expression: %v", err),
			})
		}
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, FieldError{Field: "telemetry.metrics.path", Message: "path must start with /"})
	}

	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
		errs = append(errs, FieldError{Field: "telemetry.tracing.sample_ratio", Message: "sample ratio must be between 0.0 and 1.0"})
	}
	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint == "" {
		errs = append(errs, FieldError{Field: "telemetry.tracing.endpoint", Message: "endpoint is required when tracing is enabled"})
	}

	return errs
}
