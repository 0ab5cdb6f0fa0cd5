package prospect

import "fmt"

// LoadError represents a failure to read or decode a prospect dataset.
type LoadError struct {
	Source string // Dataset source ("prospects.json", "sqlite:data/prospects.db", ...)
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("load error [source=%s]: %v", e.Source, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// NewLoadError creates a new LoadError.
func NewLoadError(source string, cause error) *LoadError {
	return &LoadError{
		Source: source,
		Cause:  cause,
	}
}

// ExportError represents an error while writing an export.
type ExportError struct {
	Format      string // Export format ("csv", "json")
	RecordCount int    // Number of prospects being exported
	Cause       error  // Underlying error
}

// Error implements the error interface.
func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [format=%s, record_count=%d]: %v", e.Format, e.RecordCount, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *ExportError) Unwrap() error {
	return e.Cause
}

// NewExportError creates a new ExportError.
func NewExportError(format string, recordCount int, cause error) *ExportError {
	return &ExportError{
		Format:      format,
		RecordCount: recordCount,
		Cause:       cause,
	}
}
