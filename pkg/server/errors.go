package server

import (
	"errors"
	"net/http"

	"dealscope/prospector/pkg/dataset"
	"dealscope/prospector/pkg/prospect"
	"dealscope/prospector/pkg/prospect/storage"
	"dealscope/prospector/pkg/server/middleware"
	"dealscope/prospector/pkg/viewstate"
)

// RequestError reports a malformed request body or query parameter.
type RequestError struct {
	Field   string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

// Unwrap returns the underlying cause error.
func (e *RequestError) Unwrap() error {
	return e.Cause
}

// NewRequestError creates a new RequestError.
func NewRequestError(field, message string, cause error) *RequestError {
	return &RequestError{Field: field, Message: message, Cause: cause}
}

// errorStatus maps err to an HTTP status and error code.
func errorStatus(err error) (int, string) {
	var reqErr *RequestError
	var loadErr *prospect.LoadError
	var exportErr *prospect.ExportError
	var storageErr *storage.StorageError

	switch {
	case errors.As(err, &reqErr):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, viewstate.ErrInvalidRange):
		return http.StatusBadRequest, "invalid_range"
	case errors.Is(err, viewstate.ErrInvalidRating):
		return http.StatusBadRequest, "invalid_rating"
	case errors.Is(err, viewstate.ErrUnknownColumn):
		return http.StatusBadRequest, "unknown_column"
	case errors.Is(err, viewstate.ErrUnknownGroup):
		return http.StatusBadRequest, "unknown_group"
	case errors.Is(err, viewstate.ErrUnknownScore):
		return http.StatusNotFound, "unknown_score"
	case errors.Is(err, dataset.ErrClosed):
		return http.StatusServiceUnavailable, "dataset_closed"
	case errors.As(err, &loadErr), errors.As(err, &storageErr):
		return http.StatusBadGateway, "dataset_load_failed"
	case errors.As(err, &exportErr):
		return http.StatusInternalServerError, "export_failed"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// writeError writes err as a JSON envelope. Internal errors are logged and
// replaced with a generic message.
func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := errorStatus(err)
	message := err.Error()
	if status >= http.StatusInternalServerError && code == "internal_error" {
		a.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		message = "an internal error occurred"
	}
	middleware.WriteError(w, r, status, code, message)
}
