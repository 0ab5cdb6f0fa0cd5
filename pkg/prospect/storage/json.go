package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"

	"dealscope/prospector/pkg/prospect"
)

// JSONFileSource reads a JSON array of prospects from disk.
type JSONFileSource struct {
	path   string
	logger *slog.Logger
}

// NewJSONFileSource creates a source for the file at path.
func NewJSONFileSource(path string) *JSONFileSource {
	return &JSONFileSource{
		path:   path,
		logger: slog.Default().With("component", "prospect.storage.json"),
	}
}

// Name returns the file path.
func (s *JSONFileSource) Name() string { return s.path }

// Path returns the file path.
func (s *JSONFileSource) Path() string { return s.path }

// Load reads and decodes the whole file.
func (s *JSONFileSource) Load(ctx context.Context) ([]prospect.Prospect, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, prospect.NewLoadError(s.path, err)
	}

	records, skipped, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, prospect.NewLoadError(s.path, err)
	}
	if skipped != nil {
		s.logger.Warn("dataset contains fields of unexpected type; they were left empty",
			"path", s.path,
			"error", skipped,
		)
	}

	prospect.AssignIDs(s.path, records)
	s.logger.Debug("dataset loaded", "path", s.path, "prospects", len(records))
	return records, nil
}

// Close is a no-op.
func (s *JSONFileSource) Close() error { return nil }

// Decode parses a JSON array of prospects. Records are never rejected: when
// a text field holds a value of the wrong JSON type it is left empty, and
// the first such mismatch is returned as skipped. err is non-nil only when
// the input is not a JSON array at all.
func Decode(r io.Reader) (records []prospect.Prospect, skipped error, err error) {
	dec := json.NewDecoder(r)
	err = dec.Decode(&records)

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		// encoding/json keeps decoding past type mismatches in nested
		// fields, so the records are complete apart from that field.
		skipped, err = err, nil
	}
	if err != nil {
		return nil, nil, err
	}
	if records == nil {
		records = []prospect.Prospect{}
	}
	return records, skipped, nil
}
