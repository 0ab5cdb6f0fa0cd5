package storage

import (
	"context"
	"slices"
	"sync"

	"dealscope/prospector/pkg/prospect"
)

// MemorySource serves a fixed in-memory dataset. It is mainly used by
// tests and by callers that already hold decoded records.
type MemorySource struct {
	name    string
	records []prospect.Prospect
	mu      sync.RWMutex
}

// NewMemorySource creates a source holding a copy of records.
func NewMemorySource(name string, records []prospect.Prospect) *MemorySource {
	return &MemorySource{name: name, records: slices.Clone(records)}
}

// Name returns the configured name.
func (s *MemorySource) Name() string { return s.name }

// Set replaces the held records.
func (s *MemorySource) Set(records []prospect.Prospect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = slices.Clone(records)
}

// Load returns a copy of the held records.
func (s *MemorySource) Load(ctx context.Context) ([]prospect.Prospect, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := slices.Clone(s.records)
	s.mu.RUnlock()

	if out == nil {
		out = []prospect.Prospect{}
	}
	prospect.AssignIDs(s.name, out)
	return out, nil
}

// Close is a no-op.
func (s *MemorySource) Close() error { return nil }
