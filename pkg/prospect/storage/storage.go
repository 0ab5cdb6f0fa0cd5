package storage

import (
	"context"
	"fmt"
	"time"

	"dealscope/prospector/pkg/prospect"
)

// Source supplies a fully materialised prospect list.
type Source interface {
	// Name identifies the source in logs and surrogate IDs.
	Name() string

	// Load reads the complete dataset. Records are returned in source
	// order with surrogate IDs assigned.
	Load(ctx context.Context) ([]prospect.Prospect, error)

	// Close releases any resources held by the source.
	Close() error
}

// Source kinds accepted by Open.
const (
	KindJSON   = "json"
	KindSQLite = "sqlite"
)

// Config selects and configures a dataset source.
type Config struct {
	// Kind is "json" or "sqlite".
	Kind string

	// Path is the JSON dataset file, used when Kind is "json".
	Path string

	// SQLite configures the snapshot database, used when Kind is "sqlite".
	SQLite SQLiteConfig
}

// Open returns the Source described by cfg.
func Open(cfg Config) (Source, error) {
	switch cfg.Kind {
	case KindJSON, "":
		if cfg.Path == "" {
			return nil, NewStorageError(KindJSON, "open", fmt.Errorf("dataset path is required"))
		}
		return NewJSONFileSource(cfg.Path), nil
	case KindSQLite:
		sc := cfg.SQLite
		if sc.BusyTimeout == 0 {
			sc.BusyTimeout = 5 * time.Second
		}
		return NewSQLiteStore(&sc)
	default:
		return nil, NewStorageError(cfg.Kind, "open", fmt.Errorf("unsupported source kind %q", cfg.Kind))
	}
}
