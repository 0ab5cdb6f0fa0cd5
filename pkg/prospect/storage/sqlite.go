package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"dealscope/prospector/pkg/prospect"
)

// SQLite driver names.
const (
	// DriverModernc is the pure-Go driver registered by modernc.org/sqlite.
	DriverModernc = "sqlite"
	// DriverMattn is the cgo driver registered by github.com/mattn/go-sqlite3.
	DriverMattn = "sqlite3"
)

// SQLiteConfig contains configuration for the SQLite snapshot store.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// Driver is DriverModernc (default) or DriverMattn.
	Driver string

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration

	// LockTimeout bounds how long Import waits for the snapshot file lock.
	// Default: 10 seconds
	LockTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:        "data/prospects.db",
		Driver:      DriverModernc,
		BusyTimeout: 5 * time.Second,
		LockTimeout: 10 * time.Second,
	}
}

// SnapshotInfo describes the most recent import.
type SnapshotInfo struct {
	Source     string
	Count      int
	ImportedAt time.Time
}

// SQLiteStore keeps a dataset snapshot in SQLite. It is both a Source and
// the target of Import.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
	lock   *flock.Flock
	logger *slog.Logger
}

// NewSQLiteStore opens (creating if needed) the snapshot database.
func NewSQLiteStore(config *SQLiteConfig) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if config.Path == "" {
		return nil, NewStorageError(KindSQLite, "open", errors.New("database path is required"))
	}
	driver := config.Driver
	if driver == "" {
		driver = DriverModernc
	}
	if driver != DriverModernc && driver != DriverMattn {
		return nil, NewStorageError(KindSQLite, "open", fmt.Errorf("unsupported driver %q", driver))
	}

	logger := slog.Default().With("component", "prospect.storage.sqlite")

	db, err := sql.Open(driver, config.Path)
	if err != nil {
		return nil, NewStorageError(KindSQLite, "open", err)
	}
	// PRAGMAs are per connection; a single connection keeps them in force.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{
		db:     db,
		config: config,
		lock:   flock.New(config.Path + ".lock"),
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite snapshot store initialized",
		"path", config.Path,
		"driver", driver,
	)
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return NewStorageError(KindSQLite, "enable_wal", err)
	}

	busy := s.config.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busy.Milliseconds())); err != nil {
		return NewStorageError(KindSQLite, "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return NewStorageError(KindSQLite, "create_schema", err)
	}
	if _, err := s.db.Exec(insertSchemaVersion, SchemaVersion); err != nil {
		return NewStorageError(KindSQLite, "insert_schema_version", err)
	}

	var version int
	if err := s.db.QueryRow(getSchemaVersion).Scan(&version); err != nil {
		return NewStorageError(KindSQLite, "get_schema_version", err)
	}
	if version != SchemaVersion {
		return NewStorageError(KindSQLite, "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}
	return nil
}

// Name identifies the store.
func (s *SQLiteStore) Name() string { return "sqlite:" + s.config.Path }

// Load reads every stored prospect in import order. Rows that fail to
// decode are logged and loaded as empty records so positions are kept.
func (s *SQLiteStore) Load(ctx context.Context) ([]prospect.Prospect, error) {
	rows, err := s.db.QueryContext(ctx, selectProspects)
	if err != nil {
		return nil, prospect.NewLoadError(s.Name(), NewStorageError(KindSQLite, "load", err))
	}
	defer rows.Close()

	records := make([]prospect.Prospect, 0)
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, prospect.NewLoadError(s.Name(), NewStorageError(KindSQLite, "scan", err))
		}
		var p prospect.Prospect
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			s.logger.Warn("stored prospect has fields of unexpected type", "position", len(records), "error", err)
		}
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, prospect.NewLoadError(s.Name(), NewStorageError(KindSQLite, "load", err))
	}

	prospect.AssignIDs(s.Name(), records)
	return records, nil
}

// Import replaces the stored snapshot with records in a single transaction.
// An exclusive file lock keeps concurrent importers from interleaving.
func (s *SQLiteStore) Import(ctx context.Context, source string, records []prospect.Prospect) error {
	lockTimeout := s.config.LockTimeout
	if lockTimeout <= 0 {
		lockTimeout = 10 * time.Second
	}
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	locked, err := s.lock.TryLockContext(lockCtx, 100*time.Millisecond)
	if err != nil {
		return NewStorageError(KindSQLite, "lock", err)
	}
	if !locked {
		return NewStorageError(KindSQLite, "lock", errors.New("snapshot is locked by another import"))
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			s.logger.Warn("failed to release snapshot lock", "error", err)
		}
	}()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return NewStorageError(KindSQLite, "begin", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteProspects); err != nil {
		return NewStorageError(KindSQLite, "clear", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertProspect)
	if err != nil {
		return NewStorageError(KindSQLite, "prepare", err)
	}
	defer stmt.Close()

	for i := range records {
		p := &records[i]
		data, err := json.Marshal(p)
		if err != nil {
			return NewStorageError(KindSQLite, "encode", fmt.Errorf("prospect %d: %w", i, err))
		}
		if _, err := stmt.ExecContext(ctx, i, string(data), p.CompanyName, p.FullName, p.CompanyIndustry, p.Combined()); err != nil {
			return NewStorageError(KindSQLite, "insert", fmt.Errorf("prospect %d: %w", i, err))
		}
	}

	importedAt := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.ExecContext(ctx, upsertSnapshot, source, len(records), importedAt); err != nil {
		return NewStorageError(KindSQLite, "snapshot", err)
	}
	if err := tx.Commit(); err != nil {
		return NewStorageError(KindSQLite, "commit", err)
	}

	s.logger.Info("snapshot imported", "source", source, "prospects", len(records))
	return nil
}

// Snapshot returns metadata for the last import, or sql.ErrNoRows wrapped
// in a StorageError if nothing has been imported yet.
func (s *SQLiteStore) Snapshot(ctx context.Context) (*SnapshotInfo, error) {
	var (
		info       SnapshotInfo
		importedAt string
	)
	err := s.db.QueryRowContext(ctx, selectSnapshot).Scan(&info.Source, &info.Count, &importedAt)
	if err != nil {
		return nil, NewStorageError(KindSQLite, "snapshot", err)
	}
	if info.ImportedAt, err = time.Parse(time.RFC3339Nano, importedAt); err != nil {
		return nil, NewStorageError(KindSQLite, "snapshot", err)
	}
	return &info, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
