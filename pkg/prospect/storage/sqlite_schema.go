package storage

// SchemaVersion is the current snapshot database schema version.
const SchemaVersion = 1

// Schema creates the snapshot tables. Each prospect is stored as its
// original JSON object alongside a few columns useful for ad-hoc queries.
const Schema = `
CREATE TABLE IF NOT EXISTS prospects (
    position INTEGER PRIMARY KEY,
    data TEXT NOT NULL,

    -- Denormalised for inspection with the sqlite3 shell
    company_name TEXT,
    full_name TEXT,
    company_industry TEXT,
    combined_score REAL
);

CREATE INDEX IF NOT EXISTS idx_prospects_industry ON prospects(company_industry);
CREATE INDEX IF NOT EXISTS idx_prospects_combined ON prospects(combined_score DESC);

CREATE TABLE IF NOT EXISTS snapshot (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    source TEXT NOT NULL,
    prospect_count INTEGER NOT NULL,
    imported_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

const (
	insertSchemaVersion = `INSERT OR IGNORE INTO schema_version (version) VALUES (?)`
	getSchemaVersion    = `SELECT MAX(version) FROM schema_version`

	selectProspects = `SELECT data FROM prospects ORDER BY position`
	deleteProspects = `DELETE FROM prospects`
	insertProspect  = `INSERT INTO prospects (position, data, company_name, full_name, company_industry, combined_score)
VALUES (?, ?, ?, ?, ?, ?)`

	upsertSnapshot = `INSERT INTO snapshot (id, source, prospect_count, imported_at) VALUES (1, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET source = excluded.source, prospect_count = excluded.prospect_count, imported_at = excluded.imported_at`
	selectSnapshot = `SELECT source, prospect_count, imported_at FROM snapshot WHERE id = 1`
)
