// Package journal records conflict resolutions in a local SQLite database,
// so an engineer can audit which side of a script conflict was taken and
// recover a resolved script that was later overwritten.
package journal

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaVersion = 1

const schemaSQL = `
CREATE TABLE IF NOT EXISTS schema_version (
    version    INTEGER NOT NULL,
    applied_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
);

CREATE TABLE IF NOT EXISTS resolutions (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    file            TEXT NOT NULL,
    conflict_id     TEXT NOT NULL,
    json_key        TEXT NOT NULL CHECK(json_key IN ('script', 'code')),
    current_branch  TEXT NOT NULL DEFAULT '',
    incoming_branch TEXT NOT NULL DEFAULT '',
    choice          TEXT NOT NULL CHECK(choice IN ('current', 'incoming', 'edited')),
    script          TEXT NOT NULL,
    created_at      TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
);

CREATE INDEX IF NOT EXISTS idx_resolutions_file ON resolutions(file, created_at);
`

// Store is the resolution journal. A single connection handle is enough:
// writes are rare and serialized by the CLI.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the journal database at path.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply journal schema: %w", err)
	}
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_version`).Scan(&count); err == nil && count == 0 {
		_, _ = db.Exec(`INSERT INTO schema_version(version) VALUES(?)`, schemaVersion)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Resolution is one journaled conflict resolution.
type Resolution struct {
	ID             int64
	File           string
	ConflictID     string
	JSONKey        string
	CurrentBranch  string
	IncomingBranch string
	Choice         string
	Script         string
	CreatedAt      string
}

// Record appends a resolution to the journal.
func (s *Store) Record(ctx context.Context, r Resolution) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO resolutions(file, conflict_id, json_key, current_branch, incoming_branch, choice, script)
VALUES(?,?,?,?,?,?,?)`,
		r.File, r.ConflictID, r.JSONKey, r.CurrentBranch, r.IncomingBranch, r.Choice, r.Script)
	if err != nil {
		return 0, fmt.Errorf("record resolution for %s: %w", r.File, err)
	}
	return res.LastInsertId()
}

// Recent returns the newest resolutions, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Resolution, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, file, conflict_id, json_key, current_branch, incoming_branch, choice, script, created_at
FROM resolutions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list resolutions: %w", err)
	}
	defer rows.Close()

	var out []Resolution
	for rows.Next() {
		var r Resolution
		if err := rows.Scan(&r.ID, &r.File, &r.ConflictID, &r.JSONKey,
			&r.CurrentBranch, &r.IncomingBranch, &r.Choice, &r.Script, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan resolution: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
