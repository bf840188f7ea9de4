// Package history persists run outcomes to a local SQLite database so past
// runs can be inspected (`xm history`). It is entirely optional: the harness
// never requires it and a persistence error never fails a run.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// migrations holds one DDL batch per schema version, applied in order. The
// current version is tracked with PRAGMA user_version.
var migrations = []string{
	`CREATE TABLE runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		guid TEXT NOT NULL UNIQUE,
		filter TEXT NOT NULL DEFAULT '',
		started_at INTEGER NOT NULL,
		finished_at INTEGER,
		tests_run INTEGER NOT NULL DEFAULT 0,
		tests_passed INTEGER NOT NULL DEFAULT 0,
		tests_ignored INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id),
		identifier TEXT NOT NULL,
		suite TEXT NOT NULL,
		passed INTEGER NOT NULL,
		elapsed_ms REAL NOT NULL,
		message TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX idx_results_run ON results(run_id);`,
}

// DB wraps the history database handle.
type DB struct {
	db *sql.DB
}

// Open opens (creating if necessary) the history database at path, creating
// parent directories and applying any pending schema migrations.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &DB{db: db}, nil
}

// Close closes the underlying handle.
func (d *DB) Close() error {
	return d.db.Close()
}

func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for ; version < len(migrations); version++ {
		if _, err := db.Exec(migrations[version]); err != nil {
			return fmt.Errorf("apply migration %d: %w", version+1, err)
		}
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", version+1)); err != nil {
			return fmt.Errorf("bump schema version: %w", err)
		}
	}
	return nil
}
