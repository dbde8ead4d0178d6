package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// History manages the SQLite database holding deletion history
type History struct {
	db *sql.DB
}

// DeletionRecord is one deleted directory
type DeletionRecord struct {
	ID        int64
	DeletedAt time.Time
	Path      string
	Name      string
	Method    string // "rmdir" for empty directories, "recursive" otherwise
	Entries   int    // immediate listing entries removed with the directory
	CreatedAt time.Time
}

// RunRecord is one invocation of the tool
type RunRecord struct {
	ID             int64
	StartedAt      time.Time
	Target         string
	Deleted        int
	EntriesRemoved int
	Outcome        string // "clean", "blocked:<label>", or "halted:<op>"
	DurationMS     int64
}

// Open creates the database connection and initializes the schema
func Open(dbPath string) (*History, error) {
	dir := filepath.Dir(dbPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", dir, err)
		}
	}

	// file: prefix with _loc=auto enables automatic DATETIME parsing
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?_loc=auto")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	// Exercise the connection so the file is created and permissions surface now
	if _, err = db.Exec("SELECT 1"); err != nil {
		return nil, fmt.Errorf("initialize database (check permissions on %s): %w", dbPath, err)
	}

	// WAL keeps the query tool readable while a run is writing
	if _, err = db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err = db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		return nil, fmt.Errorf("set synchronous mode: %w", err)
	}

	h := &History{db: db}
	if err = h.initSchema(); err != nil {
		return nil, err
	}

	err = nil
	return h, nil
}

// initSchema creates tables and indexes if they don't exist
func (h *History) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS deletions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		deleted_at DATETIME NOT NULL,
		path TEXT NOT NULL,
		name TEXT NOT NULL,
		method TEXT NOT NULL,
		entries INTEGER NOT NULL,

		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_deletions_deleted_at ON deletions(deleted_at);
	CREATE INDEX IF NOT EXISTS idx_deletions_path ON deletions(path);
	CREATE INDEX IF NOT EXISTS idx_deletions_method ON deletions(method);

	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at DATETIME NOT NULL,
		target TEXT NOT NULL,
		deleted INTEGER NOT NULL,
		entries_removed INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,

		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);

	-- Metadata table for schema versioning
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	INSERT OR IGNORE INTO schema_version (version) VALUES (1);
	`

	_, err := h.db.Exec(schema)
	return err
}

// RecordDeletion inserts one deleted directory
func (h *History) RecordDeletion(path, method string, entries int) error {
	_, err := h.db.Exec(`
	INSERT INTO deletions (deleted_at, path, name, method, entries)
	VALUES (?, ?, ?, ?, ?)
	`, time.Now(), path, filepath.Base(path), method, entries)
	return err
}

// RecordRun inserts one tool invocation
func (h *History) RecordRun(run RunRecord) error {
	_, err := h.db.Exec(`
	INSERT INTO runs (started_at, target, deleted, entries_removed, outcome, duration_ms)
	VALUES (?, ?, ?, ?, ?, ?)
	`, run.StartedAt, run.Target, run.Deleted, run.EntriesRemoved, run.Outcome, run.DurationMS)
	return err
}

// Close closes the database connection
func (h *History) Close() error {
	return h.db.Close()
}

// Vacuum optimizes the database (run occasionally, e.g. after pruning)
func (h *History) Vacuum() error {
	_, err := h.db.Exec("VACUUM")
	return err
}

// PruneOlderThan removes deletion records older than the given number of days
// and returns how many rows went away.
func (h *History) PruneOlderThan(days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	result, err := h.db.Exec(`DELETE FROM deletions WHERE deleted_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
