// Package history keeps a journal of wallpaper rotations in SQLite.
// The journal is an optional extra: writes are best-effort from the
// caller's point of view, a failed insert never blocks a rotation.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultFileName is the journal database created inside the wallpaper
// folder when no explicit path is configured.
const DefaultFileName = ".wallpaper_history.db"

// Entry is one rotation: which image was selected, how, and whether it
// made it onto the desktop.
type Entry struct {
	ID        int64
	RunID     string
	Path      string
	Index     int
	Order     string
	Applied   bool
	Strategy  string
	AppliedAt time.Time
}

// Journal is a SQLite-backed rotation log.
type Journal struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens or creates the journal database.
// Use ":memory:" for an in-memory journal, or a file path for persistent storage.
func Open(dbPath string) (*Journal, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	journal := &Journal{db: db}
	if err := journal.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return journal, nil
}

func (j *Journal) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS rotations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		path TEXT NOT NULL,
		position INTEGER NOT NULL,
		rotation_order TEXT NOT NULL,
		applied INTEGER NOT NULL,
		strategy TEXT NOT NULL DEFAULT '',
		applied_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_rotations_run_id ON rotations(run_id);
	CREATE INDEX IF NOT EXISTS idx_rotations_applied_at ON rotations(applied_at);
	`
	_, err := j.db.Exec(schema)
	return err
}

// Record appends one rotation to the journal. A zero AppliedAt is
// filled with the current time.
func (j *Journal) Record(ctx context.Context, entry Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	appliedAt := entry.AppliedAt
	if appliedAt.IsZero() {
		appliedAt = time.Now()
	}

	_, err := j.db.ExecContext(ctx,
		"INSERT INTO rotations (run_id, path, position, rotation_order, applied, strategy, applied_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		entry.RunID, entry.Path, entry.Index, entry.Order, entry.Applied, entry.Strategy, appliedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert rotation: %w", err)
	}

	return nil
}

// Recent returns the latest rotations, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if limit <= 0 {
		limit = 10
	}

	rows, err := j.db.QueryContext(ctx,
		"SELECT id, run_id, path, position, rotation_order, applied, strategy, applied_at FROM rotations ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query rotations: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var appliedAtUnix int64

		err := rows.Scan(&e.ID, &e.RunID, &e.Path, &e.Index, &e.Order, &e.Applied, &e.Strategy, &appliedAtUnix)
		if err != nil {
			return nil, fmt.Errorf("scan rotation: %w", err)
		}

		e.AppliedAt = time.Unix(appliedAtUnix, 0)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return entries, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.db.Close()
}
