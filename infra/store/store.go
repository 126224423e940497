// Package store archives completed searches in SQLite. Archived runs are
// history only; a dashboard is never rebuilt from them.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/CrestNiraj12/tweetsentiment/domain"
)

// DB wraps the SQLite database connection.
type DB struct {
	conn *sql.DB
	now  func() time.Time
}

// Open opens (creating if needed) the archive at path and initializes the schema.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create archive dir: %w", err)
		}
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db := &DB{conn: conn, now: time.Now}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		term TEXT NOT NULL,
		requested INTEGER NOT NULL,
		fetched INTEGER NOT NULL,
		dropped INTEGER NOT NULL DEFAULT 0,
		positive INTEGER NOT NULL,
		negative INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);

	CREATE TABLE IF NOT EXISTS posts (
		run_id TEXT NOT NULL REFERENCES runs(id),
		idx INTEGER NOT NULL,
		posted_at DATETIME,
		username TEXT,
		author_id TEXT,
		text TEXT NOT NULL,
		cleaned TEXT NOT NULL,
		score REAL NOT NULL,
		label TEXT NOT NULL,
		PRIMARY KEY (run_id, idx)
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRun stores a run and its scored posts in one transaction.
// A missing ID or CreatedAt is filled in on run.
func (db *DB) SaveRun(ctx context.Context, run *domain.RunSummary, corpus domain.Corpus) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = db.now().UTC()
	}
	run.Positive, run.Negative = corpus.Counts()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
	INSERT INTO runs (id, term, requested, fetched, dropped, positive, negative, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Term, run.Requested, run.Fetched, run.Dropped, run.Positive, run.Negative, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO posts (run_id, idx, posted_at, username, author_id, text, cleaned, score, label)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare posts: %w", err)
	}
	defer stmt.Close()

	for i, p := range corpus.Posts {
		var postedAt any
		if !p.CreatedAt.IsZero() {
			postedAt = p.CreatedAt.UTC()
		}
		if _, err := stmt.ExecContext(ctx, run.ID, i, postedAt, p.Username, p.AuthorID, p.Text, p.Cleaned, p.Score, p.Label.String()); err != nil {
			return fmt.Errorf("insert post %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ListRuns returns up to limit runs, newest first.
func (db *DB) ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	rows, err := db.conn.QueryContext(ctx, `
	SELECT id, term, requested, fetched, dropped, positive, negative, created_at
	FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.RunSummary
	for rows.Next() {
		var r domain.RunSummary
		if err := rows.Scan(&r.ID, &r.Term, &r.Requested, &r.Fetched, &r.Dropped, &r.Positive, &r.Negative, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// PostCount returns the number of archived posts of a run.
func (db *DB) PostCount(ctx context.Context, runID string) (int, error) {
	var n int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts WHERE run_id = ?`, runID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}
