// Package catalog records generated problems in a SQLite database so a
// benchmark suite can be traced back to the seeds and sizes that produced it.
package catalog

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

// ErrNotFound is returned by Get for an unknown run ID.
var ErrNotFound = errors.New("run not found")

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    created_at TEXT NOT NULL,
    seed INTEGER NOT NULL,
    duration INTEGER NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    planes INTEGER NOT NULL,
    tasks INTEGER NOT NULL,
    stations INTEGER NOT NULL,
    crises INTEGER NOT NULL,
    output TEXT,
    digest TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_runs_digest ON runs(digest);
`

// Run is one catalogued generation.
type Run struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Seed     int64 `json:"seed"`
	Duration int64 `json:"duration"`
	Width    int   `json:"width"`
	Height   int   `json:"height"`
	Planes   int   `json:"planes"`
	Tasks    int   `json:"tasks"`
	Stations int   `json:"stations"`
	Crises   int   `json:"crises"`

	// Output is the file the problem was written to; empty for stdout.
	Output string `json:"output,omitempty"`

	// Digest is the hex SHA-256 of the encoded problem.
	Digest string `json:"digest"`
}

// Catalog is a SQLite-backed run log.
type Catalog struct {
	db *sql.DB
}

// Open opens or creates the catalog database at path.
func Open(ctx context.Context, path string) (*Catalog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize catalog schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Record stores r, assigning an ID and creation time when unset.
func (c *Catalog) Record(ctx context.Context, r *Run) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, seed, duration, width, height,
			planes, tasks, stations, crises, output, digest)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.UTC().Format(timeLayout), r.Seed, r.Duration, r.Width, r.Height,
		r.Planes, r.Tasks, r.Stations, r.Crises, r.Output, r.Digest)
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", r.ID, err)
	}
	return nil
}

// List returns up to limit runs, newest first. A non-positive limit returns all.
func (c *Catalog) List(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, created_at, seed, duration, width, height,
		planes, tasks, stations, crises, output, digest
		FROM runs ORDER BY created_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Get returns the run with the given ID.
func (c *Catalog) Get(ctx context.Context, id string) (Run, error) {
	row := c.db.QueryRowContext(ctx, `SELECT id, created_at, seed, duration, width, height,
		planes, tasks, stations, crises, output, digest
		FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var (
		r       Run
		created string
		output  sql.NullString
	)
	err := s.Scan(&r.ID, &created, &r.Seed, &r.Duration, &r.Width, &r.Height,
		&r.Planes, &r.Tasks, &r.Stations, &r.Crises, &output, &r.Digest)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("failed to scan run: %w", err)
	}
	r.Output = output.String
	r.CreatedAt, err = time.Parse(timeLayout, created)
	if err != nil {
		return Run{}, fmt.Errorf("run %s: bad created_at %q: %w", r.ID, created, err)
	}
	return r, nil
}

// Digest returns the hex SHA-256 of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
