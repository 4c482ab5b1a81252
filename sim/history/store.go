// Package history keeps a SQLite ledger of bootstrap runs: which scenario
// was launched, which implementation it named and how the run ended.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/simboot/simboot/sim"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at  TEXT NOT NULL DEFAULT '',
	finished_at TEXT NOT NULL DEFAULT '',
	source      TEXT NOT NULL DEFAULT '',
	class_name  TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL,
	message     TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_runs_class_name ON runs(class_name);
`

// Entry is one recorded run.
type Entry struct {
	ID        int64
	Started   time.Time
	Finished  time.Time
	Source    string
	ClassName string
	Status    sim.Status
	Message   string
}

// EntryFromOutcome converts a run outcome into a ledger entry.
func EntryFromOutcome(out sim.RunOutcome) Entry {
	return Entry{
		Started:   out.Started,
		Finished:  out.Finished,
		Source:    out.Source.Path,
		ClassName: out.ClassName,
		Status:    out.Status,
		Message:   out.Message,
	}
}

// Store is a SQLite-backed run ledger. It implements sim.Recorder.
type Store struct {
	db   *sql.DB
	path string
}

var _ sim.Recorder = (*Store)(nil)

// Open opens or creates the ledger at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Record implements sim.Recorder.
func (s *Store) Record(ctx context.Context, out sim.RunOutcome) error {
	_, err := s.Add(ctx, EntryFromOutcome(out))
	return err
}

// Add inserts an entry and returns its id.
func (s *Store) Add(ctx context.Context, e Entry) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (started_at, finished_at, source, class_name, status, message)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		formatTime(e.Started), formatTime(e.Finished), e.Source, e.ClassName, string(e.Status), e.Message)
	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit entries, newest first. A limit of zero or less
// returns every entry.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, source, class_name, status, message
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                 Entry
			started, finished string
			status            string
		)
		if err := rows.Scan(&e.ID, &started, &finished, &e.Source, &e.ClassName, &status, &e.Message); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		e.Status = sim.Status(status)
		if e.Started, err = parseTime(started); err != nil {
			return nil, err
		}
		if e.Finished, err = parseTime(finished); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return entries, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad timestamp %q in history: %w", s, err)
	}
	return t, nil
}
