// Package history persists executed shell lines in SQLite so past commands
// can be listed and fuzzy-searched across sessions.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/runger/kubesh/internal/fuzzy"
)

// searchWindow is how many distinct recent lines Search considers before
// fuzzy-ranking them.
const searchWindow = 500

const schema = `
CREATE TABLE IF NOT EXISTS commands (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	line       TEXT NOT NULL,
	kube_ctx   TEXT NOT NULL DEFAULT '',
	kube_ns    TEXT NOT NULL DEFAULT '',
	ran_at     INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_commands_ran_at ON commands(ran_at DESC);
CREATE INDEX IF NOT EXISTS idx_commands_session ON commands(session_id);
`

// Entry is one recorded shell line.
type Entry struct {
	ID        int64
	SessionID string
	Line      string
	Context   string
	Namespace string
	RanAt     time.Time
}

// Store is the SQLite-backed history store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	// modernc.org/sqlite takes pragmas in the DSN.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	// SQLite behaves best with a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends one executed line. A zero RanAt is stamped with now.
func (s *Store) Record(ctx context.Context, e Entry) error {
	ranAt := e.RanAt
	if ranAt.IsZero() {
		ranAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO commands (session_id, line, kube_ctx, kube_ns, ran_at) VALUES (?, ?, ?, ?, ?)`,
		e.SessionID, e.Line, e.Context, e.Namespace, ranAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("record history: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, line, kube_ctx, kube_ns, ran_at FROM commands ORDER BY ran_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ranAt int64
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Line, &e.Context, &e.Namespace, &ranAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		e.RanAt = time.UnixMilli(ranAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Search fuzzy-ranks distinct recent lines against query, best match
// first, returning at most limit lines.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT line FROM commands GROUP BY line ORDER BY MAX(ran_at) DESC LIMIT ?`,
		searchWindow,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	matched := fuzzy.Match(query, lines)
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}
