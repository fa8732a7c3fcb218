// Package store persists dismissed suggestion and stale-automation
// identifiers across analysis runs.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/routinely/routinely/internal/logger"

	_ "modernc.org/sqlite" // SQLite driver for database/sql
)

// Dismissal kinds. A suggestion id and a stale-automation id live in
// separate namespaces even when they collide textually.
const (
	KindSuggestion = "suggestion"
	KindStale      = "stale"
)

// DismissalStore records which suggestions and stale automations the
// user has dismissed.
type DismissalStore interface {
	Dismiss(id, kind string) error
	Restore(id string) error
	Dismissed(kind string) (map[string]bool, error)
	Clear() error
	Close() error
}

// SQLiteStore implements DismissalStore on a local sqlite database.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// NewSQLiteStore opens (creating if needed) the dismissal database.
// An empty path defaults to ~/.routinely/routinely.db.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(homeDir, ".routinely", "routinely.db")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	// WAL mode so the serve loop and CLI can share the file.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLiteStore{db: db, dbPath: dbPath}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Debug().
		Str("path", dbPath).
		Msg("Opened dismissal store")

	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS dismissals (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		dismissed_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_dismissals_kind ON dismissals(kind);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Dismiss records an identifier. Re-dismissing an already dismissed id
// is a no-op.
func (s *SQLiteStore) Dismiss(id, kind string) error {
	if id == "" {
		return fmt.Errorf("dismissal id must not be empty")
	}
	if kind != KindSuggestion && kind != KindStale {
		return fmt.Errorf("unknown dismissal kind %q", kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO dismissals (id, kind, dismissed_at) VALUES (?, ?, ?)",
		id, kind, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to record dismissal: %w", err)
	}
	return nil
}

// Restore removes a dismissal so the item shows up again.
func (s *SQLiteStore) Restore(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM dismissals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to restore dismissal: %w", err)
	}
	return nil
}

// Dismissed returns the set of dismissed identifiers of one kind.
func (s *SQLiteStore) Dismissed(kind string) (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT id FROM dismissals WHERE kind = ?", kind)
	if err != nil {
		return nil, fmt.Errorf("failed to query dismissals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	dismissed := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan dismissal: %w", err)
		}
		dismissed[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dismissals: %w", err)
	}
	return dismissed, nil
}

// Clear removes every dismissal of both kinds.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM dismissals")
	if err != nil {
		return fmt.Errorf("failed to clear dismissals: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
