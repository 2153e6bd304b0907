// Package store persists clipboard history in a local SQLite database.
//
// The database location is given as a DSN of the form "sqlite:clipboard.db".
// Relative paths are resolved against the daemon's data directory; the
// special path ":memory:" opens an in-memory database (used by tests).
package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Scheme is the accepted DSN scheme prefix.
const Scheme = "sqlite:"

// Entry is one stored clipboard-history row.
type Entry struct {
	ID        int64
	Kind      string // "text" or "image"
	Content   string
	Hash      string
	Pinned    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store wraps the SQLite connection and the history table operations.
type Store struct {
	db   *sql.DB
	path string
}

// ResolvePath expands a DSN into a concrete SQLite file path. The "sqlite:"
// scheme is optional. Relative paths land under dataDir; absolute paths and
// ":memory:" pass through unchanged.
func ResolvePath(dsn, dataDir string) string {
	path := strings.TrimPrefix(dsn, Scheme)
	if path == ":memory:" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dataDir, path)
}

// Open opens (creating if necessary) the database at path and applies any
// pending schema migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// One writer at a time keeps the file-backed database happy; reads are
	// light (CLI queries) and share the same connection pool.
	db.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the underlying connection.
func (s *Store) Close() error { return s.db.Close() }

// HashContent returns the dedup key for a piece of clipboard content.
func HashContent(kind, content string) string {
	h := sha256.Sum256([]byte(kind + "\x00" + content))
	return hex.EncodeToString(h[:])
}

// Insert stores a clipboard entry. If an entry with the same content already
// exists, its updated_at timestamp is bumped instead of creating a duplicate
// row. Returns the entry id.
func (s *Store) Insert(kind, content string) (int64, error) {
	hash := HashContent(kind, content)
	now := time.Now().UTC()

	_, err := s.db.Exec(`
		INSERT INTO clipboard_history (kind, content, hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(hash) DO UPDATE SET updated_at = excluded.updated_at
	`, kind, content, hash, now, now)
	if err != nil {
		return 0, fmt.Errorf("insert entry: %w", err)
	}

	// last_insert_rowid is unreliable on the conflict path, so look the row
	// up by its dedup key either way.
	var id int64
	if err := s.db.QueryRow("SELECT id FROM clipboard_history WHERE hash = ?", hash).Scan(&id); err != nil {
		return 0, fmt.Errorf("lookup entry after upsert: %w", err)
	}
	return id, nil
}

// Recent returns up to limit entries, most recently used first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, kind, content, hash, pinned, created_at, updated_at
		FROM clipboard_history
		ORDER BY updated_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Content, &e.Hash, &e.Pinned, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns one entry by id.
func (s *Store) Get(id int64) (*Entry, error) {
	var e Entry
	err := s.db.QueryRow(`
		SELECT id, kind, content, hash, pinned, created_at, updated_at
		FROM clipboard_history
		WHERE id = ?
	`, id).Scan(&e.ID, &e.Kind, &e.Content, &e.Hash, &e.Pinned, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("entry %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get entry %d: %w", id, err)
	}
	return &e, nil
}

// SetPinned marks or unmarks an entry as pinned. Pinned entries survive
// Clear and Prune.
func (s *Store) SetPinned(id int64, pinned bool) error {
	res, err := s.db.Exec("UPDATE clipboard_history SET pinned = ? WHERE id = ?", pinned, id)
	if err != nil {
		return fmt.Errorf("pin entry %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("entry %d not found", id)
	}
	return nil
}

// Clear deletes all unpinned entries and returns how many were removed.
func (s *Store) Clear() (int64, error) {
	res, err := s.db.Exec("DELETE FROM clipboard_history WHERE pinned = 0")
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Prune removes the oldest unpinned entries so that at most max remain.
// A max of zero or less disables pruning.
func (s *Store) Prune(max int) (int64, error) {
	if max <= 0 {
		return 0, nil
	}
	res, err := s.db.Exec(`
		DELETE FROM clipboard_history
		WHERE pinned = 0 AND id NOT IN (
			SELECT id FROM clipboard_history
			ORDER BY updated_at DESC
			LIMIT ?
		)
	`, max)
	if err != nil {
		return 0, fmt.Errorf("prune history: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Count returns the number of stored entries.
func (s *Store) Count() (int64, error) {
	var n int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM clipboard_history").Scan(&n); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}
