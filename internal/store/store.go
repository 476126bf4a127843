// Package store persists bookmarks, per-verse notes, and application
// metadata in a local SQLite database. Storage failures never block
// reading: every accessor degrades to empty values and keeps the app
// usable.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultFilename is the database file created under the state dir.
const DefaultFilename = "mushaf.db"

// Store wraps the SQLite connection. A Store with a nil db (failed
// open) is still safe to use and behaves as if empty.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path and ensures the schema
// exists. On failure it returns a degraded Store alongside the error
// so callers can keep going without persistence.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &Store{}, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return &Store{}, fmt.Errorf("failed to open database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return &Store{}, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// OpenDefault opens the database under dir, logging a warning and
// degrading on failure.
func OpenDefault(dir string) *Store {
	s, err := Open(filepath.Join(dir, DefaultFilename))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: bookmarks and notes unavailable: %v\n", err)
	}
	return s
}

// Close releases the connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS bookmarks (
			ayah_number integer PRIMARY KEY,
			surah_number integer NOT NULL,
			number_in_surah integer NOT NULL,
			text text NOT NULL,
			surah_name text NOT NULL,
			created_at integer NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS notes (
			surah_number integer NOT NULL,
			number_in_surah integer NOT NULL,
			body text NOT NULL,
			created_at integer NOT NULL,
			PRIMARY KEY (surah_number, number_in_surah)
		)`,
		`CREATE TABLE IF NOT EXISTS meta (
			key text PRIMARY KEY,
			value text NOT NULL
		)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) warn(op string, err error) {
	fmt.Fprintf(os.Stderr, "Warning: %s failed: %v\n", op, err)
}
