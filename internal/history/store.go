// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history archives successful generations locally.
//
// The archive is a small SQLite database under the config directory. It
// exists so a user can revisit results after the service has rotated its
// feed: the prompt and the image URLs are kept, nothing else. Failures and
// abandoned requests are never recorded.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// =============================================================================
// ENTRY TYPE
// =============================================================================

// Entry is one archived generation.
type Entry struct {
	ID             string
	Prompt         string
	LayoutImageURL string
	SDImageURL     string
	CreatedAt      time.Time
}

// =============================================================================
// STORE
// =============================================================================

// DefaultMaxEntries bounds the archive; oldest entries are pruned past it.
const DefaultMaxEntries = 200

const schema = `
CREATE TABLE IF NOT EXISTS generations (
	id               TEXT PRIMARY KEY,
	prompt           TEXT NOT NULL,
	layout_image_url TEXT NOT NULL,
	sd_image_url     TEXT NOT NULL DEFAULT '',
	created_at       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_generations_created_at ON generations(created_at);
`

// Store is the local generation archive.
type Store struct {
	db *sql.DB

	// MaxEntries limits stored generations (0 = unlimited).
	MaxEntries int
}

// Open opens (creating if needed) the archive database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	// The archive is touched from one goroutine at a time, but the driver
	// is safer with a single connection anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &Store{db: db, MaxEntries: DefaultMaxEntries}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// =============================================================================
// WRITE OPERATIONS
// =============================================================================

// Record archives one generation and returns its ID. A zero CreatedAt is
// filled with the current time.
func (s *Store) Record(e Entry) (string, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO generations (id, prompt, layout_image_url, sd_image_url, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Prompt, e.LayoutImageURL, e.SDImageURL, e.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("failed to record generation: %w", err)
	}

	if s.MaxEntries > 0 {
		s.enforceLimit()
	}
	return e.ID, nil
}

// Delete removes one entry by ID. Deleting a missing ID is not an error.
func (s *Store) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM generations WHERE id = ?`, id)
	return err
}

// Clear removes every archived generation.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM generations`)
	return err
}

// enforceLimit prunes the oldest entries past MaxEntries. Pruning failures
// are ignored; the next Record tries again.
func (s *Store) enforceLimit() {
	s.db.Exec(
		`DELETE FROM generations WHERE id IN (
			SELECT id FROM generations ORDER BY created_at DESC LIMIT -1 OFFSET ?
		)`,
		s.MaxEntries,
	)
}

// =============================================================================
// READ OPERATIONS
// =============================================================================

// List returns archived generations, newest first. A limit of 0 returns
// everything.
func (s *Store) List(limit int) ([]Entry, error) {
	q := `SELECT id, prompt, layout_image_url, sd_image_url, created_at
	      FROM generations ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.Prompt, &e.LayoutImageURL, &e.SDImageURL, &created); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of archived generations.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM generations`).Scan(&n)
	return n, err
}
