// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists page transcriptions in a SQLite database so
// re-running a document only pays for pages whose rendered image changed.
// Implements: prd003-transcription (R4, incremental re-runs);
//
//	docs/ARCHITECTURE § Transcription Cache.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const dbFile = "pagemark.db"

// Store is a content-addressed transcription cache. The key is the
// SHA-256 of the annotated page image together with the model name, so a
// change to the page content, the segmentation, or the model invalidates
// the entry naturally.
type Store struct {
	db *sql.DB
}

// Open creates or opens the cache database under dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS transcriptions (
		image_hash TEXT NOT NULL,
		model      TEXT NOT NULL,
		page       INTEGER,
		markdown   TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (image_hash, model)
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Get returns the cached markdown for the image hash and model, and
// whether an entry was found.
func (s *Store) Get(imageHash, model string) (string, bool, error) {
	var markdown string
	err := s.db.QueryRow(
		`SELECT markdown FROM transcriptions WHERE image_hash = ? AND model = ?`,
		imageHash, model,
	).Scan(&markdown)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying cache: %w", err)
	}
	return markdown, true, nil
}

// Put stores (or replaces) the markdown for the image hash and model.
func (s *Store) Put(imageHash, model string, page int, markdown string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO transcriptions (image_hash, model, page, markdown, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		imageHash, model, page, markdown, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}
