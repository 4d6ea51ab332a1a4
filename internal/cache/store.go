// Package cache resolves language tags to validated word lists.
//
// Downloaded lists are persisted in a local SQLite database so each language
// is fetched from its remote source at most once. A cache miss triggers a
// download, validation, and a store write; a list that fails validation is
// never cached.
package cache

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store handles SQLite persistence for downloaded word lists.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Schema for the cache database.
const schema = `
CREATE TABLE IF NOT EXISTS wordlists (
    lang TEXT PRIMARY KEY CHECK(length(lang) > 0 AND length(lang) <= 8),
    url TEXT NOT NULL,
    body TEXT NOT NULL CHECK(length(body) > 0),
    fetched_at TIMESTAMP NOT NULL
);
`

// OpenStore opens (creating if necessary) the cache database at dbPath and
// initializes the schema.
//
// Parameters:
//   - dbPath: path to the SQLite database file
//   - logger: structured logger instance
//
// Returns a new Store instance or an error if initialization fails.
func OpenStore(dbPath string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("cache: failed to open database: %w", err)
	}

	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: failed to set synchronous mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: failed to create schema: %w", err)
	}

	logger.Debug("Cache database opened", "path", dbPath)

	return &Store{db: db, logger: logger}, nil
}

// Get returns the cached raw word list body for a language.
//
// Parameters:
//   - ctx: context for cancellation and timeout control
//   - lang: the language tag
//
// Returns the body and true on a hit, or "" and false on a miss.
func (s *Store) Get(ctx context.Context, lang string) (string, bool, error) {
	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM wordlists WHERE lang = ?`, lang).Scan(&body)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache: failed to read cached word list: %w", err)
	}
	return body, true, nil
}

// Put stores (or replaces) the raw word list body for a language.
//
// Parameters:
//   - ctx: context for cancellation and timeout control
//   - lang: the language tag
//   - url: the remote source the body was downloaded from
//   - body: the raw word list text
//
// Returns an error if the database write fails.
func (s *Store) Put(ctx context.Context, lang, url, body string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO wordlists (lang, url, body, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(lang) DO UPDATE SET
			url = excluded.url,
			body = excluded.body,
			fetched_at = excluded.fetched_at
	`, lang, url, body, time.Now())
	if err != nil {
		return fmt.Errorf("cache: failed to store word list: %w", err)
	}
	return nil
}

// Delete removes the cached entry for a language, if any.
func (s *Store) Delete(ctx context.Context, lang string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM wordlists WHERE lang = ?`, lang); err != nil {
		return fmt.Errorf("cache: failed to delete cached word list: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
