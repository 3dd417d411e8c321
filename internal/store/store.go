// Package store persists users, auxiliaries, events, posts, and sessions
// in a single SQLite database. It is the application's Event Source: the
// calendar handler asks it for every event that might overlap a month grid
// and feeds the result to the layout engine.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"

	apperrors "congregate/pkg/errors"
)

// Schema for the congregate content store.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id              TEXT PRIMARY KEY,
    username        TEXT NOT NULL UNIQUE,
    name            TEXT NOT NULL,
    email           TEXT NOT NULL DEFAULT '',
    password_hash   TEXT NOT NULL,
    role            TEXT NOT NULL,
    created_at      INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS auxiliaries (
    id      TEXT PRIMARY KEY,
    slug    TEXT NOT NULL UNIQUE,
    name    TEXT NOT NULL,
    color   TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS events (
    id              TEXT PRIMARY KEY,
    auxiliary_id    TEXT NOT NULL REFERENCES auxiliaries(id),
    title           TEXT NOT NULL,
    location        TEXT NOT NULL DEFAULT '',
    description     TEXT NOT NULL DEFAULT '',
    start_date      INTEGER NOT NULL,
    end_date        INTEGER,
    rrule           TEXT NOT NULL DEFAULT '',
    created_by      TEXT NOT NULL DEFAULT '',
    created_at      INTEGER NOT NULL,
    updated_at      INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_date);
CREATE INDEX IF NOT EXISTS idx_events_auxiliary ON events(auxiliary_id, start_date);

CREATE TABLE IF NOT EXISTS posts (
    id          TEXT PRIMARY KEY,
    slug        TEXT NOT NULL UNIQUE,
    title       TEXT NOT NULL,
    body        TEXT NOT NULL,
    author_id   TEXT NOT NULL REFERENCES users(id),
    published   INTEGER NOT NULL DEFAULT 0,
    created_at  INTEGER NOT NULL,
    updated_at  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_posts_published ON posts(published, created_at);

CREATE TABLE IF NOT EXISTS sessions (
    id          TEXT PRIMARY KEY,
    user_id     TEXT NOT NULL REFERENCES users(id),
    created_at  INTEGER NOT NULL,
    expires_at  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_expiry ON sessions(expires_at);
`

// Store is the SQLite-backed content store.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database at the given path and applies
// the schema.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// asStoreError translates driver errors into structured application errors.
// UNIQUE and foreign-key violations become CONFLICT; everything else is
// wrapped as INTERNAL_ERROR with op as context.
func asStoreError(err error, op string) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return apperrors.Wrap(apperrors.ErrCodeConflict, err, "%s: constraint violation", op)
	}
	return apperrors.Wrap(apperrors.ErrCodeInternal, err, "%s", op)
}

// unixDate converts a stored unix timestamp back into a UTC time. Calendar
// dates are stored as midnight UTC, so the round trip is exact.
func unixDate(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

// nullableDate converts an optional date column. A NULL becomes the zero
// time, matching the model convention for single-day events.
func nullableDate(v sql.NullInt64) time.Time {
	if !v.Valid {
		return time.Time{}
	}
	return unixDate(v.Int64)
}

// dateArg converts a time for storage, NULL when zero.
func dateArg(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Unix()
}
