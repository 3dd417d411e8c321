package store

import (
	"context"
	"database/sql"
	"errors"

	"congregate/internal/auth"
)

// Session storage backed by the sessions table. Store satisfies
// auth.SessionStore, so logins survive process restarts.

// GetSession retrieves a session by ID. Missing sessions return nil, nil;
// expired sessions are deleted and reported as auth.ErrExpired, matching
// the auth.SessionStore contract.
func (s *Store) GetSession(ctx context.Context, id string) (*auth.Session, error) {
	var sess auth.Session
	var createdAt, expiresAt int64

	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, created_at, expires_at
		FROM sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.UserID, &createdAt, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, asStoreError(err, "get session")
	}

	sess.CreatedAt = unixDate(createdAt)
	sess.ExpiresAt = unixDate(expiresAt)

	if sess.IsExpired() {
		_, _ = s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
		return nil, auth.ErrExpired
	}
	return &sess, nil
}

// SetSession stores or replaces a session.
func (s *Store) SetSession(ctx context.Context, sess *auth.Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO sessions (id, user_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)`,
		sess.ID, sess.UserID, sess.CreatedAt.Unix(), sess.ExpiresAt.Unix(),
	)
	if err != nil {
		return asStoreError(err, "set session")
	}
	return nil
}

// DeleteSession removes a session. Deleting a missing session is not an
// error.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return asStoreError(err, "delete session")
	}
	return nil
}

// CleanupSessions removes every expired session and returns the number
// purged. The serve command runs this on a cron schedule.
func (s *Store) CleanupSessions(ctx context.Context, now int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now)
	if err != nil {
		return 0, asStoreError(err, "cleanup sessions")
	}
	n, _ := res.RowsAffected()
	return n, nil
}
