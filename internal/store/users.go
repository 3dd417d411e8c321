package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"congregate/internal/model"
	apperrors "congregate/pkg/errors"
)

// CreateUser inserts a new user. The ID is assigned here; a duplicate
// username is a CONFLICT error.
func (s *Store) CreateUser(u *model.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO users (id, username, name, email, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Name, u.Email, u.PasswordHash, string(u.Role), u.CreatedAt.Unix(),
	)
	if err != nil {
		return asStoreError(err, "insert user")
	}
	return nil
}

// UserByUsername retrieves a user by login name.
func (s *Store) UserByUsername(username string) (*model.User, error) {
	return s.scanUser(s.db.QueryRow(`
		SELECT id, username, name, email, password_hash, role, created_at
		FROM users WHERE username = ?`, username))
}

// UserByID retrieves a user by ID.
func (s *Store) UserByID(id string) (*model.User, error) {
	return s.scanUser(s.db.QueryRow(`
		SELECT id, username, name, email, password_hash, role, created_at
		FROM users WHERE id = ?`, id))
}

func (s *Store) scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	var role string
	var createdAt int64

	err := row.Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.PasswordHash, &role, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "user not found")
		}
		return nil, asStoreError(err, "get user")
	}

	u.Role = model.Role(role)
	u.CreatedAt = unixDate(createdAt)
	return &u, nil
}

// ListUsers returns all users ordered by username.
func (s *Store) ListUsers() ([]model.User, error) {
	rows, err := s.db.Query(`
		SELECT id, username, name, email, password_hash, role, created_at
		FROM users ORDER BY username ASC`)
	if err != nil {
		return nil, asStoreError(err, "list users")
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		var role string
		var createdAt int64
		if err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.PasswordHash, &role, &createdAt); err != nil {
			return nil, asStoreError(err, "scan user")
		}
		u.Role = model.Role(role)
		u.CreatedAt = unixDate(createdAt)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, asStoreError(err, "iterate users")
	}
	return users, nil
}
