package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"congregate/internal/model"
	apperrors "congregate/pkg/errors"
)

const postColumns = `id, slug, title, body, author_id, published, created_at, updated_at`

// CreatePost inserts a new post. A duplicate slug is a CONFLICT error.
func (s *Store) CreatePost(p *model.Post) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	_, err := s.db.Exec(`
		INSERT INTO posts (`+postColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Slug, p.Title, p.Body, p.AuthorID, boolInt(p.Published),
		p.CreatedAt.Unix(), p.UpdatedAt.Unix(),
	)
	if err != nil {
		return asStoreError(err, "insert post")
	}
	return nil
}

// UpdatePost rewrites an existing post's mutable fields.
func (s *Store) UpdatePost(p *model.Post) error {
	p.UpdatedAt = time.Now().UTC()

	res, err := s.db.Exec(`
		UPDATE posts
		SET slug = ?, title = ?, body = ?, published = ?, updated_at = ?
		WHERE id = ?`,
		p.Slug, p.Title, p.Body, boolInt(p.Published), p.UpdatedAt.Unix(), p.ID,
	)
	if err != nil {
		return asStoreError(err, "update post")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.New(apperrors.ErrCodeNotFound, "post not found")
	}
	return nil
}

// DeletePost removes a post by ID.
func (s *Store) DeletePost(id string) error {
	res, err := s.db.Exec(`DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return asStoreError(err, "delete post")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.New(apperrors.ErrCodeNotFound, "post not found")
	}
	return nil
}

// PostByID retrieves a post by ID regardless of publication state.
func (s *Store) PostByID(id string) (*model.Post, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = ?`, id))
}

// PostBySlug retrieves a published post by its URL slug.
func (s *Store) PostBySlug(slug string) (*model.Post, error) {
	return scanPost(s.db.QueryRow(
		`SELECT `+postColumns+` FROM posts WHERE slug = ? AND published = 1`, slug))
}

func scanPost(row *sql.Row) (*model.Post, error) {
	var p model.Post
	var published int
	var createdAt, updatedAt int64

	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Body, &p.AuthorID, &published, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "post not found")
		}
		return nil, asStoreError(err, "get post")
	}

	p.Published = published != 0
	p.CreatedAt = unixDate(createdAt)
	p.UpdatedAt = unixDate(updatedAt)
	return &p, nil
}

// ListPosts returns posts newest first. When publishedOnly is true, drafts
// are excluded. limit <= 0 means no limit.
func (s *Store) ListPosts(publishedOnly bool, limit int) ([]model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts`
	if publishedOnly {
		query += ` WHERE published = 1`
	}
	query += ` ORDER BY created_at DESC`

	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, asStoreError(err, "list posts")
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var p model.Post
		var published int
		var createdAt, updatedAt int64
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.Body, &p.AuthorID, &published, &createdAt, &updatedAt); err != nil {
			return nil, asStoreError(err, "scan post")
		}
		p.Published = published != 0
		p.CreatedAt = unixDate(createdAt)
		p.UpdatedAt = unixDate(updatedAt)
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, asStoreError(err, "iterate posts")
	}
	return posts, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
