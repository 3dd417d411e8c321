package store

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"congregate/internal/model"
	apperrors "congregate/pkg/errors"
)

// CreateAuxiliary inserts a new auxiliary. A duplicate slug is a CONFLICT
// error.
func (s *Store) CreateAuxiliary(a *model.Auxiliary) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`
		INSERT INTO auxiliaries (id, slug, name, color)
		VALUES (?, ?, ?, ?)`,
		a.ID, a.Slug, a.Name, a.Color,
	)
	if err != nil {
		return asStoreError(err, "insert auxiliary")
	}
	return nil
}

// UpdateAuxiliary updates name and color for an existing auxiliary.
func (s *Store) UpdateAuxiliary(a *model.Auxiliary) error {
	res, err := s.db.Exec(`
		UPDATE auxiliaries SET slug = ?, name = ?, color = ? WHERE id = ?`,
		a.Slug, a.Name, a.Color, a.ID,
	)
	if err != nil {
		return asStoreError(err, "update auxiliary")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.New(apperrors.ErrCodeNotFound, "auxiliary not found")
	}
	return nil
}

// AuxiliaryBySlug retrieves an auxiliary by its URL slug.
func (s *Store) AuxiliaryBySlug(slug string) (*model.Auxiliary, error) {
	return scanAuxiliary(s.db.QueryRow(`
		SELECT id, slug, name, color FROM auxiliaries WHERE slug = ?`, slug))
}

// AuxiliaryByID retrieves an auxiliary by ID.
func (s *Store) AuxiliaryByID(id string) (*model.Auxiliary, error) {
	return scanAuxiliary(s.db.QueryRow(`
		SELECT id, slug, name, color FROM auxiliaries WHERE id = ?`, id))
}

func scanAuxiliary(row *sql.Row) (*model.Auxiliary, error) {
	var a model.Auxiliary
	err := row.Scan(&a.ID, &a.Slug, &a.Name, &a.Color)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "auxiliary not found")
		}
		return nil, asStoreError(err, "get auxiliary")
	}
	return &a, nil
}

// ListAuxiliaries returns all auxiliaries ordered by name.
func (s *Store) ListAuxiliaries() ([]model.Auxiliary, error) {
	rows, err := s.db.Query(`SELECT id, slug, name, color FROM auxiliaries ORDER BY name ASC`)
	if err != nil {
		return nil, asStoreError(err, "list auxiliaries")
	}
	defer rows.Close()

	var auxiliaries []model.Auxiliary
	for rows.Next() {
		var a model.Auxiliary
		if err := rows.Scan(&a.ID, &a.Slug, &a.Name, &a.Color); err != nil {
			return nil, asStoreError(err, "scan auxiliary")
		}
		auxiliaries = append(auxiliaries, a)
	}
	if err := rows.Err(); err != nil {
		return nil, asStoreError(err, "iterate auxiliaries")
	}
	return auxiliaries, nil
}
