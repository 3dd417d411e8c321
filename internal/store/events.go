package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"congregate/internal/model"
	apperrors "congregate/pkg/errors"
)

const eventColumns = `id, auxiliary_id, title, location, description,
	start_date, end_date, rrule, created_by, created_at, updated_at`

// CreateEvent inserts a new event. The date range must already be
// validated; the store only enforces referential integrity.
func (s *Store) CreateEvent(e *model.Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now

	_, err := s.db.Exec(`
		INSERT INTO events (`+eventColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.AuxiliaryID, e.Title, e.Location, e.Description,
		e.StartDate.Unix(), dateArg(e.EndDate), e.RRule, e.CreatedBy,
		e.CreatedAt.Unix(), e.UpdatedAt.Unix(),
	)
	if err != nil {
		return asStoreError(err, "insert event")
	}
	return nil
}

// UpdateEvent rewrites an existing event's mutable fields.
func (s *Store) UpdateEvent(e *model.Event) error {
	e.UpdatedAt = time.Now().UTC()

	res, err := s.db.Exec(`
		UPDATE events
		SET auxiliary_id = ?, title = ?, location = ?, description = ?,
		    start_date = ?, end_date = ?, rrule = ?, updated_at = ?
		WHERE id = ?`,
		e.AuxiliaryID, e.Title, e.Location, e.Description,
		e.StartDate.Unix(), dateArg(e.EndDate), e.RRule, e.UpdatedAt.Unix(),
		e.ID,
	)
	if err != nil {
		return asStoreError(err, "update event")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.New(apperrors.ErrCodeNotFound, "event not found")
	}
	return nil
}

// DeleteEvent removes an event by ID.
func (s *Store) DeleteEvent(id string) error {
	res, err := s.db.Exec(`DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return asStoreError(err, "delete event")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.New(apperrors.ErrCodeNotFound, "event not found")
	}
	return nil
}

// EventByID retrieves an event by ID.
func (s *Store) EventByID(id string) (*model.Event, error) {
	row := s.db.QueryRow(`SELECT `+eventColumns+` FROM events WHERE id = ?`, id)

	e, err := scanEventRow(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "event not found")
		}
		return nil, asStoreError(err, "get event")
	}
	return e, nil
}

// EventsOverlapping returns every event whose date range intersects
// [from, to], ordered by start date. Events carrying a recurrence rule are
// included whenever they start on or before the window's end, since their
// occurrences can fall long after the stored start date; recurrence
// expansion decides what actually lands in the window.
//
// auxiliaryID narrows the result to one auxiliary; empty means all. The
// range should come from calendar.GridRange so adjacent-month padding days
// are covered.
func (s *Store) EventsOverlapping(auxiliaryID string, from, to time.Time) ([]model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
		WHERE (COALESCE(end_date, start_date) >= ? OR rrule != '') AND start_date <= ?`
	args := []any{from.Unix(), to.Unix()}
	if auxiliaryID != "" {
		query += ` AND auxiliary_id = ?`
		args = append(args, auxiliaryID)
	}
	query += ` ORDER BY start_date ASC, title ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, asStoreError(err, "query events")
	}
	defer rows.Close()

	return collectEvents(rows)
}

// ListEvents returns all events ordered by start date, newest first. Used
// by the admin event list.
func (s *Store) ListEvents() ([]model.Event, error) {
	rows, err := s.db.Query(`SELECT ` + eventColumns + ` FROM events ORDER BY start_date DESC`)
	if err != nil {
		return nil, asStoreError(err, "list events")
	}
	defer rows.Close()

	return collectEvents(rows)
}

func collectEvents(rows *sql.Rows) ([]model.Event, error) {
	var events []model.Event
	for rows.Next() {
		e, err := scanEventRow(rows.Scan)
		if err != nil {
			return nil, asStoreError(err, "scan event")
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, asStoreError(err, "iterate events")
	}
	return events, nil
}

// scanEventRow scans one event row via the given scan function, shared by
// QueryRow and Rows cursors.
func scanEventRow(scan func(dest ...any) error) (*model.Event, error) {
	var e model.Event
	var startDate, createdAt, updatedAt int64
	var endDate sql.NullInt64

	err := scan(&e.ID, &e.AuxiliaryID, &e.Title, &e.Location, &e.Description,
		&startDate, &endDate, &e.RRule, &e.CreatedBy, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	e.StartDate = unixDate(startDate)
	e.EndDate = nullableDate(endDate)
	e.CreatedAt = unixDate(createdAt)
	e.UpdatedAt = unixDate(updatedAt)
	return &e, nil
}
