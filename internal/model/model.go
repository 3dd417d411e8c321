// Package model defines the domain types shared by the store, web, and
// feed layers. These are plain value types; persistence and rendering
// concerns live elsewhere.
package model

import "time"

// Role controls what a signed-in user may do.
type Role string

const (
	// RoleAdmin can manage users, auxiliaries, events, and posts.
	RoleAdmin Role = "admin"

	// RoleEditor can manage events and posts but not users.
	RoleEditor Role = "editor"
)

// User is an account that can sign in to the admin area.
type User struct {
	ID           string
	Username     string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// Auxiliary is a grouping key for events (Relief Society, Primary, and so
// on). Color is the style key handed to the calendar renderer; the layout
// engine itself never sees it.
type Auxiliary struct {
	ID    string
	Slug  string
	Name  string
	Color string
}

// Event is a calendar entry owned by an auxiliary.
//
// StartDate and EndDate are plain calendar dates stored at midnight UTC.
// A zero EndDate means the event ends the day it starts. RRule, when
// non-empty, is an iCalendar recurrence rule expanded by internal/recur
// before layout.
type Event struct {
	ID          string
	AuxiliaryID string
	Title       string
	Location    string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	RRule       string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// End returns the event's inclusive last day, treating a zero EndDate as a
// single-day event.
func (e *Event) End() time.Time {
	if e.EndDate.IsZero() {
		return e.StartDate
	}
	return e.EndDate
}

// Days returns the number of calendar days the event spans.
func (e *Event) Days() int {
	return int(e.End().Sub(e.StartDate)/(24*time.Hour)) + 1
}

// Post is a published article on the congregation site.
type Post struct {
	ID        string
	Title     string
	Slug      string
	Body      string
	AuthorID  string
	Published bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
