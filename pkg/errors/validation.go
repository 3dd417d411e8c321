package errors

import (
	"regexp"
	"time"
	"unicode"
)

// slugRegex matches URL-safe slugs: lowercase alphanumerics separated by
// single hyphens.
var slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidateSlug validates a URL slug for posts and auxiliaries.
//
// The validation rules are intentionally conservative:
//   - No empty slugs
//   - Lowercase letters, digits, and single hyphens only
//   - Maximum length of 128 characters
func ValidateSlug(slug string) error {
	if slug == "" {
		return New(ErrCodeInvalidSlug, "slug cannot be empty")
	}
	if len(slug) > 128 {
		return New(ErrCodeInvalidSlug, "slug too long (max 128 characters)")
	}
	if !slugRegex.MatchString(slug) {
		return New(ErrCodeInvalidSlug, "invalid slug: %q", slug)
	}
	return nil
}

// usernameRegex matches login names: a letter followed by letters, digits,
// dots, or hyphens.
var usernameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9.-]*$`)

// ValidateUsername validates a login name.
func ValidateUsername(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "username cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "username too long (max 64 characters)")
	}
	if !usernameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid username: %q", name)
	}
	return nil
}

// ValidateTitle validates a display title for events and posts.
// Titles are free-form but must be non-empty, printable, and bounded.
func ValidateTitle(title string) error {
	if title == "" {
		return New(ErrCodeInvalidInput, "title cannot be empty")
	}
	if len(title) > 256 {
		return New(ErrCodeInvalidInput, "title too long (max 256 characters)")
	}
	for _, r := range title {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "title contains control characters")
		}
	}
	return nil
}

// ValidateDateRange validates an event date range. A zero end date means a
// single-day event and is always valid; otherwise the end must not precede
// the start. The layout engine does not defend against inverted ranges, so
// this check runs at the data-entry layer.
func ValidateDateRange(start, end time.Time) error {
	if start.IsZero() {
		return New(ErrCodeInvalidRange, "start date is required")
	}
	if end.IsZero() {
		return nil
	}
	if end.Before(start) {
		return New(ErrCodeInvalidRange, "end date %s precedes start date %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	return nil
}

// ParseMonth parses a YYYY-MM month query parameter. An empty value falls
// back to the month containing now; a malformed value is an INVALID_MONTH
// error so callers can apply their own fallback.
func ParseMonth(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return time.Time{}, Wrap(ErrCodeInvalidMonth, err, "invalid month %q", value)
	}
	return t, nil
}
