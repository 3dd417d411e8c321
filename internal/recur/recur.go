// Package recur expands recurring events into concrete occurrences.
//
// Events may carry an iCalendar RRULE. Before a month grid is laid out,
// Expand turns every rule into the single-occurrence events that fall
// inside the requested window, so the layout engine only ever sees plain
// date ranges.
package recur

import (
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"congregate/internal/model"
	apperrors "congregate/pkg/errors"
)

// maxOccurrences caps the expansion of a single rule inside one window. A
// window is at most 42 days, so even a daily rule stays far below this; the
// cap only guards against pathological stored rules.
const maxOccurrences = 500

// ValidateRRule checks a recurrence rule at data-entry time. An empty rule
// is valid (the event simply does not repeat).
func ValidateRRule(rule string) error {
	if rule == "" {
		return nil
	}
	if _, err := rrule.StrToRRule(rule); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidRRule, err, "invalid recurrence rule %q", rule)
	}
	return nil
}

// Expand returns the concrete events visible in [from, to] inclusive.
//
// Non-recurring events pass through unchanged when their date range
// intersects the window. Recurring events contribute one copy per
// occurrence, each keeping the source event's day span, title, and
// auxiliary; the copy's StartDate moves to the occurrence date. Rules that
// fail to parse are skipped; they are rejected at data entry, so a bad
// stored rule is legacy data, not a reason to blank the whole calendar.
func Expand(events []model.Event, from, to time.Time) []model.Event {
	out := make([]model.Event, 0, len(events))

	for _, ev := range events {
		if strings.TrimSpace(ev.RRule) == "" {
			if rangesOverlap(ev.StartDate, ev.End(), from, to) {
				out = append(out, ev)
			}
			continue
		}
		out = append(out, expandRecurring(ev, from, to)...)
	}
	return out
}

func expandRecurring(ev model.Event, from, to time.Time) []model.Event {
	r, err := rrule.StrToRRule(ev.RRule)
	if err != nil {
		return nil
	}
	r.DTStart(ev.StartDate)

	// Widen the query window to the left so a multi-day occurrence that
	// begins before the window but spans into it is still found.
	span := ev.Days()
	queryFrom := from.AddDate(0, 0, -(span - 1))

	occStarts := r.Between(queryFrom, to, true)
	if len(occStarts) > maxOccurrences {
		occStarts = occStarts[:maxOccurrences]
	}

	out := make([]model.Event, 0, len(occStarts))
	for _, start := range occStarts {
		occ := ev
		occ.RRule = ""
		occ.StartDate = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
		if span > 1 {
			occ.EndDate = occ.StartDate.AddDate(0, 0, span-1)
		} else {
			occ.EndDate = time.Time{}
		}
		out = append(out, occ)
	}
	return out
}

// rangesOverlap reports whether [aStart, aEnd] intersects [bStart, bEnd],
// all bounds inclusive.
func rangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aEnd.Before(bStart) && !aStart.After(bEnd)
}
