package calendar

import "time"

// Event is the engine's view of a calendar event. The engine reads three
// fields and never mutates the value; everything else about an event stays
// with the caller.
type Event struct {
	// Title is the display label, passed through untouched.
	Title string

	// Start is the first day of the event. Required.
	Start time.Time

	// End is the last day of the event, inclusive. The zero value means
	// the event ends on the day it starts.
	End time.Time
}

// end returns the event's last day as a plain date, treating a zero End as
// a single-day event.
func (e *Event) end() time.Time {
	if e.End.IsZero() {
		return dateOf(e.Start)
	}
	return dateOf(e.End)
}

// Segment is the visible portion of one event within one week.
type Segment struct {
	// Event points back at the originating input event.
	Event *Event

	// ColStart is the column of the segment's first day, 1 (Sunday)
	// through 7 (Saturday).
	ColStart int

	// ColSpan is the number of columns the segment occupies, 1 through 7.
	ColSpan int

	// Row is the display row of the segment's lane. Row 1 is the
	// day-number header, so the first event lane is row 2.
	Row int

	// ContinuesBefore is true when the event started in an earlier week
	// and was truncated at this week's left edge.
	ContinuesBefore bool

	// ContinuesAfter is true when the event continues into a later week
	// and was truncated at this week's right edge.
	ContinuesAfter bool
}

// colEnd returns the column of the segment's last day.
func (s Segment) colEnd() int { return s.ColStart + s.ColSpan - 1 }

// Week is one Sunday-through-Saturday row of the month grid.
type Week struct {
	// Days holds the 7 consecutive dates of the week in ascending order,
	// starting on a Sunday. Dates outside the target month appear as
	// padding in partial first and last weeks.
	Days [7]time.Time

	// Segments lists the event segments visible in this week. The order
	// is lane-assignment processing order; renderers position by Row and
	// ColStart, not by list position.
	Segments []Segment

	// MaxLanes is the number of distinct lanes occupied in this week,
	// 0 when Segments is empty.
	MaxLanes int
}

// First returns the week's Sunday.
func (w *Week) First() time.Time { return w.Days[0] }

// Last returns the week's Saturday.
func (w *Week) Last() time.Time { return w.Days[6] }

// dateOf strips a timestamp down to its calendar date. The result is
// midnight UTC so that day arithmetic is exact regardless of the input's
// location or DST rules.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GridRange returns the first and last day of the Sunday-aligned grid for
// the month containing t. Event sources should fetch everything overlapping
// this range, not just the month itself, so events on adjacent-month
// padding days are included.
func GridRange(t time.Time) (first, last time.Time) {
	monthFirst := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthLast := monthFirst.AddDate(0, 1, -1)

	first = monthFirst.AddDate(0, 0, -int(monthFirst.Weekday()))
	last = monthLast.AddDate(0, 0, 6-int(monthLast.Weekday()))
	return first, last
}
