// Package calendar computes month-grid layouts for date-ranged events.
//
// The package is a pure layout engine: given a list of events and any date
// inside the target month, [Build] partitions the month into Sunday-aligned
// weeks, clips each event to the weeks it overlaps, and packs the resulting
// segments into non-overlapping display lanes. The caller supplies events
// and draws the result; the engine knows nothing about storage, recurrence,
// or rendering.
//
// # Layout model
//
// A month is shown as 4 to 6 rows of 7 days, Sunday through Saturday, with
// adjacent-month dates padding partial first and last weeks. An event that
// spans several weeks produces one [Segment] per week; segments never cross
// a week boundary. Within a week, segments occupy lanes: two segments share
// a lane only if their day ranges do not overlap. Lane rows start at 2
// because row 1 of each week is the day-number header.
//
// # Usage
//
//	weeks := calendar.Build(events, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
//	for _, w := range weeks {
//	    for _, seg := range w.Segments {
//	        // place seg.Event.Title at column seg.ColStart, spanning
//	        // seg.ColSpan columns, in row seg.Row
//	    }
//	}
//
// Renderers should draw an event's title only on segments where
// ContinuesBefore is false; continuation segments repeat the bar, not the
// label.
//
// All dates are treated as plain calendar dates. Time-of-day and location
// on the inputs are ignored; the engine compares year/month/day only and
// emits grid days at midnight UTC.
package calendar
