package calendar

import (
	"sort"
	"time"
)

// Build lays out events in the month grid containing month. Only the year
// and month of the argument are used; the day is ignored.
//
// The result is an ordered list of 4 to 6 weeks covering every
// Sunday-aligned week that intersects the target month. Each week carries
// its 7 dates, the clipped segments of every event visible in it, and the
// lane count a renderer needs to size the row.
//
// Build never mutates its inputs and allocates only its result, so it is
// safe to call concurrently on independent arguments. An event whose end
// date precedes its start date yields no segments: the per-week clip
// produces an empty intersection everywhere.
func Build(events []Event, month time.Time) []Week {
	gridFirst, gridLast := GridRange(month)

	weeks := make([]Week, 0, 6)
	for ws := gridFirst; !ws.After(gridLast); ws = ws.AddDate(0, 0, 7) {
		w := Week{}
		for i := range w.Days {
			w.Days[i] = ws.AddDate(0, 0, i)
		}
		clipWeek(&w, events)
		packLanes(&w)
		weeks = append(weeks, w)
	}
	return weeks
}

// clipWeek intersects every event with the week's day range and appends a
// segment for each non-empty intersection. Rows are assigned later by
// packLanes.
func clipWeek(w *Week, events []Event) {
	weekFirst, weekLast := w.First(), w.Last()

	for i := range events {
		ev := &events[i]
		evStart := dateOf(ev.Start)
		evEnd := ev.end()

		visFirst := laterOf(evStart, weekFirst)
		visLast := earlierOf(evEnd, weekLast)
		if visLast.Before(visFirst) {
			continue
		}

		w.Segments = append(w.Segments, Segment{
			Event:           ev,
			ColStart:        int(visFirst.Weekday()) + 1,
			ColSpan:         daySpan(visFirst, visLast),
			ContinuesBefore: evStart.Before(weekFirst),
			ContinuesAfter:  evEnd.After(weekLast),
		})
	}
}

// packLanes assigns each of the week's segments to a display lane using
// first-fit packing: segments are ordered by (start column, end column) and
// each takes the first lane whose rightmost occupied column lies strictly
// left of the segment's start. Events starting on the same day keep their
// relative input order, which decides which one lands in the lower lane.
func packLanes(w *Week) {
	sort.SliceStable(w.Segments, func(i, j int) bool {
		a, b := w.Segments[i], w.Segments[j]
		if a.ColStart != b.ColStart {
			return a.ColStart < b.ColStart
		}
		return a.colEnd() < b.colEnd()
	})

	// lanes[i] is the rightmost column occupied in lane i.
	var lanes []int
	for i := range w.Segments {
		seg := &w.Segments[i]

		placed := false
		for li, right := range lanes {
			if right < seg.ColStart {
				lanes[li] = seg.colEnd()
				seg.Row = li + 2
				placed = true
				break
			}
		}
		if !placed {
			lanes = append(lanes, seg.colEnd())
			seg.Row = len(lanes) + 1
		}
	}
	w.MaxLanes = len(lanes)
}

// daySpan counts the days from a through b inclusive. Both arguments must
// be midnight-UTC dates, which makes the division exact.
func daySpan(a, b time.Time) int {
	return int(b.Sub(a)/(24*time.Hour)) + 1
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
