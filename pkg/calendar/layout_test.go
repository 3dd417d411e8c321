package calendar

import (
	"testing"
	"time"
)

// date is shorthand for a plain calendar date in tests.
func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildWeekGridShape(t *testing.T) {
	tests := []struct {
		name      string
		month     time.Time
		wantWeeks int
	}{
		{
			name:      "february 2026 starts on sunday and fits four weeks",
			month:     date(2026, time.February, 1),
			wantWeeks: 4,
		},
		{
			name:      "march 2026 has five sunday-aligned weeks",
			month:     date(2026, time.March, 1),
			wantWeeks: 5,
		},
		{
			name:      "august 2026 spills into six weeks",
			month:     date(2026, time.August, 1),
			wantWeeks: 6,
		},
		{
			name:      "day of the month argument is ignored",
			month:     date(2026, time.March, 17),
			wantWeeks: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weeks := Build(nil, tt.month)
			if len(weeks) != tt.wantWeeks {
				t.Fatalf("Build() returned %d weeks, want %d", len(weeks), tt.wantWeeks)
			}

			for wi, w := range weeks {
				if w.First().Weekday() != time.Sunday {
					t.Errorf("week %d starts on %v, want Sunday", wi, w.First().Weekday())
				}
				if w.Last().Weekday() != time.Saturday {
					t.Errorf("week %d ends on %v, want Saturday", wi, w.Last().Weekday())
				}
				for di := 1; di < 7; di++ {
					if !w.Days[di].Equal(w.Days[di-1].AddDate(0, 0, 1)) {
						t.Errorf("week %d day %d is not consecutive: %v after %v", wi, di, w.Days[di], w.Days[di-1])
					}
				}
			}

			monthFirst := date(tt.month.Year(), tt.month.Month(), 1)
			monthLast := monthFirst.AddDate(0, 1, -1)
			if !containsDay(weeks[0], monthFirst) {
				t.Errorf("first week does not contain the first of the month %v", monthFirst)
			}
			if !containsDay(weeks[len(weeks)-1], monthLast) {
				t.Errorf("last week does not contain the last of the month %v", monthLast)
			}
		})
	}
}

func containsDay(w Week, d time.Time) bool {
	for _, day := range w.Days {
		if day.Equal(d) {
			return true
		}
	}
	return false
}

func TestBuildEmptyMonth(t *testing.T) {
	weeks := Build(nil, date(2026, time.March, 1))
	if len(weeks) != 5 {
		t.Fatalf("Build() returned %d weeks, want 5", len(weeks))
	}
	if !containsDay(weeks[0], date(2026, time.March, 1)) {
		t.Error("first week should contain March 1, 2026")
	}
	if !containsDay(weeks[4], date(2026, time.March, 31)) {
		t.Error("last week should contain March 31, 2026")
	}
	for wi, w := range weeks {
		if len(w.Segments) != 0 {
			t.Errorf("week %d has %d segments, want 0", wi, len(w.Segments))
		}
		if w.MaxLanes != 0 {
			t.Errorf("week %d MaxLanes = %d, want 0", wi, w.MaxLanes)
		}
	}
}

func TestBuildSingleDayEvent(t *testing.T) {
	// March 4, 2026 is a Wednesday (column 4).
	events := []Event{{Title: "Choir practice", Start: date(2026, time.March, 4)}}

	weeks := Build(events, date(2026, time.March, 1))

	var segs []Segment
	for _, w := range weeks {
		segs = append(segs, w.Segments...)
	}
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}

	seg := segs[0]
	if seg.ColStart != 4 {
		t.Errorf("ColStart = %d, want 4", seg.ColStart)
	}
	if seg.ColSpan != 1 {
		t.Errorf("ColSpan = %d, want 1", seg.ColSpan)
	}
	if seg.Row != 2 {
		t.Errorf("Row = %d, want 2", seg.Row)
	}
	if seg.ContinuesBefore || seg.ContinuesAfter {
		t.Errorf("continuation flags = (%v, %v), want (false, false)", seg.ContinuesBefore, seg.ContinuesAfter)
	}
	if seg.Event.Title != "Choir practice" {
		t.Errorf("Event.Title = %q, want %q", seg.Event.Title, "Choir practice")
	}
}

func TestBuildMultiDayEventWithinWeek(t *testing.T) {
	// Monday March 2 through Thursday March 5, 2026: columns 2 through 5.
	events := []Event{{
		Title: "Youth conference",
		Start: date(2026, time.March, 2),
		End:   date(2026, time.March, 5),
	}}

	weeks := Build(events, date(2026, time.March, 1))

	if got := len(weeks[0].Segments); got != 1 {
		t.Fatalf("first week has %d segments, want 1", got)
	}
	for wi := 1; wi < len(weeks); wi++ {
		if len(weeks[wi].Segments) != 0 {
			t.Errorf("week %d has %d segments, want 0", wi, len(weeks[wi].Segments))
		}
	}

	seg := weeks[0].Segments[0]
	if seg.ColStart != 2 || seg.ColSpan != 4 {
		t.Errorf("segment = col %d span %d, want col 2 span 4", seg.ColStart, seg.ColSpan)
	}
	if seg.ContinuesBefore || seg.ContinuesAfter {
		t.Errorf("continuation flags = (%v, %v), want (false, false)", seg.ContinuesBefore, seg.ContinuesAfter)
	}
}

func TestBuildEventCrossingWeekBoundary(t *testing.T) {
	// Friday March 6 through Monday March 9, 2026.
	events := []Event{{
		Title: "Temple trip",
		Start: date(2026, time.March, 6),
		End:   date(2026, time.March, 9),
	}}

	weeks := Build(events, date(2026, time.March, 1))

	if got := len(weeks[0].Segments); got != 1 {
		t.Fatalf("week 1 has %d segments, want 1", got)
	}
	if got := len(weeks[1].Segments); got != 1 {
		t.Fatalf("week 2 has %d segments, want 1", got)
	}

	first := weeks[0].Segments[0]
	if first.ColStart != 6 || first.ColSpan != 2 {
		t.Errorf("first segment = col %d span %d, want col 6 span 2", first.ColStart, first.ColSpan)
	}
	if first.ContinuesBefore {
		t.Error("first segment ContinuesBefore = true, want false")
	}
	if !first.ContinuesAfter {
		t.Error("first segment ContinuesAfter = false, want true")
	}

	second := weeks[1].Segments[0]
	if second.ColStart != 1 || second.ColSpan != 2 {
		t.Errorf("second segment = col %d span %d, want col 1 span 2", second.ColStart, second.ColSpan)
	}
	if !second.ContinuesBefore {
		t.Error("second segment ContinuesBefore = false, want true")
	}
	if second.ContinuesAfter {
		t.Error("second segment ContinuesAfter = true, want false")
	}
}

func TestBuildLaneAssignment(t *testing.T) {
	tests := []struct {
		name         string
		events       []Event
		wantRows     []int // by event order after the stable (ColStart, ColEnd) sort
		wantMaxLanes int
	}{
		{
			name: "disjoint events share a lane",
			events: []Event{
				{Title: "a", Start: date(2026, time.March, 2), End: date(2026, time.March, 3)},
				{Title: "b", Start: date(2026, time.March, 5), End: date(2026, time.March, 6)},
			},
			wantRows:     []int{2, 2},
			wantMaxLanes: 1,
		},
		{
			name: "overlapping events stack into separate lanes",
			events: []Event{
				{Title: "a", Start: date(2026, time.March, 2), End: date(2026, time.March, 4)},
				{Title: "b", Start: date(2026, time.March, 3), End: date(2026, time.March, 5)},
			},
			wantRows:     []int{2, 3},
			wantMaxLanes: 2,
		},
		{
			name: "lane freed by an earlier event is reused",
			events: []Event{
				{Title: "a", Start: date(2026, time.March, 2), End: date(2026, time.March, 3)},
				{Title: "b", Start: date(2026, time.March, 2), End: date(2026, time.March, 6)},
				{Title: "c", Start: date(2026, time.March, 5), End: date(2026, time.March, 6)},
			},
			wantRows:     []int{2, 3, 2},
			wantMaxLanes: 2,
		},
		{
			name: "same start day keeps input order for the lower lane",
			events: []Event{
				{Title: "first", Start: date(2026, time.March, 3), End: date(2026, time.March, 4)},
				{Title: "second", Start: date(2026, time.March, 3), End: date(2026, time.March, 4)},
			},
			wantRows:     []int{2, 3},
			wantMaxLanes: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weeks := Build(tt.events, date(2026, time.March, 1))
			week := weeks[0]

			if len(week.Segments) != len(tt.wantRows) {
				t.Fatalf("got %d segments, want %d", len(week.Segments), len(tt.wantRows))
			}
			for i, want := range tt.wantRows {
				if got := week.Segments[i].Row; got != want {
					t.Errorf("segment %d (%s) Row = %d, want %d", i, week.Segments[i].Event.Title, got, want)
				}
			}
			if week.MaxLanes != tt.wantMaxLanes {
				t.Errorf("MaxLanes = %d, want %d", week.MaxLanes, tt.wantMaxLanes)
			}
		})
	}
}

func TestBuildLaneOverlapInvariant(t *testing.T) {
	// A dense week: every pair of segments sharing a row must have disjoint
	// column ranges, and MaxLanes must equal the count of distinct rows.
	events := []Event{
		{Title: "a", Start: date(2026, time.March, 1), End: date(2026, time.March, 7)},
		{Title: "b", Start: date(2026, time.March, 1), End: date(2026, time.March, 2)},
		{Title: "c", Start: date(2026, time.March, 3), End: date(2026, time.March, 5)},
		{Title: "d", Start: date(2026, time.March, 2), End: date(2026, time.March, 4)},
		{Title: "e", Start: date(2026, time.March, 6)},
	}

	weeks := Build(events, date(2026, time.March, 1))
	week := weeks[0]

	rows := make(map[int][]Segment)
	for _, seg := range week.Segments {
		if seg.Row < 2 {
			t.Errorf("segment %q Row = %d, want >= 2", seg.Event.Title, seg.Row)
		}
		rows[seg.Row] = append(rows[seg.Row], seg)
	}

	for row, segs := range rows {
		for i := 0; i < len(segs); i++ {
			for j := i + 1; j < len(segs); j++ {
				a, b := segs[i], segs[j]
				if a.ColStart <= b.colEnd() && b.ColStart <= a.colEnd() {
					t.Errorf("row %d: segments %q and %q overlap", row, a.Event.Title, b.Event.Title)
				}
			}
		}
	}

	if week.MaxLanes != len(rows) {
		t.Errorf("MaxLanes = %d, want %d distinct rows", week.MaxLanes, len(rows))
	}
}

func TestBuildEventOutsideGrid(t *testing.T) {
	events := []Event{
		{Title: "before", Start: date(2026, time.January, 10), End: date(2026, time.January, 12)},
		{Title: "after", Start: date(2026, time.May, 20)},
	}

	weeks := Build(events, date(2026, time.March, 1))
	for wi, w := range weeks {
		if len(w.Segments) != 0 {
			t.Errorf("week %d has %d segments, want 0", wi, len(w.Segments))
		}
	}
}

func TestBuildEventOnPaddingDays(t *testing.T) {
	// April 2026 starts on a Wednesday, so its first week is padded with
	// March 29-31. An event on those days must still appear.
	events := []Event{{Title: "spill", Start: date(2026, time.March, 30), End: date(2026, time.March, 31)}}

	weeks := Build(events, date(2026, time.April, 1))
	if got := len(weeks[0].Segments); got != 1 {
		t.Fatalf("first week has %d segments, want 1", got)
	}
	seg := weeks[0].Segments[0]
	if seg.ColStart != 2 || seg.ColSpan != 2 {
		t.Errorf("segment = col %d span %d, want col 2 span 2", seg.ColStart, seg.ColSpan)
	}
}

func TestBuildEndBeforeStart(t *testing.T) {
	// An inverted range clips to an empty intersection in every week and
	// contributes nothing. Callers are expected to validate upstream.
	events := []Event{{
		Title: "inverted",
		Start: date(2026, time.March, 10),
		End:   date(2026, time.March, 8),
	}}

	weeks := Build(events, date(2026, time.March, 1))
	for wi, w := range weeks {
		if len(w.Segments) != 0 {
			t.Errorf("week %d has %d segments, want 0", wi, len(w.Segments))
		}
		if w.MaxLanes != 0 {
			t.Errorf("week %d MaxLanes = %d, want 0", wi, w.MaxLanes)
		}
	}
}

func TestBuildIgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("KST", 9*60*60)
	events := []Event{{
		Title: "late meeting",
		Start: time.Date(2026, time.March, 4, 23, 30, 0, 0, loc),
	}}

	weeks := Build(events, time.Date(2026, time.March, 15, 8, 0, 0, 0, loc))

	var segs []Segment
	for _, w := range weeks {
		segs = append(segs, w.Segments...)
	}
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	if segs[0].ColStart != 4 || segs[0].ColSpan != 1 {
		t.Errorf("segment = col %d span %d, want col 4 span 1", segs[0].ColStart, segs[0].ColSpan)
	}
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	events := []Event{{Title: "steady", Start: date(2026, time.March, 4)}}
	before := events[0]

	Build(events, date(2026, time.March, 1))

	if events[0] != before {
		t.Errorf("input event mutated: got %+v, want %+v", events[0], before)
	}
	if !events[0].End.IsZero() {
		t.Error("zero End should stay zero on the input")
	}
}

func TestGridRange(t *testing.T) {
	tests := []struct {
		name      string
		month     time.Time
		wantFirst time.Time
		wantLast  time.Time
	}{
		{
			name:      "march 2026 aligns exactly at the front",
			month:     date(2026, time.March, 10),
			wantFirst: date(2026, time.March, 1),
			wantLast:  date(2026, time.April, 4),
		},
		{
			name:      "april 2026 pads both ends",
			month:     date(2026, time.April, 1),
			wantFirst: date(2026, time.March, 29),
			wantLast:  date(2026, time.May, 2),
		},
		{
			name:      "february 2026 aligns on both ends",
			month:     date(2026, time.February, 28),
			wantFirst: date(2026, time.February, 1),
			wantLast:  date(2026, time.February, 28),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := GridRange(tt.month)
			if !first.Equal(tt.wantFirst) {
				t.Errorf("first = %v, want %v", first, tt.wantFirst)
			}
			if !last.Equal(tt.wantLast) {
				t.Errorf("last = %v, want %v", last, tt.wantLast)
			}
		})
	}
}
