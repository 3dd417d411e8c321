package feed

import (
	"strings"
	"testing"
	"time"

	"congregate/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRenderEmpty(t *testing.T) {
	got := Render(nil, "Maple Creek Ward")

	if !strings.Contains(got, "BEGIN:VCALENDAR") || !strings.Contains(got, "END:VCALENDAR") {
		t.Error("output is not a VCALENDAR document")
	}
	if !strings.Contains(got, "X-WR-CALNAME:Maple Creek Ward") {
		t.Error("calendar name missing from output")
	}
	if strings.Contains(got, "BEGIN:VEVENT") {
		t.Error("empty input should produce no VEVENT")
	}
}

func TestRenderSingleDayEvent(t *testing.T) {
	events := []model.Event{{
		ID:        "evt-1",
		Title:     "Ward council",
		Location:  "Bishop's office",
		StartDate: date(2026, time.March, 8),
		UpdatedAt: date(2026, time.March, 1),
	}}

	got := Render(events, "Calendar")

	if !strings.Contains(got, "UID:evt-1") {
		t.Error("UID missing")
	}
	if !strings.Contains(got, "SUMMARY:Ward council") {
		t.Error("SUMMARY missing")
	}
	if !strings.Contains(got, "LOCATION:Bishop's office") {
		t.Error("LOCATION missing")
	}
	if !strings.Contains(got, "DTSTART;VALUE=DATE:20260308") {
		t.Errorf("all-day DTSTART missing:\n%s", got)
	}
	// Exclusive end: the day after the single day.
	if !strings.Contains(got, "DTEND;VALUE=DATE:20260309") {
		t.Errorf("exclusive DTEND missing:\n%s", got)
	}
}

func TestRenderMultiDayEvent(t *testing.T) {
	events := []model.Event{{
		ID:        "evt-2",
		Title:     "Youth conference",
		StartDate: date(2026, time.March, 6),
		EndDate:   date(2026, time.March, 9),
	}}

	got := Render(events, "Calendar")

	if !strings.Contains(got, "DTSTART;VALUE=DATE:20260306") {
		t.Errorf("DTSTART missing:\n%s", got)
	}
	if !strings.Contains(got, "DTEND;VALUE=DATE:20260310") {
		t.Errorf("DTEND should be the day after the inclusive end:\n%s", got)
	}
}

func TestRenderRecurringEvent(t *testing.T) {
	events := []model.Event{{
		ID:        "evt-3",
		Title:     "Mutual",
		StartDate: date(2026, time.March, 3),
		RRule:     "FREQ=WEEKLY;BYDAY=TU",
	}}

	got := Render(events, "Calendar")

	if !strings.Contains(got, "RRULE:FREQ=WEEKLY;BYDAY=TU") {
		t.Errorf("RRULE missing:\n%s", got)
	}
}
