package recur

import (
	"testing"
	"time"

	"congregate/internal/model"
	apperrors "congregate/pkg/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidateRRule(t *testing.T) {
	tests := []struct {
		name    string
		rule    string
		wantErr bool
	}{
		{name: "empty is fine", rule: "", wantErr: false},
		{name: "weekly", rule: "FREQ=WEEKLY;BYDAY=TU", wantErr: false},
		{name: "monthly with count", rule: "FREQ=MONTHLY;COUNT=6", wantErr: false},
		{name: "garbage", rule: "FREQ=SOMETIMES", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRRule(tt.rule)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRRule(%q) error = %v, wantErr %v", tt.rule, err, tt.wantErr)
			}
			if err != nil && !apperrors.Is(err, apperrors.ErrCodeInvalidRRule) {
				t.Errorf("error code = %q, want %q", apperrors.GetCode(err), apperrors.ErrCodeInvalidRRule)
			}
		})
	}
}

func TestExpandNonRecurring(t *testing.T) {
	events := []model.Event{
		{Title: "inside", StartDate: date(2026, time.March, 10)},
		{Title: "spans in", StartDate: date(2026, time.February, 26), EndDate: date(2026, time.March, 2)},
		{Title: "before", StartDate: date(2026, time.January, 5)},
		{Title: "after", StartDate: date(2026, time.May, 5)},
	}

	got := Expand(events, date(2026, time.March, 1), date(2026, time.April, 4))

	if len(got) != 2 {
		t.Fatalf("Expand() returned %d events, want 2", len(got))
	}
	if got[0].Title != "inside" || got[1].Title != "spans in" {
		t.Errorf("Expand() = %q, %q; want inside, spans in", got[0].Title, got[1].Title)
	}
}

func TestExpandWeeklyRule(t *testing.T) {
	// Tuesdays: March 3, 10, 17, 24, 31 all fall in the window.
	events := []model.Event{{
		Title:     "Mutual",
		StartDate: date(2026, time.March, 3),
		RRule:     "FREQ=WEEKLY;BYDAY=TU",
	}}

	got := Expand(events, date(2026, time.March, 1), date(2026, time.March, 31))

	if len(got) != 5 {
		t.Fatalf("Expand() returned %d occurrences, want 5", len(got))
	}
	want := []time.Time{
		date(2026, time.March, 3),
		date(2026, time.March, 10),
		date(2026, time.March, 17),
		date(2026, time.March, 24),
		date(2026, time.March, 31),
	}
	for i, occ := range got {
		if !occ.StartDate.Equal(want[i]) {
			t.Errorf("occurrence %d StartDate = %v, want %v", i, occ.StartDate, want[i])
		}
		if occ.RRule != "" {
			t.Errorf("occurrence %d still carries RRule %q", i, occ.RRule)
		}
		if !occ.EndDate.IsZero() {
			t.Errorf("occurrence %d EndDate = %v, want zero for single-day", i, occ.EndDate)
		}
		if occ.Title != "Mutual" {
			t.Errorf("occurrence %d Title = %q, want Mutual", i, occ.Title)
		}
	}
}

func TestExpandPreservesSpan(t *testing.T) {
	// A three-day event recurring monthly.
	events := []model.Event{{
		Title:     "Girls camp",
		StartDate: date(2026, time.March, 5),
		EndDate:   date(2026, time.March, 7),
		RRule:     "FREQ=MONTHLY;COUNT=3",
	}}

	got := Expand(events, date(2026, time.April, 1), date(2026, time.April, 30))

	if len(got) != 1 {
		t.Fatalf("Expand() returned %d occurrences, want 1", len(got))
	}
	if !got[0].StartDate.Equal(date(2026, time.April, 5)) {
		t.Errorf("StartDate = %v, want April 5", got[0].StartDate)
	}
	if !got[0].EndDate.Equal(date(2026, time.April, 7)) {
		t.Errorf("EndDate = %v, want April 7", got[0].EndDate)
	}
}

func TestExpandOccurrenceSpillingIntoWindow(t *testing.T) {
	// Weekly Friday-to-Monday span. The occurrence starting Friday
	// February 27 ends Monday March 2, inside the March window.
	events := []model.Event{{
		Title:     "Weekend shift",
		StartDate: date(2026, time.February, 6),
		EndDate:   date(2026, time.February, 9),
		RRule:     "FREQ=WEEKLY;BYDAY=FR",
	}}

	got := Expand(events, date(2026, time.March, 1), date(2026, time.March, 7))

	found := false
	for _, occ := range got {
		if occ.StartDate.Equal(date(2026, time.February, 27)) {
			found = true
			if !occ.EndDate.Equal(date(2026, time.March, 2)) {
				t.Errorf("EndDate = %v, want March 2", occ.EndDate)
			}
		}
	}
	if !found {
		t.Error("occurrence spanning into the window was not expanded")
	}
}

func TestExpandRuleWithCount(t *testing.T) {
	// COUNT=2 stops after two occurrences, so a later window sees nothing.
	events := []model.Event{{
		Title:     "Pilot program",
		StartDate: date(2026, time.March, 2),
		RRule:     "FREQ=WEEKLY;COUNT=2",
	}}

	got := Expand(events, date(2026, time.March, 1), date(2026, time.March, 31))
	if len(got) != 2 {
		t.Errorf("March window: %d occurrences, want 2", len(got))
	}

	got = Expand(events, date(2026, time.April, 1), date(2026, time.April, 30))
	if len(got) != 0 {
		t.Errorf("April window: %d occurrences, want 0", len(got))
	}
}

func TestExpandSkipsUnparsableRule(t *testing.T) {
	events := []model.Event{
		{Title: "bad", StartDate: date(2026, time.March, 3), RRule: "FREQ=NOPE"},
		{Title: "good", StartDate: date(2026, time.March, 4)},
	}

	got := Expand(events, date(2026, time.March, 1), date(2026, time.March, 31))
	if len(got) != 1 || got[0].Title != "good" {
		t.Errorf("Expand() = %+v, want only the good event", got)
	}
}
