// Package feed serializes events as an iCalendar feed so members can
// subscribe from their own calendar clients.
package feed

import (
	"time"

	ics "github.com/arran4/golang-ical"

	"congregate/internal/model"
)

// Render serializes events into an ICS document. Events are emitted as
// all-day VEVENTs; the DTEND of a multi-day event is the day after its
// inclusive end date, per the iCalendar exclusive-end convention.
// Recurrence rules pass through untouched so subscribing clients expand
// them natively.
func Render(events []model.Event, calName string) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetXWRCalName(calName)

	for _, ev := range events {
		ve := cal.AddEvent(ev.ID)
		ve.SetSummary(ev.Title)
		if ev.Location != "" {
			ve.SetLocation(ev.Location)
		}
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}

		stamp := ev.UpdatedAt
		if stamp.IsZero() {
			stamp = time.Now().UTC()
		}
		ve.SetDtStampTime(stamp)

		ve.SetAllDayStartAt(ev.StartDate)
		ve.SetAllDayEndAt(ev.End().AddDate(0, 0, 1))

		if ev.RRule != "" {
			ve.SetProperty(ics.ComponentPropertyRrule, ev.RRule)
		}
	}

	return cal.Serialize()
}
