package web

import (
	"net/http"
	"time"

	"congregate/internal/feed"
	"congregate/internal/model"
	"congregate/internal/recur"
	"congregate/pkg/calendar"
	apperrors "congregate/pkg/errors"
)

// calendarPage is the view model for the month grid template.
type calendarPage struct {
	basePage
	Month       time.Time
	MonthParam  string
	PrevMonth   string
	NextMonth   string
	Weeks       []weekView
	Auxiliaries []model.Auxiliary
	Selected    string
}

type weekView struct {
	Days     []dayView
	Segments []segmentView
}

type dayView struct {
	Date    time.Time
	Col     int
	InMonth bool
}

type segmentView struct {
	Title           string
	Col             int
	Span            int
	Row             int
	ContinuesBefore bool
	ContinuesAfter  bool
	Color           string
}

// handleCalendar renders the month grid. A malformed or missing month
// parameter falls back to the current month rather than erroring; a bad
// auxiliary slug is a 404.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	month, err := apperrors.ParseMonth(r.URL.Query().Get("month"), time.Now().UTC())
	if err != nil {
		month, _ = apperrors.ParseMonth("", time.Now().UTC())
	}

	auxSlug := r.URL.Query().Get("aux")
	events, auxiliaries, err := s.monthEvents(month, auxSlug)
	if err != nil {
		s.httpError(w, err)
		return
	}

	colors := make(map[string]string, len(auxiliaries))
	for _, a := range auxiliaries {
		colors[a.ID] = a.Color
	}

	page := calendarPage{
		basePage:    s.base(r),
		Month:       month,
		MonthParam:  month.Format("2006-01"),
		PrevMonth:   month.AddDate(0, -1, 0).Format("2006-01"),
		NextMonth:   month.AddDate(0, 1, 0).Format("2006-01"),
		Weeks:       buildWeekViews(events, month, colors),
		Auxiliaries: auxiliaries,
		Selected:    auxSlug,
	}
	s.render(w, "calendar.html", page)
}

// handleCalendarICS serves the same event window as an iCalendar feed so
// members can subscribe from their own calendar apps.
func (s *Server) handleCalendarICS(w http.ResponseWriter, r *http.Request) {
	month, err := apperrors.ParseMonth(r.URL.Query().Get("month"), time.Now().UTC())
	if err != nil {
		month, _ = apperrors.ParseMonth("", time.Now().UTC())
	}

	events, _, err := s.monthEvents(month, r.URL.Query().Get("aux"))
	if err != nil {
		s.httpError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	_, _ = w.Write([]byte(feed.Render(events, s.cfg.SiteTitle)))
}

// monthEvents fetches the events overlapping the month's full display grid,
// optionally filtered to one auxiliary, along with the auxiliary list.
func (s *Server) monthEvents(month time.Time, auxSlug string) ([]model.Event, []model.Auxiliary, error) {
	auxiliaries, err := s.store.ListAuxiliaries()
	if err != nil {
		return nil, nil, err
	}

	var auxID string
	if auxSlug != "" {
		aux, err := s.store.AuxiliaryBySlug(auxSlug)
		if err != nil {
			return nil, nil, err
		}
		auxID = aux.ID
	}

	// Fetch over the whole grid, not just the month, so events on
	// adjacent-month padding days show up.
	gridFirst, gridLast := calendar.GridRange(month)
	events, err := s.store.EventsOverlapping(auxID, gridFirst, gridLast)
	if err != nil {
		return nil, nil, err
	}
	return recur.Expand(events, gridFirst, gridLast), auxiliaries, nil
}

// buildWeekViews runs the layout engine and decorates its output with the
// presentation bits the template needs: auxiliary colors, in-month flags,
// and CSS grid coordinates.
func buildWeekViews(events []model.Event, month time.Time, colors map[string]string) []weekView {
	layoutEvents := make([]calendar.Event, len(events))
	for i, ev := range events {
		layoutEvents[i] = calendar.Event{
			Title: ev.Title,
			Start: ev.StartDate,
			End:   ev.EndDate,
		}
	}
	weeks := calendar.Build(layoutEvents, month)

	// Build segments reference the layout events by pointer; map those
	// pointers back to the source events to recover the auxiliary.
	source := make(map[*calendar.Event]*model.Event, len(events))
	for i := range layoutEvents {
		source[&layoutEvents[i]] = &events[i]
	}

	views := make([]weekView, len(weeks))
	for wi, week := range weeks {
		wv := weekView{Days: make([]dayView, 7)}
		for di, day := range week.Days {
			wv.Days[di] = dayView{
				Date:    day,
				Col:     di + 1,
				InMonth: day.Month() == month.Month(),
			}
		}
		for _, seg := range week.Segments {
			sv := segmentView{
				Title:           seg.Event.Title,
				Col:             seg.ColStart,
				Span:            seg.ColSpan,
				Row:             seg.Row,
				ContinuesBefore: seg.ContinuesBefore,
				ContinuesAfter:  seg.ContinuesAfter,
			}
			if src := source[seg.Event]; src != nil {
				sv.Color = colors[src.AuxiliaryID]
			}
			if sv.Color == "" {
				sv.Color = "#4a6da7"
			}
			wv.Segments = append(wv.Segments, sv)
		}
		views[wi] = wv
	}
	return views
}
