// Package pkg provides the reusable libraries behind congregate.
//
// # Overview
//
// Congregate serves a congregation web site: announcement posts and a
// shared month calendar with per-auxiliary events. The pkg directory holds
// the pieces that stand on their own:
//
//  1. [calendar] - Month grid layout engine (week rows, event segments, lanes)
//  2. [errors] - Structured error codes and input validation
//  3. [buildinfo] - Build-time version information
//
// Application wiring (SQLite store, HTTP handlers, recurrence expansion,
// the CLI) lives under internal/.
//
// # Quick Start
//
// Lay out a month of events:
//
//	import "congregate/pkg/calendar"
//
//	events := []calendar.Event{
//	    {Title: "Stake Conference",
//	        Start: time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC),
//	        End:   time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)},
//	}
//	weeks := calendar.Build(events, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
//	for _, week := range weeks {
//	    for _, seg := range week.Segments {
//	        // position by seg.ColStart, seg.ColSpan, seg.Row
//	    }
//	}
package pkg
