package layout

import (
	"time"

	"github.com/daybook/core/internal/domain/entities"
)

// EventsForDay returns the events touching the given day: those starting or
// ending on it, plus day-spanning events that cover it entirely.
func EventsForDay(events []entities.Event, day time.Time) []entities.Event {
	midnight := dayStart(day)
	var out []entities.Event
	for _, ev := range events {
		if sameDay(ev.StartDate, day) || sameDay(ev.EndDate, day) {
			out = append(out, ev)
			continue
		}
		if !ev.StartDate.After(midnight) && !ev.EndDate.Before(midnight) {
			out = append(out, ev)
		}
	}
	return out
}

// InWindow reports whether a timed event intersects the visible window.
// The window's end hour is rendered in full, so the effective upper bound is
// End+1; both bounds are strict, which makes an event ending exactly at the
// window's start hour hidden.
func InWindow(ev entities.Event, w TimeWindow) bool {
	startDec := hourDecimal(ev.StartDate)
	endDec := hourDecimal(ev.EndDate)
	return startDec < float64(w.End+1) && endDec > float64(w.Start)
}

// FilterDay partitions the events relevant to day into the all-day row, the
// timed events inside the window, and the hidden remainder. Every relevant
// event lands in exactly one of the three sets.
func FilterDay(events []entities.Event, day time.Time, w TimeWindow) VisibilitySet {
	var set VisibilitySet
	for _, ev := range EventsForDay(events, day) {
		switch {
		case ev.AllDay:
			set.AllDay = append(set.AllDay, ev)
		case InWindow(ev, w):
			set.Visible = append(set.Visible, ev)
		default:
			set.Hidden = append(set.Hidden, ev)
		}
	}
	return set
}

// HiddenEvents returns the timed events from the given list that the window
// excludes, ignoring all-day events. Used by the window controller, which
// operates on an already day-scoped list.
func HiddenEvents(events []entities.Event, w TimeWindow) []entities.Event {
	var hidden []entities.Event
	for _, ev := range events {
		if ev.AllDay {
			continue
		}
		if !InWindow(ev, w) {
			hidden = append(hidden, ev)
		}
	}
	return hidden
}
