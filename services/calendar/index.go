package calendar

import (
	"time"

	"loomdesk/models"
)

// Filter reduces the event set to the requested kinds. Unknown filter modes
// behave as "all". Filtering happens before indexing so no day bucket ever
// retains excluded events.
func Filter(events []models.CalendarEvent, mode string) []models.CalendarEvent {
	var kind string
	switch mode {
	case models.FilterOrders:
		kind = models.EventKindOrder
	case models.FilterTasks:
		kind = models.EventKindTask
	default:
		return events
	}

	filtered := make([]models.CalendarEvent, 0, len(events))
	for _, ev := range events {
		if ev.Kind == kind {
			filtered = append(filtered, ev)
		}
	}
	return filtered
}

// Index groups events by the date-only component of their due date, keyed by
// ISO date string. It is rebuilt in full on every refresh, never patched
// incrementally; callers treat it as read-only and discard it on the next
// rebuild. Per-bucket insertion order is undefined.
type Index map[string][]models.CalendarEvent

// BuildIndex builds a day-keyed lookup over the given events.
func BuildIndex(events []models.CalendarEvent) Index {
	idx := make(Index)
	for _, ev := range events {
		idx[ev.DueDate] = append(idx[ev.DueDate], ev)
	}
	return idx
}

// EventsOn returns the events due on the given day. Days with no events
// yield an empty sequence, never a missing-key signal.
func (idx Index) EventsOn(day time.Time) []models.CalendarEvent {
	return idx[day.UTC().Format("2006-01-02")]
}
