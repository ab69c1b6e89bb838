package calendar

import (
	"sort"
	"time"

	"loomdesk/models"
)

// ProjectMonth renders the 42-cell month grid, attaching per-day events plus
// current-month and today flags. Overflow days from adjacent months keep
// their event lists — the display layer dims them, it does not hide them.
// No per-day truncation happens here.
func ProjectMonth(window models.ViewWindow, idx Index, now time.Time) []models.DayCell {
	today := startOfDay(now)
	cells := make([]models.DayCell, 0, len(window.Days))
	for _, day := range window.Days {
		cells = append(cells, models.DayCell{
			Date:           day.Format("2006-01-02"),
			Weekday:        day.Weekday().String(),
			IsCurrentMonth: day.Month() == window.Anchor.Month() && day.Year() == window.Anchor.Year(),
			IsToday:        day.Equal(today),
			Events:         eventsOrEmpty(idx, day),
		})
	}
	return cells
}

// ProjectWeek renders the 7-day strip with weekday label data. Every day in
// a week strip counts as current.
func ProjectWeek(window models.ViewWindow, idx Index, now time.Time) []models.DayCell {
	today := startOfDay(now)
	cells := make([]models.DayCell, 0, len(window.Days))
	for _, day := range window.Days {
		cells = append(cells, models.DayCell{
			Date:           day.Format("2006-01-02"),
			Weekday:        day.Weekday().String(),
			IsCurrentMonth: true,
			IsToday:        day.Equal(today),
			Events:         eventsOrEmpty(idx, day),
		})
	}
	return cells
}

// ProjectDay renders the single-day agenda: orders and tasks interleaved,
// sorted ascending by full timestamp. Date-only events carry the UTC
// midnight fallback and therefore deliberately sort to the front of the day,
// ahead of every timestamped event. Ties break by kind then title to keep
// the agenda stable across refreshes regardless of input order.
func ProjectDay(window models.ViewWindow, idx Index) []models.CalendarEvent {
	events := append([]models.CalendarEvent(nil), idx.EventsOn(window.Anchor)...)
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].DueAt.Equal(events[j].DueAt) {
			return events[i].DueAt.Before(events[j].DueAt)
		}
		if events[i].Kind != events[j].Kind {
			return events[i].Kind < events[j].Kind
		}
		return events[i].Title < events[j].Title
	})
	if events == nil {
		events = []models.CalendarEvent{}
	}
	return events
}

func eventsOrEmpty(idx Index, day time.Time) []models.CalendarEvent {
	if events := idx.EventsOn(day); events != nil {
		return events
	}
	return []models.CalendarEvent{}
}
