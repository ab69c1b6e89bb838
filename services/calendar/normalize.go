package calendar

import (
	"strings"
	"time"

	"loomdesk/models"
)

// dueDateLayouts are the accepted provider date formats, most specific first.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseDueDate parses a provider due date in UTC. Providers are inconsistent
// about whether they send a bare date or a full timestamp; date-only values
// land on UTC midnight so same-day ordering falls back to kind then title.
func parseDueDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// eventFromOrder builds a calendar event from an order record. Returns false
// when the due date is missing or unparsable.
func eventFromOrder(rec models.OrderRecord) (models.CalendarEvent, bool) {
	due, ok := parseDueDate(rec.DueDate)
	if !ok {
		return models.CalendarEvent{}, false
	}
	ev := models.CalendarEvent{
		ID:      rec.ID,
		Kind:    models.EventKindOrder,
		Title:   rec.Title,
		DueDate: due.Format("2006-01-02"),
		DueAt:   due,
		Status:  rec.Status,
	}
	if rec.Client != nil {
		ev.Actor = rec.Client.Name
	}
	return ev, true
}

// eventFromTask builds a calendar event from a task record. Returns false
// when the due date is missing or unparsable.
func eventFromTask(rec models.TaskRecord) (models.CalendarEvent, bool) {
	due, ok := parseDueDate(rec.DueDate)
	if !ok {
		return models.CalendarEvent{}, false
	}
	ev := models.CalendarEvent{
		ID:       rec.ID,
		Kind:     models.EventKindTask,
		Title:    rec.Title,
		DueDate:  due.Format("2006-01-02"),
		DueAt:    due,
		Status:   rec.Status,
		Priority: rec.Priority,
	}
	if rec.Worker != nil {
		ev.Actor = rec.Worker.Name
	}
	return ev, true
}

// Normalize maps both provider collections into the common event shape.
// Records with missing or unparsable due dates are dropped rather than
// failing the pipeline; the returned count reports how many were dropped.
// Output order is unspecified — ordering is the consumer's job.
func Normalize(orders []models.OrderRecord, tasks []models.TaskRecord) ([]models.CalendarEvent, int) {
	events := make([]models.CalendarEvent, 0, len(orders)+len(tasks))
	dropped := 0

	for _, rec := range orders {
		ev, ok := eventFromOrder(rec)
		if !ok {
			dropped++
			continue
		}
		events = append(events, ev)
	}
	for _, rec := range tasks {
		ev, ok := eventFromTask(rec)
		if !ok {
			dropped++
			continue
		}
		events = append(events, ev)
	}

	return events, dropped
}
