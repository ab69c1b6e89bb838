package calendar

import (
	"time"

	"loomdesk/models"
)

// monthGridDays is the fixed 6x7 month grid size, independent of month length.
const monthGridDays = 42

// startOfDay truncates t to UTC midnight.
func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// weekStart steps back from t to the most recent occurrence of the first
// weekday (t itself when it already falls on one).
func weekStart(t time.Time, firstWeekday time.Weekday) time.Time {
	t = startOfDay(t)
	offset := (int(t.Weekday()) - int(firstWeekday) + 7) % 7
	return t.AddDate(0, 0, -offset)
}

// ComputeWindow derives the inclusive set of days a view must render.
// Month mode starts at the week containing the 1st of the anchor's month and
// emits exactly 42 consecutive days, so leading and trailing cells belong to
// adjacent months. Week mode emits 7 days aligned to the first weekday; day
// mode emits the anchor alone. Unknown modes fall back to month.
func ComputeWindow(anchor time.Time, mode string, firstWeekday time.Weekday) models.ViewWindow {
	anchor = startOfDay(anchor)

	var start time.Time
	var n int
	switch mode {
	case models.ModeDay:
		start, n = anchor, 1
	case models.ModeWeek:
		start, n = weekStart(anchor, firstWeekday), 7
	default:
		mode = models.ModeMonth
		firstOfMonth := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
		start, n = weekStart(firstOfMonth, firstWeekday), monthGridDays
	}

	days := make([]time.Time, n)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return models.ViewWindow{Mode: mode, Anchor: anchor, Days: days}
}

// shiftAnchor moves the anchor one period in the given direction (+1 or -1)
// for the active mode.
func shiftAnchor(anchor time.Time, mode string, direction int) time.Time {
	anchor = startOfDay(anchor)
	switch mode {
	case models.ModeDay:
		return anchor.AddDate(0, 0, direction)
	case models.ModeWeek:
		return anchor.AddDate(0, 0, 7*direction)
	default:
		return addMonthClamped(anchor, direction)
	}
}

// addMonthClamped adds months preserving the day-of-month where valid and
// clamping to the last valid day otherwise. time.AddDate would normalize
// instead (Jan 31 plus one month becomes Mar 3), which drifts the anchor.
func addMonthClamped(t time.Time, months int) time.Time {
	firstOfMonth := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	shifted := firstOfMonth.AddDate(0, months, 0)

	day := t.Day()
	if last := daysInMonth(shifted.Year(), shifted.Month()); day > last {
		day = last
	}
	return time.Date(shifted.Year(), shifted.Month(), day, 0, 0, 0, 0, time.UTC)
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}
