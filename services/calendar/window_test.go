package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loomdesk/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeWindow_DayCounts(t *testing.T) {
	anchors := []time.Time{
		date(2025, time.January, 1),
		date(2025, time.February, 28),
		date(2024, time.February, 29),
		date(2025, time.December, 31),
		date(2025, time.June, 15),
	}

	for _, anchor := range anchors {
		assert.Len(t, ComputeWindow(anchor, models.ModeMonth, time.Sunday).Days, 42, "month %s", anchor)
		assert.Len(t, ComputeWindow(anchor, models.ModeWeek, time.Sunday).Days, 7, "week %s", anchor)
		assert.Len(t, ComputeWindow(anchor, models.ModeDay, time.Sunday).Days, 1, "day %s", anchor)
	}
}

func TestComputeWindow_MonthGridFebruary2025(t *testing.T) {
	// Feb 1 2025 is a Saturday; a Sunday-first grid starts the previous
	// Sunday and runs 42 days.
	window := ComputeWindow(date(2025, time.February, 1), models.ModeMonth, time.Sunday)

	require.Len(t, window.Days, 42)
	assert.Equal(t, date(2025, time.January, 26), window.Days[0])
	assert.Equal(t, time.Sunday, window.Days[0].Weekday())
	assert.Equal(t, date(2025, time.March, 8), window.Days[41])
}

func TestComputeWindow_MonthGridCoversWholeMonth(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		anchor := date(2025, month, 15)
		window := ComputeWindow(anchor, models.ModeMonth, time.Sunday)

		first := date(2025, month, 1)
		last := first.AddDate(0, 1, -1)

		require.Len(t, window.Days, 42)
		assert.False(t, window.Days[0].After(first), "grid for %s starts after the 1st", month)
		assert.False(t, window.Days[41].Before(last), "grid for %s ends before the %dth", month, last.Day())
		assert.Equal(t, time.Sunday, window.Days[0].Weekday())

		// Consecutive days, no gaps
		for i := 1; i < len(window.Days); i++ {
			assert.Equal(t, window.Days[i-1].AddDate(0, 0, 1), window.Days[i])
		}
	}
}

func TestComputeWindow_WeekAlignment(t *testing.T) {
	// 2025-06-18 is a Wednesday
	window := ComputeWindow(date(2025, time.June, 18), models.ModeWeek, time.Sunday)
	require.Len(t, window.Days, 7)
	assert.Equal(t, date(2025, time.June, 15), window.Days[0]) // Sunday
	assert.Equal(t, date(2025, time.June, 21), window.Days[6]) // Saturday

	// Monday-first locale
	window = ComputeWindow(date(2025, time.June, 18), models.ModeWeek, time.Monday)
	assert.Equal(t, date(2025, time.June, 16), window.Days[0])

	// Anchor already on the first weekday stays put
	window = ComputeWindow(date(2025, time.June, 15), models.ModeWeek, time.Sunday)
	assert.Equal(t, date(2025, time.June, 15), window.Days[0])
}

func TestComputeWindow_Day(t *testing.T) {
	window := ComputeWindow(date(2025, time.March, 10), models.ModeDay, time.Sunday)
	require.Len(t, window.Days, 1)
	assert.Equal(t, date(2025, time.March, 10), window.Days[0])
}

func TestComputeWindow_UnknownModeFallsBackToMonth(t *testing.T) {
	window := ComputeWindow(date(2025, time.March, 10), "agenda", time.Sunday)
	assert.Equal(t, models.ModeMonth, window.Mode)
	assert.Len(t, window.Days, 42)
}

func TestComputeWindow_TruncatesAnchorTime(t *testing.T) {
	anchor := time.Date(2025, time.March, 10, 17, 45, 12, 0, time.UTC)
	window := ComputeWindow(anchor, models.ModeDay, time.Sunday)
	assert.Equal(t, date(2025, time.March, 10), window.Anchor)
}

func TestShiftAnchor_MonthEndClamping(t *testing.T) {
	tests := []struct {
		name      string
		anchor    time.Time
		direction int
		want      time.Time
	}{
		{"prev from Mar 31 clamps to Feb 28", date(2025, time.March, 31), -1, date(2025, time.February, 28)},
		{"prev from Mar 31 leap year clamps to Feb 29", date(2024, time.March, 31), -1, date(2024, time.February, 29)},
		{"next from Jan 31 clamps to Feb 28", date(2025, time.January, 31), 1, date(2025, time.February, 28)},
		{"next from Oct 31 clamps to Nov 30", date(2025, time.October, 31), 1, date(2025, time.November, 30)},
		{"mid-month day preserved", date(2025, time.April, 15), 1, date(2025, time.May, 15)},
		{"year rollover backward", date(2025, time.January, 10), -1, date(2024, time.December, 10)},
		{"year rollover forward", date(2025, time.December, 10), 1, date(2026, time.January, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shiftAnchor(tt.anchor, models.ModeMonth, tt.direction)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShiftAnchor_WeekAndDay(t *testing.T) {
	anchor := date(2025, time.March, 31)
	assert.Equal(t, date(2025, time.April, 7), shiftAnchor(anchor, models.ModeWeek, 1))
	assert.Equal(t, date(2025, time.March, 24), shiftAnchor(anchor, models.ModeWeek, -1))
	assert.Equal(t, date(2025, time.April, 1), shiftAnchor(anchor, models.ModeDay, 1))
	assert.Equal(t, date(2025, time.March, 30), shiftAnchor(anchor, models.ModeDay, -1))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, daysInMonth(2025, time.January))
	assert.Equal(t, 28, daysInMonth(2025, time.February))
	assert.Equal(t, 29, daysInMonth(2024, time.February))
	assert.Equal(t, 30, daysInMonth(2025, time.April))
}
