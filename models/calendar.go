package models

import "time"

// Event kinds.
const (
	EventKindOrder = "order"
	EventKindTask  = "task"
)

// View modes.
const (
	ModeMonth = "month"
	ModeWeek  = "week"
	ModeDay   = "day"
)

// Filter modes.
const (
	FilterAll    = "all"
	FilterOrders = "orders"
	FilterTasks  = "tasks"
)

// Known status values. Providers may use other vocabularies; unmapped
// values pass through verbatim.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// CalendarEvent is a normalized, day-bucketable unit derived from either an
// order or a task record. Events are immutable within a refresh cycle.
type CalendarEvent struct {
	ID       string    `json:"id"`
	Kind     string    `json:"kind"`    // "order" | "task"
	Title    string    `json:"title"`
	DueDate  string    `json:"dueDate"` // YYYY-MM-DD (UTC)
	DueAt    time.Time `json:"dueAt"`   // full timestamp, used for same-day ordering
	Status   string    `json:"status"`
	Priority string    `json:"priority,omitempty"` // tasks only: low|medium|high
	Actor    string    `json:"actor,omitempty"`    // client name (orders) / worker name (tasks)
}

// Key returns the globally unique identity of an event. IDs are only unique
// within a kind, so the kind is part of the key.
func (e CalendarEvent) Key() string {
	return e.Kind + ":" + e.ID
}

// ViewWindow is the ordered set of days a view must render: 42 for month
// (fixed 6x7 grid), 7 for week, 1 for day.
type ViewWindow struct {
	Mode   string      `json:"mode"`
	Anchor time.Time   `json:"anchor"`
	Days   []time.Time `json:"days"`
}

// DayCell is one renderable day in a month grid or week strip.
type DayCell struct {
	Date           string          `json:"date"` // YYYY-MM-DD
	Weekday        string          `json:"weekday"`
	IsCurrentMonth bool            `json:"isCurrentMonth"`
	IsToday        bool            `json:"isToday"`
	Events         []CalendarEvent `json:"events"`
}

// CalendarResponse is the API response for the calendar view endpoint.
// Month and week views populate Cells; day view populates Events.
type CalendarResponse struct {
	Mode        string          `json:"mode"`
	Anchor      string          `json:"anchor"` // YYYY-MM-DD
	Filter      string          `json:"filter"`
	Cells       []DayCell       `json:"cells,omitempty"`
	Events      []CalendarEvent `json:"events,omitempty"`
	Total       int             `json:"total"`
	RefreshedAt string          `json:"refreshedAt,omitempty"`
}
