package tasks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"loomdesk/models"
)

// Demo serves generated fixture tasks so the console renders without a
// configured provider.
type Demo struct {
	records []models.TaskRecord
}

// NewDemo builds a fixture collection of tasks spread around the given day.
// A couple of tasks carry intraday timestamps so the day agenda has
// something to order.
func NewDemo(now time.Time) *Demo {
	day := func(offset int) string {
		return now.UTC().AddDate(0, 0, offset).Format("2006-01-02")
	}
	at := func(offset int, clock string) string {
		return day(offset) + "T" + clock + ":00Z"
	}

	fixtures := []struct {
		title    string
		due      string
		status   string
		priority string
		worker   string
	}{
		{"Cut fabric for PO-1001", at(0, "08:30"), models.StatusInProgress, "high", "Mei Lin"},
		{"QC pass on polo batch", at(0, "14:00"), models.StatusPending, "medium", "Oscar Duarte"},
		{"Restock navy thread", day(1), models.StatusPending, "low", "Priya Shah"},
		{"Fit session, linen blazers", at(2, "10:00"), models.StatusPending, "high", "Jonas Keller"},
		{"Calibrate embroidery heads", day(4), models.StatusPending, "medium", "Mei Lin"},
		{"Pack and ship tee order", day(6), models.StatusPending, "high", "Oscar Duarte"},
	}

	records := make([]models.TaskRecord, 0, len(fixtures))
	for _, f := range fixtures {
		records = append(records, models.TaskRecord{
			ID:       uuid.NewString(),
			Title:    f.title,
			DueDate:  f.due,
			Status:   f.status,
			Priority: f.priority,
			Worker:   &models.TaskWorker{Name: f.worker},
		})
	}
	return &Demo{records: records}
}

// ListTasks returns the fixture collection.
func (d *Demo) ListTasks(_ context.Context) ([]models.TaskRecord, error) {
	return d.records, nil
}
