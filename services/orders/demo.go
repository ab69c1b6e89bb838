package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"loomdesk/models"
)

// Demo serves generated fixture orders so the console renders without a
// configured provider.
type Demo struct {
	records []models.OrderRecord
}

// NewDemo builds a fixture collection of orders spread around the given day.
func NewDemo(now time.Time) *Demo {
	day := func(offset int) string {
		return now.UTC().AddDate(0, 0, offset).Format("2006-01-02")
	}

	fixtures := []struct {
		title  string
		due    string
		status string
		client string
	}{
		{"500x polo shirts, navy", day(-3), models.StatusCompleted, "Harbor Outfitters"},
		{"120x chef jackets", day(0), models.StatusInProgress, "Brigade Culinary"},
		{"Sample run: linen blazers", day(2), models.StatusInProgress, "Atelier Moreno"},
		{"2000x printed tees", day(6), models.StatusPending, "Festival Merch Co"},
		{"80x winter parkas", day(14), models.StatusPending, "North Trail Gear"},
		{"Uniform refresh, phase 2", day(25), models.StatusPending, "Crestview Hotels"},
	}

	records := make([]models.OrderRecord, 0, len(fixtures))
	for i, f := range fixtures {
		records = append(records, models.OrderRecord{
			ID:      uuid.NewString(),
			Title:   fmt.Sprintf("PO-%04d %s", 1000+i, f.title),
			DueDate: f.due,
			Status:  f.status,
			Client:  &models.OrderClient{Name: f.client},
		})
	}
	return &Demo{records: records}
}

// ListOrders returns the fixture collection.
func (d *Demo) ListOrders(_ context.Context) ([]models.OrderRecord, error) {
	return d.records, nil
}
