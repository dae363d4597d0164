// Package jobs holds the scheduled background tasks.
package jobs

import (
	"time"

	"github.com/priyadarshi/darzi/app/repositories"
	"github.com/priyadarshi/darzi/pkg/logger"
	"github.com/priyadarshi/darzi/pkg/metrics"
	"github.com/priyadarshi/darzi/pkg/schedule"
	"gorm.io/gorm"
)

// reminderWindow is how far ahead the due-date scan looks.
const reminderWindow = 48 * time.Hour

// RegisterDueDateReminder schedules an hourly scan for orders that are
// still in production and due soon. Each hit is logged for the shop staff
// and the due_soon gauge is refreshed for dashboards.
func RegisterDueDateReminder(db *gorm.DB) {
	orders := repositories.NewOrderRepository(db)

	schedule.Every(time.Hour).Name("orders.due_date_reminder").Run(func() {
		due, err := orders.DueWithin(time.Now().Add(reminderWindow))
		if err != nil {
			logger.Error("due date scan failed", "error", err)
			return
		}

		metrics.DueSoon.Set(float64(len(due)))

		for _, o := range due {
			name := "Unknown"
			if o.Customer != nil {
				name = o.Customer.DisplayName()
			}
			logger.Warn("order due soon",
				"order_number", o.OrderNumber,
				"customer", name,
				"due_date", o.DueDate.Format("2006-01-02"),
				"status", o.Status.String(),
			)
		}
	})
}
