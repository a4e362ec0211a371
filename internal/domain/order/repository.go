package order

import (
	"context"
	"time"
)

// Repository defines the operations for persisting and retrieving Order entities.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	// ListRecentReminders returns one Reminder per order whose order_date
	// falls within [since, until], newest first.
	ListRecentReminders(ctx context.Context, since, until time.Time) ([]*Reminder, error)
	Count(ctx context.Context) (int64, error)
	// TotalRevenue sums total_amount over all orders; an empty table sums to 0.
	TotalRevenue(ctx context.Context) (float64, error)
}
