package customer

import (
	"context"
	"time"
)

// Repository defines the operations for persisting and retrieving Customer entities.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByEmail(ctx context.Context, email string) (*Customer, error)
	// ListInactive returns every customer with no order dated on or after
	// cutoff, including customers with no orders at all. Each qualifying
	// customer appears exactly once.
	ListInactive(ctx context.Context, cutoff time.Time) ([]*Customer, error)
	// DeleteByIDs removes the given customers in a single statement and
	// returns the number of rows deleted. Orders owned by a deleted
	// customer are removed by the schema's ON DELETE CASCADE rule.
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
	Count(ctx context.Context) (int64, error)
}
