package order

import (
	"time"
)

// Order represents a customer order. Each order is owned by exactly one
// customer and carries the timestamp used by the retention policy.
type Order struct {
	ID          int64
	CustomerID  int64
	TotalAmount float64
	OrderDate   time.Time
}

// Reminder pairs an order with its customer's email for the order
// reminder job.
type Reminder struct {
	OrderID       int64
	CustomerEmail string
}
