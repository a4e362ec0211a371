package customer

import (
	"database/sql"
	"time"
)

// RetentionWindow is the trailing duration of order activity that keeps
// a customer alive. A customer with no order inside this window (or no
// orders at all) is inactive and eligible for deletion.
const RetentionWindow = 365 * 24 * time.Hour

// Customer represents a CRM customer.
type Customer struct {
	ID        int64
	Name      string
	Email     string
	Phone     sql.NullString // Optional contact number
	CreatedAt time.Time
}

// InactiveCutoff returns the cutoff instant for the given current time:
// orders dated on or after the cutoff keep their customer active.
func InactiveCutoff(now time.Time) time.Time {
	return now.Add(-RetentionWindow)
}
