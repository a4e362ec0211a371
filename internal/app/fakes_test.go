package app

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"crm_maintenance_service/internal/domain/customer"
	"crm_maintenance_service/internal/domain/order"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// fakeCustomerRepo keeps customers and their orders in memory so the
// retention predicate can be evaluated without a database.
type fakeCustomerRepo struct {
	customers map[int64]*customer.Customer
	orders    map[int64][]time.Time // customer ID -> order dates

	listErr   error
	deleteErr error

	deleteCalls int
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{
		customers: make(map[int64]*customer.Customer),
		orders:    make(map[int64][]time.Time),
	}
}

func (r *fakeCustomerRepo) addCustomer(id int64, name string, orderDates ...time.Time) {
	r.customers[id] = &customer.Customer{ID: id, Name: name, Email: fmt.Sprintf("%s@example.com", name)}
	r.orders[id] = orderDates
}

func (r *fakeCustomerRepo) Create(ctx context.Context, c *customer.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	for _, c := range r.customers {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, fmt.Errorf("customer not found")
}

func (r *fakeCustomerRepo) ListInactive(ctx context.Context, cutoff time.Time) ([]*customer.Customer, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	inactive := make([]*customer.Customer, 0)
	for id, c := range r.customers {
		active := false
		for _, d := range r.orders[id] {
			if !d.Before(cutoff) {
				active = true
				break
			}
		}
		if !active {
			inactive = append(inactive, c)
		}
	}
	sort.Slice(inactive, func(i, j int) bool { return inactive[i].ID < inactive[j].ID })
	return inactive, nil
}

func (r *fakeCustomerRepo) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	r.deleteCalls++
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	var deleted int64
	for _, id := range ids {
		if _, ok := r.customers[id]; ok {
			delete(r.customers, id)
			delete(r.orders, id) // cascade
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeCustomerRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.customers)), nil
}

type fakeOrderRepo struct {
	reminders []*order.Reminder
	listErr   error

	orderCount   int64
	totalRevenue float64
	countErr     error

	// Window the last ListRecentReminders call was asked for.
	listedSince time.Time
	listedUntil time.Time
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *order.Order) error { return nil }

func (r *fakeOrderRepo) ListRecentReminders(ctx context.Context, since, until time.Time) ([]*order.Reminder, error) {
	r.listedSince = since
	r.listedUntil = until
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.reminders, nil
}

func (r *fakeOrderRepo) Count(ctx context.Context) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return r.orderCount, nil
}

func (r *fakeOrderRepo) TotalRevenue(ctx context.Context) (float64, error) {
	return r.totalRevenue, nil
}

// fakeSink records appended lines; appendErr makes every Append fail.
type fakeSink struct {
	lines     []string
	appendErr error
}

func (s *fakeSink) Append(line string) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.lines = append(s.lines, line)
	return nil
}

// fakeRunLock counts acquisitions; acquireErr simulates a held lock.
type fakeRunLock struct {
	acquireErr error
	acquired   int
	released   int
}

func (l *fakeRunLock) Acquire(ctx context.Context) error {
	if l.acquireErr != nil {
		return l.acquireErr
	}
	l.acquired++
	return nil
}

func (l *fakeRunLock) Release(ctx context.Context) error {
	l.released++
	return nil
}
