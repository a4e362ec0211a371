package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"crm_maintenance_service/internal/domain/customer"

	"github.com/lib/pq"
)

// Custom errors
var ErrCustomerNotFound = fmt.Errorf("customer not found")
var ErrDuplicateEmail = fmt.Errorf("customer with this email already exists")

type PostgresCustomerRepository struct {
	db *sql.DB
}

func NewPostgresCustomerRepository(db *sql.DB) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{db: db}
}

func (r *PostgresCustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	query := `INSERT INTO customers (name, email, phone)
               VALUES ($1, $2, $3)
               RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, c.Name, c.Email, c.Phone).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "unique constraint") && strings.Contains(err.Error(), "customers_email_key") {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("error creating customer: %w", err)
	}
	return nil
}

func (r *PostgresCustomerRepository) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	query := `SELECT id, name, email, phone, created_at
               FROM customers WHERE email = $1`
	c := &customer.Customer{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("error getting customer by email: %w", err)
	}
	return c, nil
}

// ListInactive returns every customer with no order dated on or after cutoff.
// The anti-join yields each customer at most once, so customers with several
// stale orders are not duplicated, and customers with no orders are included.
func (r *PostgresCustomerRepository) ListInactive(ctx context.Context, cutoff time.Time) ([]*customer.Customer, error) {
	query := `SELECT c.id, c.name, c.email, c.phone, c.created_at
               FROM customers c
               WHERE NOT EXISTS (
                   SELECT 1 FROM orders o
                   WHERE o.customer_id = c.id AND o.order_date >= $1
               )
               ORDER BY c.id`

	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("error listing inactive customers: %w", err)
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		c := &customer.Customer{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning inactive customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inactive customers: %w", err)
	}
	return customers, nil
}

// DeleteByIDs removes the given customers in a single statement. The schema
// declares orders.customer_id REFERENCES customers(id) ON DELETE CASCADE, so
// owned orders are removed in the same transaction as their customer.
func (r *PostgresCustomerRepository) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `DELETE FROM customers WHERE id = ANY($1)`

	res, err := r.db.ExecContext(ctx, query, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("error deleting customers: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error reading deleted customer count: %w", err)
	}
	return affected, nil
}

func (r *PostgresCustomerRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting customers: %w", err)
	}
	return n, nil
}
