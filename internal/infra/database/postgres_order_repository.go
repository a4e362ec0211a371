package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"crm_maintenance_service/internal/domain/order"
)

type PostgresOrderRepository struct {
	db *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

func (r *PostgresOrderRepository) Create(ctx context.Context, o *order.Order) error {
	query := `INSERT INTO orders (customer_id, total_amount, order_date)
               VALUES ($1, $2, $3)
               RETURNING id`

	err := r.db.QueryRowContext(ctx, query, o.CustomerID, o.TotalAmount, o.OrderDate).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("error creating order: %w", err)
	}
	return nil
}

func (r *PostgresOrderRepository) ListRecentReminders(ctx context.Context, since, until time.Time) ([]*order.Reminder, error) {
	query := `SELECT o.id, c.email
               FROM orders o
               JOIN customers c ON c.id = o.customer_id
               WHERE o.order_date >= $1 AND o.order_date <= $2
               ORDER BY o.order_date DESC`

	rows, err := r.db.QueryContext(ctx, query, since, until)
	if err != nil {
		return nil, fmt.Errorf("error listing recent orders: %w", err)
	}
	defer rows.Close()

	reminders := make([]*order.Reminder, 0)
	for rows.Next() {
		rem := &order.Reminder{}
		if err := rows.Scan(&rem.OrderID, &rem.CustomerEmail); err != nil {
			return nil, fmt.Errorf("error scanning order reminder: %w", err)
		}
		reminders = append(reminders, rem)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order reminders: %w", err)
	}
	return reminders, nil
}

func (r *PostgresOrderRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting orders: %w", err)
	}
	return n, nil
}

func (r *PostgresOrderRepository) TotalRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(total_amount), 0) FROM orders`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error summing order revenue: %w", err)
	}
	return total, nil
}
