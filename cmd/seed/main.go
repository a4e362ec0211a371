// cmd/seed seeds the CRM database with a few sample customers and one
// order, for local development. Re-running is a no-op for customers that
// already exist.
package main

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"crm_maintenance_service/internal/domain/customer"
	"crm_maintenance_service/internal/domain/order"
	"crm_maintenance_service/internal/infra/config"
	idb "crm_maintenance_service/internal/infra/database"
	"crm_maintenance_service/internal/infra/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Could not load application configuration: %v", err)
	}
	logger.Init(cfg)
	log := logger.Get()

	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	defer db.Close()

	customerRepo := idb.NewPostgresCustomerRepository(db)
	orderRepo := idb.NewPostgresOrderRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	samples := []*customer.Customer{
		{Name: "Alice", Email: "alice@example.com", Phone: sql.NullString{String: "+1234567890", Valid: true}},
		{Name: "Bob", Email: "bob@example.com"},
		{Name: "Carol", Email: "carol@example.com", Phone: sql.NullString{String: "123-456-7890", Valid: true}},
	}

	for _, c := range samples {
		if _, err := customerRepo.GetByEmail(ctx, c.Email); err == nil {
			log.Infof("Customer %s already exists, skipping.", c.Email)
			continue
		} else if !errors.Is(err, idb.ErrCustomerNotFound) {
			log.Fatalf("Could not check for existing customer %s: %v", c.Email, err)
		}
		if err := customerRepo.Create(ctx, c); err != nil {
			log.Fatalf("Could not create customer %s: %v", c.Email, err)
		}
		log.Infof("Created customer %s (ID %d).", c.Email, c.ID)
		if c.Name == "Alice" {
			o := &order.Order{
				CustomerID:  c.ID,
				TotalAmount: 1025.49,
				OrderDate:   time.Now(),
			}
			if err := orderRepo.Create(ctx, o); err != nil {
				log.Fatalf("Could not create sample order: %v", err)
			}
			log.Infof("Created sample order %d for %s.", o.ID, c.Email)
		}
	}

	customers, err := customerRepo.Count(ctx)
	if err != nil {
		log.Fatalf("Could not count customers: %v", err)
	}
	orders, err := orderRepo.Count(ctx)
	if err != nil {
		log.Fatalf("Could not count orders: %v", err)
	}
	log.Infof("Seed complete. Customers: %d, Orders: %d", customers, orders)
}
