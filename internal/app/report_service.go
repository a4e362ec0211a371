package app

import (
	"context"
	"fmt"
	"time"

	"crm_maintenance_service/internal/domain/customer"
	"crm_maintenance_service/internal/domain/order"
	"crm_maintenance_service/internal/infra/auditlog"

	"github.com/sirupsen/logrus"
)

// ReportService appends a periodic totals line to the report log:
// number of customers, number of orders and total revenue.
type ReportService interface {
	Run(ctx context.Context, now time.Time) error
}

type ReportServiceImpl struct {
	customerRepo customer.Repository
	orderRepo    order.Repository
	auditSink    auditlog.Sink
	logger       *logrus.Logger
}

func NewReportServiceImpl(
	cr customer.Repository,
	or order.Repository,
	sink auditlog.Sink,
	logger *logrus.Logger,
) *ReportServiceImpl {
	return &ReportServiceImpl{
		customerRepo: cr,
		orderRepo:    or,
		auditSink:    sink,
		logger:       logger,
	}
}

func (s *ReportServiceImpl) Run(ctx context.Context, now time.Time) error {
	customers, err := s.customerRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count customers for report: %w", err)
	}
	orders, err := s.orderRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count orders for report: %w", err)
	}
	revenue, err := s.orderRepo.TotalRevenue(ctx)
	if err != nil {
		return fmt.Errorf("failed to sum revenue for report: %w", err)
	}

	line := fmt.Sprintf("%s - Report: %d customers, %d orders, %.2f revenue",
		now.Local().Format(auditTimestampLayout), customers, orders, revenue)
	if err := s.auditSink.Append(line); err != nil {
		return fmt.Errorf("failed to write report line: %w", err)
	}

	s.logger.WithField("job", "crm_report").Infof("Report written: %d customers, %d orders, %.2f revenue", customers, orders, revenue)
	return nil
}
