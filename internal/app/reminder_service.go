package app

import (
	"context"
	"fmt"
	"time"

	"crm_maintenance_service/internal/domain/order"
	"crm_maintenance_service/internal/infra/auditlog"

	"github.com/sirupsen/logrus"
)

// ReminderWindow is the trailing duration of order activity covered by
// each reminder run.
const ReminderWindow = 7 * 24 * time.Hour

// ReminderService logs a reminder line for every order placed within the
// trailing reminder window.
type ReminderService interface {
	Run(ctx context.Context, now time.Time) (int, error)
}

type ReminderServiceImpl struct {
	orderRepo order.Repository
	auditSink auditlog.Sink
	logger    *logrus.Logger
}

func NewReminderServiceImpl(or order.Repository, sink auditlog.Sink, logger *logrus.Logger) *ReminderServiceImpl {
	return &ReminderServiceImpl{
		orderRepo: or,
		auditSink: sink,
		logger:    logger,
	}
}

// Run appends one "[ts] OrderID=<id> -> <email>" line per recent order and
// returns how many lines were written. A failed append mid-way leaves the
// earlier lines in place, matching the line-by-line contract of the sink.
func (s *ReminderServiceImpl) Run(ctx context.Context, now time.Time) (int, error) {
	since := now.Add(-ReminderWindow)

	reminders, err := s.orderRepo.ListRecentReminders(ctx, since, now)
	if err != nil {
		return 0, fmt.Errorf("failed to list recent orders: %w", err)
	}

	ts := now.Local().Format(auditTimestampLayout)
	written := 0
	for _, rem := range reminders {
		line := fmt.Sprintf("[%s] OrderID=%d -> %s", ts, rem.OrderID, rem.CustomerEmail)
		if err := s.auditSink.Append(line); err != nil {
			return written, fmt.Errorf("failed to write order reminder line: %w", err)
		}
		written++
	}

	s.logger.WithField("job", "order_reminders").Infof("Order reminders processed, %d orders in window", written)
	return written, nil
}
