// internal/app/cleanup_service.go
package app

import (
	"context"
	"fmt"
	"time"

	"crm_maintenance_service/internal/domain/customer"
	"crm_maintenance_service/internal/infra/auditlog"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// auditTimestampLayout is the timestamp format of every audit line,
// e.g. "[2024-06-01 02:00:00] Deleted customers: 2".
const auditTimestampLayout = "2006-01-02 15:04:05"

// RunLock guards a maintenance job against overlapping invocations.
// Acquire must fail fast (not block) when the lock is already held.
type RunLock interface {
	Acquire(ctx context.Context) error
	Release(ctx context.Context) error
}

// CleanupService removes customers with no order activity inside the
// retention window and records one audit line per completed run.
type CleanupService interface {
	// Run performs a single cleanup pass for the given current instant and
	// returns the number of customers that were classified inactive. The
	// count reflects the inactive set before deletion. On any error no
	// audit line with a fabricated count is written.
	Run(ctx context.Context, now time.Time) (int64, error)
}

// CleanupServiceImpl implements CleanupService against a customer
// repository, a run lock and an append-only audit sink.
type CleanupServiceImpl struct {
	customerRepo customer.Repository
	runLock      RunLock
	auditSink    auditlog.Sink
	logger       *logrus.Logger
}

func NewCleanupServiceImpl(
	cr customer.Repository,
	lock RunLock,
	sink auditlog.Sink,
	logger *logrus.Logger,
) *CleanupServiceImpl {
	return &CleanupServiceImpl{
		customerRepo: cr,
		runLock:      lock,
		auditSink:    sink,
		logger:       logger,
	}
}

func (s *CleanupServiceImpl) Run(ctx context.Context, now time.Time) (int64, error) {
	log := s.logger.WithFields(logrus.Fields{
		"job":    "customer_cleanup",
		"run_id": uuid.NewString(),
	})

	if err := s.runLock.Acquire(ctx); err != nil {
		return 0, fmt.Errorf("customer cleanup could not start: %w", err)
	}
	defer func() {
		if err := s.runLock.Release(ctx); err != nil {
			log.Warnf("Failed to release cleanup run lock: %v", err)
		}
	}()

	cutoff := customer.InactiveCutoff(now)
	log.Infof("Evaluating retention policy with cutoff %s", cutoff.Format(auditTimestampLayout))

	inactive, err := s.customerRepo.ListInactive(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list inactive customers: %w", err)
	}

	// The reported count is the cardinality of the inactive set as
	// evaluated, not whatever the delete statement ends up affecting.
	count := int64(len(inactive))

	ids := make([]int64, 0, len(inactive))
	for _, c := range inactive {
		ids = append(ids, c.ID)
	}

	deleted, err := s.customerRepo.DeleteByIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete inactive customers: %w", err)
	}
	if deleted != count {
		log.Warnf("Deleted row count %d differs from evaluated inactive count %d", deleted, count)
	}

	line := fmt.Sprintf("[%s] Deleted customers: %d", now.Local().Format(auditTimestampLayout), count)
	if err := s.auditSink.Append(line); err != nil {
		// The deletion already completed and stands; the missing audit
		// line still has to surface to the caller.
		return count, fmt.Errorf("cleanup deleted %d customers but failed to write audit line: %w", count, err)
	}

	log.Infof("Cleanup run complete, %d customers deleted", count)
	return count, nil
}
