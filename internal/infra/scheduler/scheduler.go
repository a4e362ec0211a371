package scheduler

import (
	"context"
	"errors"
	"time"

	"crm_maintenance_service/internal/app"
	idb "crm_maintenance_service/internal/infra/database" // For ErrRunLockHeld

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Per-job timeouts. Cleanup gets the longest budget since it may delete a
// large set in one statement.
const (
	cleanupJobTimeout  = 5 * time.Minute
	reminderJobTimeout = 2 * time.Minute
	reportJobTimeout   = 1 * time.Minute
)

type MaintenanceScheduler struct {
	cronEngine        *cron.Cron
	cleanupService    app.CleanupService
	reminderService   app.ReminderService
	reportService     app.ReportService
	heartbeatService  app.HeartbeatService
	notifier          app.FailureNotifier // may be nil when alerting is not configured
	logger            *logrus.Logger
	cronSpecCleanup   string
	cronSpecReminders string
	cronSpecReport    string
	cronSpecHeartbeat string
}

func NewMaintenanceScheduler(
	cleanupService app.CleanupService,
	reminderService app.ReminderService,
	reportService app.ReportService,
	heartbeatService app.HeartbeatService,
	notifier app.FailureNotifier,
	logger *logrus.Logger,
	cronSpecCleanup string, // e.g., "0 2 * * 0" (02:00 on Sundays)
	cronSpecReminders string, // e.g., "0 8 * * *" (08:00 daily)
	cronSpecReport string, // e.g., "0 6 * * 1" (06:00 on Mondays)
	cronSpecHeartbeat string, // e.g., "*/5 * * * *" (every 5 minutes)
) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		cronEngine:        cron.New(cron.WithLocation(time.Local)), // Use server's local time for cron
		cleanupService:    cleanupService,
		reminderService:   reminderService,
		reportService:     reportService,
		heartbeatService:  heartbeatService,
		notifier:          notifier,
		logger:            logger,
		cronSpecCleanup:   cronSpecCleanup,
		cronSpecReminders: cronSpecReminders,
		cronSpecReport:    cronSpecReport,
		cronSpecHeartbeat: cronSpecHeartbeat,
	}
}

func (s *MaintenanceScheduler) Start() {
	s.logger.Info("Starting maintenance scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpecCleanup, func() {
		s.logger.Info("Cron job triggered for inactive customer cleanup.")
		ctx, cancel := context.WithTimeout(context.Background(), cleanupJobTimeout)
		defer cancel()

		count, err := s.cleanupService.Run(ctx, time.Now())
		switch {
		case errors.Is(err, idb.ErrRunLockHeld):
			s.logger.Warn("Cleanup run skipped: another invocation holds the run lock.")
		case err != nil:
			s.logger.Errorf("Error during customer cleanup: %v", err)
			s.notifyFailure("customer_cleanup", err)
		default:
			s.logger.Infof("Customer cleanup finished, %d customers deleted.", count)
		}
	})
	if err != nil {
		s.logger.Fatalf("Could not add customer cleanup cron job: %v", err)
	}

	_, err = s.cronEngine.AddFunc(s.cronSpecReminders, func() {
		s.logger.Info("Cron job triggered for order reminders.")
		ctx, cancel := context.WithTimeout(context.Background(), reminderJobTimeout)
		defer cancel()
		if _, err := s.reminderService.Run(ctx, time.Now()); err != nil {
			s.logger.Errorf("Error during order reminder processing: %v", err)
		}
	})
	if err != nil {
		s.logger.Fatalf("Could not add order reminder cron job: %v", err)
	}

	_, err = s.cronEngine.AddFunc(s.cronSpecReport, func() {
		s.logger.Info("Cron job triggered for CRM report.")
		ctx, cancel := context.WithTimeout(context.Background(), reportJobTimeout)
		defer cancel()
		if err := s.reportService.Run(ctx, time.Now()); err != nil {
			s.logger.Errorf("Error during CRM report generation: %v", err)
		}
	})
	if err != nil {
		s.logger.Fatalf("Could not add CRM report cron job: %v", err)
	}

	_, err = s.cronEngine.AddFunc(s.cronSpecHeartbeat, func() {
		if err := s.heartbeatService.Run(time.Now()); err != nil {
			s.logger.Errorf("Error writing heartbeat: %v", err)
		}
	})
	if err != nil {
		s.logger.Fatalf("Could not add heartbeat cron job: %v", err)
	}

	s.cronEngine.Start()
	s.logger.Info("Maintenance scheduler started with jobs.")
}

func (s *MaintenanceScheduler) notifyFailure(jobName string, jobErr error) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyFailure(jobName, jobErr); err != nil {
		s.logger.Errorf("Failed to deliver failure alert for %s: %v", jobName, err)
	}
}

func (s *MaintenanceScheduler) Stop() {
	s.logger.Info("Stopping maintenance scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	s.logger.Info("Maintenance scheduler gracefully stopped.")
}
