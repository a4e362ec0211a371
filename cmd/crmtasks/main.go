package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crm_maintenance_service/internal/app"
	"crm_maintenance_service/internal/infra/auditlog"
	"crm_maintenance_service/internal/infra/config"
	idb "crm_maintenance_service/internal/infra/database"
	"crm_maintenance_service/internal/infra/logger"
	"crm_maintenance_service/internal/infra/scheduler"
	"crm_maintenance_service/internal/infra/telegram"
)

const runLockTaskName = "crm_customer_cleanup"

func main() {
	once := flag.String("once", "", "run a single job (cleanup|reminders|report|heartbeat) and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Could not load application configuration: %v", err)
	}
	logger.Init(cfg)
	log := logger.Get()

	log.Infof("Configuration loaded. LogLevel: %s, Environment: %s", cfg.LogLevel, cfg.Environment)

	// Initialize Database Connection
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully.")

	// Initialize Repositories
	customerRepo := idb.NewPostgresCustomerRepository(db)
	orderRepo := idb.NewPostgresOrderRepository(db)

	// Initialize Audit Sinks
	cleanupSink := auditlog.NewFileSink(cfg.CleanupLogFile)
	reminderSink := auditlog.NewFileSink(cfg.ReminderLogFile)
	reportSink := auditlog.NewFileSink(cfg.ReportLogFile)
	heartbeatSink := auditlog.NewFileSink(cfg.HeartbeatLogFile)

	// Initialize Services
	runLock := idb.NewPostgresRunLock(db, runLockTaskName)
	cleanupService := app.NewCleanupServiceImpl(customerRepo, runLock, cleanupSink, log)
	reminderService := app.NewReminderServiceImpl(orderRepo, reminderSink, log)
	reportService := app.NewReportServiceImpl(customerRepo, orderRepo, reportSink, log)
	heartbeatService := app.NewHeartbeatServiceImpl(heartbeatSink)

	// Optional Telegram failure alerting
	var notifier app.FailureNotifier
	if cfg.AlertingEnabled() {
		tn, err := telegram.NewTelebotNotifier(cfg.TelegramToken, cfg.AdminTelegramID)
		if err != nil {
			log.Fatalf("Could not initialize Telegram notifier: %v", err)
		}
		notifier = tn
		log.Info("Telegram failure alerting enabled.")
	}

	if *once != "" {
		runOnce(*once, cleanupService, reminderService, reportService, heartbeatService)
		return
	}

	maintScheduler := scheduler.NewMaintenanceScheduler(
		cleanupService,
		reminderService,
		reportService,
		heartbeatService,
		notifier,
		log,
		cfg.CronSpecCleanup,
		cfg.CronSpecReminders,
		cfg.CronSpecReport,
		cfg.CronSpecHeartbeat,
	)
	maintScheduler.Start()
	log.Info("Application setup complete. Scheduler is running.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	log.Info("Shutting down application...")
	maintScheduler.Stop()
	log.Info("Application shut down gracefully.")
}

// runOnce executes a single job immediately, for callers that bring their
// own scheduler (e.g. system cron). A failed run exits non-zero so the
// caller observes the failure; a fabricated success is never reported.
func runOnce(
	job string,
	cleanupService app.CleanupService,
	reminderService app.ReminderService,
	reportService app.ReportService,
	heartbeatService app.HeartbeatService,
) {
	log := logger.ForJob(job)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	now := time.Now()

	var err error
	switch job {
	case "cleanup":
		var count int64
		count, err = cleanupService.Run(ctx, now)
		if err == nil {
			log.Infof("Customer cleanup finished, %d customers deleted.", count)
		}
	case "reminders":
		_, err = reminderService.Run(ctx, now)
	case "report":
		err = reportService.Run(ctx, now)
	case "heartbeat":
		err = heartbeatService.Run(now)
	default:
		log.Fatalf("Unknown job %q, expected cleanup|reminders|report|heartbeat", job)
	}
	if err != nil {
		log.Errorf("Job failed: %v", err)
		os.Exit(1)
	}
}
