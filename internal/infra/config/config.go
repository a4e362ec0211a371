package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the maintenance service.
type AppConfig struct {
	DatabaseURL string
	LogLevel    string
	Environment string

	// Cron specs, one per maintenance job.
	CronSpecCleanup   string
	CronSpecReminders string
	CronSpecReport    string
	CronSpecHeartbeat string

	// Audit log file paths.
	CleanupLogFile   string
	ReminderLogFile  string
	ReportLogFile    string
	HeartbeatLogFile string

	// Optional Telegram failure alerting. Both values must be set for
	// alerts to be enabled.
	TelegramToken   string
	AdminTelegramID int64
}

// AlertingEnabled reports whether the optional Telegram failure alerts
// are fully configured.
func (c *AppConfig) AlertingEnabled() bool {
	return c.TelegramToken != "" && c.AdminTelegramID != 0
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	cfg.CronSpecCleanup = os.Getenv("CRON_SPEC_CLEANUP")
	if cfg.CronSpecCleanup == "" {
		cfg.CronSpecCleanup = "0 2 * * 0" // Default: 02:00 every Sunday
	}
	cfg.CronSpecReminders = os.Getenv("CRON_SPEC_ORDER_REMINDERS")
	if cfg.CronSpecReminders == "" {
		cfg.CronSpecReminders = "0 8 * * *" // Default: 08:00 daily
	}
	cfg.CronSpecReport = os.Getenv("CRON_SPEC_CRM_REPORT")
	if cfg.CronSpecReport == "" {
		cfg.CronSpecReport = "0 6 * * 1" // Default: 06:00 every Monday
	}
	cfg.CronSpecHeartbeat = os.Getenv("CRON_SPEC_HEARTBEAT")
	if cfg.CronSpecHeartbeat == "" {
		cfg.CronSpecHeartbeat = "*/5 * * * *" // Default: every 5 minutes
	}

	cfg.CleanupLogFile = os.Getenv("CLEANUP_LOG_FILE")
	if cfg.CleanupLogFile == "" {
		cfg.CleanupLogFile = "/tmp/customer_cleanup_log.txt"
	}
	cfg.ReminderLogFile = os.Getenv("ORDER_REMINDER_LOG_FILE")
	if cfg.ReminderLogFile == "" {
		cfg.ReminderLogFile = "/tmp/order_reminders_log.txt"
	}
	cfg.ReportLogFile = os.Getenv("CRM_REPORT_LOG_FILE")
	if cfg.ReportLogFile == "" {
		cfg.ReportLogFile = "/tmp/crm_report_log.txt"
	}
	cfg.HeartbeatLogFile = os.Getenv("HEARTBEAT_LOG_FILE")
	if cfg.HeartbeatLogFile == "" {
		cfg.HeartbeatLogFile = "/tmp/crm_heartbeat_log.txt"
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	adminIDStr := os.Getenv("ADMIN_TELEGRAM_ID")
	if adminIDStr != "" {
		var err error
		cfg.AdminTelegramID, err = strconv.ParseInt(adminIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID: %w", err)
		}
	}
	// Half-configured alerting is a misconfiguration, not a silent no-op.
	if (cfg.TelegramToken == "") != (adminIDStr == "") {
		return nil, fmt.Errorf("TELEGRAM_TOKEN and ADMIN_TELEGRAM_ID must be set together")
	}

	return cfg, nil
}
