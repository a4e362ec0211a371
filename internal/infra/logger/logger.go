// internal/infra/logger/logger.go
package logger

import (
	"os"
	"strings"

	"crm_maintenance_service/internal/infra/config"

	"github.com/sirupsen/logrus"
)

// Log is the global logger instance shared by the maintenance jobs.
var Log = logrus.New()

// Init configures the global logger from application configuration:
// level from LOG_LEVEL, JSON output in production and staging (for log
// shippers), colored text elsewhere. The audit sinks are separate from
// this logger on purpose; their line formats are an external contract.
func Init(cfg *config.AppConfig) {
	Log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		Log.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", cfg.LogLevel, err)
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if cfg.Environment == "production" || cfg.Environment == "staging" {
		Log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00", // ISO8601
		})
	} else { // Development or other environments
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			ForceColors:     true,
		})
	}

	Log.WithFields(logrus.Fields{
		"level":       Log.GetLevel().String(),
		"environment": cfg.Environment,
	}).Debug("Maintenance service logging configured")
}

// Get returns the configured global logger.
func Get() *logrus.Logger {
	return Log
}

// ForJob returns an entry carrying the job field every maintenance job
// logs under, so operators can filter one job's output.
func ForJob(job string) *logrus.Entry {
	return Log.WithField("job", job)
}
