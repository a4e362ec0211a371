package app

import (
	"fmt"
	"time"

	"crm_maintenance_service/internal/infra/auditlog"
)

// heartbeatTimestampLayout is deliberately different from the other audit
// formats; the heartbeat file has always used day-first timestamps.
const heartbeatTimestampLayout = "02/01/2006-15:04:05"

// HeartbeatService appends a liveness line to the heartbeat log. It never
// touches the database.
type HeartbeatService interface {
	Run(now time.Time) error
}

type HeartbeatServiceImpl struct {
	auditSink auditlog.Sink
}

func NewHeartbeatServiceImpl(sink auditlog.Sink) *HeartbeatServiceImpl {
	return &HeartbeatServiceImpl{auditSink: sink}
}

func (s *HeartbeatServiceImpl) Run(now time.Time) error {
	line := fmt.Sprintf("%s CRM is alive", now.Local().Format(heartbeatTimestampLayout))
	if err := s.auditSink.Append(line); err != nil {
		return fmt.Errorf("failed to write heartbeat line: %w", err)
	}
	return nil
}
