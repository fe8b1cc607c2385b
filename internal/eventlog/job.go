package eventlog

import (
	"context"
	"time"

	"github.com/questkeeper-app/questkeeper/internal/logger"
)

// CleanupJob trims the journal to its retention window. It implements
// worker.Job so the scheduler can run it unattended.
type CleanupJob struct {
	service       Service
	retentionDays int
}

// NewCleanupJob creates a new cleanup job
func NewCleanupJob(service Service, retentionDays int) *CleanupJob {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	return &CleanupJob{
		service:       service,
		retentionDays: retentionDays,
	}
}

// Process executes the cleanup
func (j *CleanupJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCleanupStarting, "retention_days", j.retentionDays)

	start := time.Now()
	count, err := j.service.Cleanup(ctx, j.retentionDays)
	duration := time.Since(start)

	if err != nil {
		log.Error(LogMsgCleanupFailed, "error", err, "duration", duration)
		return err
	}

	log.Info(LogMsgCleanupCompleted, "deleted_count", count, "duration", duration)
	return nil
}
