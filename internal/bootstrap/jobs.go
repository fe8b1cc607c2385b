package bootstrap

import (
	"log/slog"

	"github.com/questkeeper-app/questkeeper/internal/config"
	"github.com/questkeeper-app/questkeeper/internal/eventlog"
	"github.com/questkeeper-app/questkeeper/internal/scheduler"
	"github.com/questkeeper-app/questkeeper/internal/worker"
)

// InitializeBackgroundJobs starts the worker pool and schedules recurring
// maintenance: currently the daily journal cleanup. The caller stops the
// scheduler first, then the pool, during shutdown.
func InitializeBackgroundJobs(cfg *config.Config, journal eventlog.Service) (*scheduler.Scheduler, *worker.Pool) {
	pool := worker.NewPool(WorkerPoolSize, WorkerQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(JournalCleanupInterval, eventlog.NewCleanupJob(journal, cfg.EventLogRetentionDays))

	slog.Info(LogMsgBackgroundJobsStarted,
		"workers", WorkerPoolSize,
		"cleanup_interval", JournalCleanupInterval)

	return sched, pool
}
