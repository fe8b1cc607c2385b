package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/questkeeper-app/questkeeper/internal/logger"
	"github.com/questkeeper-app/questkeeper/internal/worker"
)

// LogMsgScheduleSkipped is logged when the worker queue cannot take a tick
const LogMsgScheduleSkipped = "Scheduled job skipped, worker queue full"

// Scheduler enqueues jobs into a worker pool at fixed intervals
type Scheduler struct {
	workerPool *worker.Pool
	quit       chan struct{}
	wg         sync.WaitGroup
}

// New creates a new scheduler over the given pool
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval. The first run happens
// one interval after the call, not immediately. A full worker queue skips
// the tick rather than stalling the ticker.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := s.workerPool.Enqueue(job); err != nil {
					logger.FromContext(context.Background()).Warn(LogMsgScheduleSkipped, "error", err)
				}
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs. The worker pool keeps running; stop it
// separately once nothing schedules into it.
func (s *Scheduler) Stop() {
	close(s.quit)
	s.wg.Wait()
}
