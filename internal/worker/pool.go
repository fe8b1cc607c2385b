package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/questkeeper-app/questkeeper/internal/logger"
)

// Job represents a unit of background work
type Job interface {
	Process(ctx context.Context) error
}

// ErrQueueFull is returned by Enqueue when the pool cannot accept more work
var ErrQueueFull = errors.New("worker queue full")

// Pool runs jobs on a fixed set of workers. Enqueue never blocks; each job
// runs under its own deadline so a stuck job cannot wedge a worker forever.
type Pool struct {
	workers    int
	jobTimeout time.Duration
	jobQueue   chan Job
	wg         sync.WaitGroup
	quit       chan struct{}
}

// NewPool creates a pool with the given worker count and queue capacity
func NewPool(workers, queueSize int) *Pool {
	return &Pool{
		workers:    workers,
		jobTimeout: DefaultJobTimeout,
		jobQueue:   make(chan Job, queueSize),
		quit:       make(chan struct{}),
	}
}

// Start launches the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.run(job)
		case <-p.quit:
			// Finish whatever is already queued before exiting
			for {
				select {
				case job := <-p.jobQueue:
					p.run(job)
				default:
					return
				}
			}
		}
	}
}

func (p *Pool) run(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), p.jobTimeout)
	defer cancel()

	if err := job.Process(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "error", err)
	}
}

// Enqueue adds a job without blocking. Returns ErrQueueFull when the queue
// has no room.
func (p *Pool) Enqueue(job Job) error {
	select {
	case p.jobQueue <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop signals the workers and waits for them to drain the queue
func (p *Pool) Stop() {
	close(p.quit)
	p.wg.Wait()
}
