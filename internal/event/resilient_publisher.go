package event

import (
	"context"
	"sync"
	"time"

	"github.com/questkeeper-app/questkeeper/internal/logger"
)

// retryEntry tracks an event awaiting republish
type retryEntry struct {
	event    Event
	attempts int
	lastErr  error
}

// ResilientPublisher wraps a Bus with retry and dead-letter handling.
// Failed publishes are queued and retried with exponential backoff by a
// background worker; events that exhaust their retries (or overflow the
// queue) are appended to a dead-letter file for manual replay.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter
	shutdown   chan struct{}
	closeOnce  sync.Once
	wg         sync.WaitGroup
}

// NewResilientPublisher creates a publisher and starts its retry worker
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	p := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	p.wg.Add(1)
	go p.retryWorker()

	return p, nil
}

// PublishWithRetry publishes the event, queueing it for retry on failure.
// It never blocks the caller: if the retry queue is full the event goes
// straight to the dead-letter file.
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := p.bus.Publish(ctx, event)
	if err == nil {
		return
	}

	log := logger.FromContext(ctx)
	log.Warn(LogMsgPublishFailed,
		"event_type", event.Type,
		"error", err.Error())

	entry := retryEntry{event: event, attempts: 1, lastErr: err}

	select {
	case p.retryQueue <- entry:
	default:
		log.Error(LogMsgRetryQueueFull, "event_type", event.Type)
		p.writeDeadLetter(entry)
	}
}

// retryWorker processes the retry queue until shutdown, then drains any
// remaining entries with one final attempt each
func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()

	for {
		select {
		case entry := <-p.retryQueue:
			p.processRetry(entry)
		case <-p.shutdown:
			for {
				select {
				case entry := <-p.retryQueue:
					p.finalAttempt(entry)
				default:
					return
				}
			}
		}
	}
}

// processRetry republishes an entry with exponential backoff until it
// succeeds, exhausts maxRetries, or shutdown begins
func (p *ResilientPublisher) processRetry(entry retryEntry) {
	for entry.attempts <= p.maxRetries {
		delay := CalculateRetryDelay(p.retryDelay, entry.attempts)

		select {
		case <-time.After(delay):
		case <-p.shutdown:
			p.finalAttempt(entry)
			return
		}

		if err := p.bus.Publish(context.Background(), entry.event); err != nil {
			entry.lastErr = err
			entry.attempts++
			continue
		}
		return
	}

	logger.FromContext(context.Background()).Warn(LogMsgRetryExhausted,
		"event_type", entry.event.Type,
		"attempts", entry.attempts)
	p.writeDeadLetter(entry)
}

// finalAttempt makes one immediate publish attempt during shutdown,
// dead-lettering the event on failure
func (p *ResilientPublisher) finalAttempt(entry retryEntry) {
	if err := p.bus.Publish(context.Background(), entry.event); err != nil {
		entry.lastErr = err
		entry.attempts++
		p.writeDeadLetter(entry)
	}
}

// Shutdown stops the retry worker, draining queued events first. It returns
// ctx.Err() if the drain does not finish in time.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.closeOnce.Do(func() {
		close(p.shutdown)
	})

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	if p.deadLetter != nil {
		return p.deadLetter.Close()
	}
	return nil
}

func (p *ResilientPublisher) writeDeadLetter(entry retryEntry) {
	if p.deadLetter == nil {
		return
	}
	if err := p.deadLetter.Write(entry.event, entry.attempts, entry.lastErr); err != nil {
		logger.FromContext(context.Background()).Error(LogMsgDeadLetterFailed,
			"event_type", entry.event.Type,
			"error", err.Error())
	}
}
