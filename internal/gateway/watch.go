package gateway

import (
	"context"
	"sync"

	"github.com/questkeeper-app/questkeeper/internal/domain"
	"github.com/questkeeper-app/questkeeper/internal/event"
	"github.com/questkeeper-app/questkeeper/internal/logger"
)

// watcher holds one subscription's pending snapshot. Producers coalesce
// into the single-slot pending channel (latest wins); a per-subscription
// goroutine forwards to the consumer channel so bus handlers never block
// on a slow reader.
type watcher[T any] struct {
	userID  string
	pending chan T
	done    chan struct{}
}

func newWatcher[T any](userID string) *watcher[T] {
	return &watcher[T]{
		userID:  userID,
		pending: make(chan T, WatchBufferSize),
		done:    make(chan struct{}),
	}
}

// offer replaces any stale pending snapshot with the newest one
func (w *watcher[T]) offer(snapshot T) {
	select {
	case w.pending <- snapshot:
		return
	default:
	}

	select {
	case <-w.pending:
	default:
	}
	select {
	case w.pending <- snapshot:
	default:
	}
}

// forward pumps pending snapshots to out until done or ctx cancellation,
// then runs cleanup and closes out
func (w *watcher[T]) forward(ctx context.Context, out chan<- T, cleanup func()) {
	defer func() {
		cleanup()
		close(out)
	}()

	for {
		select {
		case snapshot := <-w.pending:
			select {
			case out <- snapshot:
			case <-w.done:
				return
			case <-ctx.Done():
				return
			}
		case <-w.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// cancelFunc builds the idempotent detach func handed back to the caller
func (w *watcher[T]) cancelFunc() func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			close(w.done)
		})
	}
}

func (s *store) WatchCharacter(ctx context.Context, userID string) (<-chan domain.Character, func()) {
	w := newWatcher[domain.Character](userID)

	s.mu.Lock()
	id := s.nextWatcherID
	s.nextWatcherID++
	s.charWatchers[id] = w
	s.mu.Unlock()

	logger.FromContext(ctx).Debug(LogMsgWatcherAttached, "kind", "character", "user_id", userID)

	// Seed with the current snapshot so new watchers render immediately
	if c, err := s.LoadCharacter(ctx, userID); err == nil {
		w.offer(*c)
	}

	out := make(chan domain.Character, WatchBufferSize)
	go w.forward(ctx, out, func() {
		s.mu.Lock()
		delete(s.charWatchers, id)
		s.mu.Unlock()
		logger.FromContext(context.Background()).Debug(LogMsgWatcherDetached, "kind", "character", "user_id", userID)
	})

	return out, w.cancelFunc()
}

func (s *store) WatchTasks(ctx context.Context, userID string) (<-chan []domain.Task, func()) {
	w := newWatcher[[]domain.Task](userID)

	s.mu.Lock()
	id := s.nextWatcherID
	s.nextWatcherID++
	s.taskWatchers[id] = w
	s.mu.Unlock()

	logger.FromContext(ctx).Debug(LogMsgWatcherAttached, "kind", "tasks", "user_id", userID)

	if tasks, err := s.ActiveTasks(ctx, userID); err == nil {
		w.offer(tasks)
	}

	out := make(chan []domain.Task, WatchBufferSize)
	go w.forward(ctx, out, func() {
		s.mu.Lock()
		delete(s.taskWatchers, id)
		s.mu.Unlock()
		logger.FromContext(context.Background()).Debug(LogMsgWatcherDetached, "kind", "tasks", "user_id", userID)
	})

	return out, w.cancelFunc()
}

// handleCharacterUpdated fans a saved character snapshot out to its watchers
func (s *store) handleCharacterUpdated(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.CharacterUpdatedPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgBadCharacterPayload, "error", err)
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range s.charWatchers {
		if w.userID == payload.Character.UserID {
			w.offer(payload.Character.Clone())
		}
	}
	return nil
}

// handleTaskChanged re-reads the active list once per task event and fans
// it out. Skips the read when nobody is watching the user.
func (s *store) handleTaskChanged(ctx context.Context, evt event.Event) error {
	userID := evt.UserID()
	if userID == "" {
		return nil
	}

	s.mu.RLock()
	watching := false
	for _, w := range s.taskWatchers {
		if w.userID == userID {
			watching = true
			break
		}
	}
	s.mu.RUnlock()
	if !watching {
		return nil
	}

	tasks, err := s.tasks.ListActive(ctx, userID)
	if err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range s.taskWatchers {
		if w.userID == userID {
			w.offer(append([]domain.Task(nil), tasks...))
		}
	}
	return nil
}
