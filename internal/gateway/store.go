package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/questkeeper-app/questkeeper/internal/domain"
	"github.com/questkeeper-app/questkeeper/internal/event"
	"github.com/questkeeper-app/questkeeper/internal/repository"
)

// Store is the synchronized per-user document store the services consume.
// Reads go through a write-through LRU cache; every write lands in the
// repository first, then fans out on the event bus, so watchers and SSE
// streams observe state only after it is durable.
type Store interface {
	// LoadCharacter returns the user's character, or domain.ErrCharacterNotFound
	LoadCharacter(ctx context.Context, userID string) (*domain.Character, error)

	// SaveCharacter upserts the full character record and announces the new
	// snapshot on the bus
	SaveCharacter(ctx context.Context, userID string, character domain.Character) error

	// CreateTask stores a new task for task.UserID and returns its ID
	CreateTask(ctx context.Context, task domain.Task) (string, error)

	// GetTask returns one of the user's tasks, or domain.ErrTaskNotFound
	GetTask(ctx context.Context, userID, taskID string) (*domain.Task, error)

	// ActiveTasks returns the user's uncompleted tasks, oldest first
	ActiveTasks(ctx context.Context, userID string) ([]domain.Task, error)

	// MarkTaskCompleted flags a task completed exactly once. The caller
	// publishes the completion event; it owns the reward context.
	MarkTaskCompleted(ctx context.Context, userID, taskID string) error

	// DeleteTask removes a task in any state
	DeleteTask(ctx context.Context, userID, taskID string) error

	// WatchCharacter streams character snapshots: the current one on attach,
	// then one per change. The cancel func (or ctx) detaches and closes the
	// channel.
	WatchCharacter(ctx context.Context, userID string) (<-chan domain.Character, func())

	// WatchTasks streams active-task snapshots the same way
	WatchTasks(ctx context.Context, userID string) (<-chan []domain.Task, func())
}

type store struct {
	characters repository.Character
	tasks      repository.Task
	bus        event.Bus
	publisher  *event.ResilientPublisher
	cache      *characterCache

	mu            sync.RWMutex
	charWatchers  map[int]*watcher[domain.Character]
	taskWatchers  map[int]*watcher[[]domain.Task]
	nextWatcherID int
}

// NewStore creates a Store over the given repositories. It subscribes to the
// bus for watch fan-out; construct it before any events flow.
func NewStore(characters repository.Character, tasks repository.Task, bus event.Bus, publisher *event.ResilientPublisher) Store {
	s := &store{
		characters:   characters,
		tasks:        tasks,
		bus:          bus,
		publisher:    publisher,
		cache:        newCharacterCache(DefaultCacheSize, DefaultCacheTTL),
		charWatchers: make(map[int]*watcher[domain.Character]),
		taskWatchers: make(map[int]*watcher[[]domain.Task]),
	}

	bus.Subscribe(event.CharacterUpdated, s.handleCharacterUpdated)
	bus.Subscribe(event.TaskCreated, s.handleTaskChanged)
	bus.Subscribe(event.TaskCompleted, s.handleTaskChanged)
	bus.Subscribe(event.TaskDeleted, s.handleTaskChanged)

	return s
}

func (s *store) LoadCharacter(ctx context.Context, userID string) (*domain.Character, error) {
	if c, ok := s.cache.Get(userID); ok {
		return c, nil
	}

	c, err := s.characters.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(userID, *c)
	return c, nil
}

func (s *store) SaveCharacter(ctx context.Context, userID string, character domain.Character) error {
	character.UserID = userID

	if err := s.characters.Upsert(ctx, userID, character); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveCharacter, err)
	}

	s.cache.Set(userID, character)
	s.publisher.PublishWithRetry(ctx, event.NewCharacterUpdatedEvent(character))
	return nil
}

func (s *store) CreateTask(ctx context.Context, task domain.Task) (string, error) {
	id, err := s.tasks.Create(ctx, task)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgFailedToCreateTask, err)
	}

	task.ID = id
	s.publisher.PublishWithRetry(ctx, event.NewTaskCreatedEvent(task))
	return id, nil
}

func (s *store) GetTask(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	return s.tasks.Get(ctx, userID, taskID)
}

func (s *store) ActiveTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.tasks.ListActive(ctx, userID)
}

func (s *store) MarkTaskCompleted(ctx context.Context, userID, taskID string) error {
	return s.tasks.MarkCompleted(ctx, userID, taskID)
}

func (s *store) DeleteTask(ctx context.Context, userID, taskID string) error {
	if err := s.tasks.Delete(ctx, userID, taskID); err != nil {
		return err
	}

	s.publisher.PublishWithRetry(ctx, event.NewTaskDeletedEvent(userID, taskID))
	return nil
}
