package gateway

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/questkeeper-app/questkeeper/internal/domain"
	"github.com/questkeeper-app/questkeeper/internal/event"
	"github.com/questkeeper-app/questkeeper/internal/repository"
)

// NewMemoryStore creates a Store backed entirely by in-process maps, with
// the same event and watch semantics as the Postgres-backed store. Used in
// dev mode (DEV_MODE=true) and in tests.
func NewMemoryStore(bus event.Bus, publisher *event.ResilientPublisher) Store {
	return NewStore(NewMemoryCharacterRepository(), NewMemoryTaskRepository(), bus, publisher)
}

// MemoryCharacterRepository is a map-backed repository.Character
type MemoryCharacterRepository struct {
	mu         sync.RWMutex
	characters map[string]domain.Character
}

// NewMemoryCharacterRepository creates an empty in-memory character repository
func NewMemoryCharacterRepository() *MemoryCharacterRepository {
	return &MemoryCharacterRepository{
		characters: make(map[string]domain.Character),
	}
}

func (r *MemoryCharacterRepository) Get(ctx context.Context, userID string) (*domain.Character, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.characters[userID]
	if !ok {
		return nil, domain.ErrCharacterNotFound
	}

	out := c.Clone()
	return &out, nil
}

func (r *MemoryCharacterRepository) Upsert(ctx context.Context, userID string, character domain.Character) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := character.Clone()
	stored.UserID = userID
	stored.UpdatedAt = time.Now()
	if existing, ok := r.characters[userID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = stored.UpdatedAt
	}

	r.characters[userID] = stored
	return nil
}

// MemoryTaskRepository is a map-backed repository.Task
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]domain.Task
}

// NewMemoryTaskRepository creates an empty in-memory task repository
func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{
		tasks: make(map[string]domain.Task),
	}
}

func (r *MemoryTaskRepository) Create(ctx context.Context, task domain.Task) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}
	task.Completed = false

	r.tasks[task.ID] = task
	return task.ID, nil
}

func (r *MemoryTaskRepository) Get(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}

	return &task, nil
}

func (r *MemoryTaskRepository) ListActive(ctx context.Context, userID string) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := []domain.Task{}
	for _, task := range r.tasks {
		if task.UserID == userID && !task.Completed {
			tasks = append(tasks, task)
		}
	}

	// Oldest first; break creation-time ties by ID for a stable order
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID < tasks[j].ID
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})

	return tasks, nil
}

func (r *MemoryTaskRepository) MarkCompleted(ctx context.Context, userID, taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok || task.UserID != userID {
		return domain.ErrTaskNotFound
	}
	if task.Completed {
		return domain.ErrTaskAlreadyCompleted
	}

	task.Completed = true
	r.tasks[taskID] = task
	return nil
}

func (r *MemoryTaskRepository) Delete(ctx context.Context, userID, taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok || task.UserID != userID {
		return domain.ErrTaskNotFound
	}

	delete(r.tasks, taskID)
	return nil
}

// Interface conformance checks
var (
	_ repository.Character = (*MemoryCharacterRepository)(nil)
	_ repository.Task      = (*MemoryTaskRepository)(nil)
)
