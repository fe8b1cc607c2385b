package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/questkeeper-app/questkeeper/internal/character"
	"github.com/questkeeper-app/questkeeper/internal/concurrency"
	"github.com/questkeeper-app/questkeeper/internal/domain"
	"github.com/questkeeper-app/questkeeper/internal/event"
	"github.com/questkeeper-app/questkeeper/internal/gateway"
	"github.com/questkeeper-app/questkeeper/internal/logger"
	"github.com/questkeeper-app/questkeeper/internal/progression"
)

// CreateInput carries the user-supplied fields for a new task.
// Difficulty and type are stored as given: unknown difficulties earn
// nothing, unknown types fall back to the general allocation.
type CreateInput struct {
	Name       string
	Difficulty domain.Difficulty
	Type       domain.QuestType
}

// Service defines the task business logic
type Service interface {
	// Create stores a new active task for the user
	Create(ctx context.Context, userID string, input CreateInput) (*domain.Task, error)

	// List returns the user's active tasks in creation order
	List(ctx context.Context, userID string) ([]domain.Task, error)

	// Complete runs the completion flow for one task: apply rewards to the
	// character, persist the new snapshot, retire the task, announce what
	// happened. Completions are serialized per user.
	Complete(ctx context.Context, userID, taskID string) (*domain.CompletionResult, error)

	// Delete removes a task without rewards
	Delete(ctx context.Context, userID, taskID string) error

	// Lifecycle
	Shutdown(ctx context.Context) error
}

type service struct {
	store        gateway.Store
	characterSvc character.Service
	engine       *progression.Engine
	locks        *concurrency.LockManager
	publisher    *event.ResilientPublisher
}

// NewService creates a new task service
func NewService(store gateway.Store, characterSvc character.Service, locks *concurrency.LockManager, publisher *event.ResilientPublisher) Service {
	return &service{
		store:        store,
		characterSvc: characterSvc,
		engine:       progression.NewEngine(),
		locks:        locks,
		publisher:    publisher,
	}
}

func (s *service) Create(ctx context.Context, userID string, input CreateInput) (*domain.Task, error) {
	log := logger.FromContext(ctx)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgTaskNameRequired)
	}

	if !domain.KnownDifficulty(input.Difficulty) {
		log.Debug(LogMsgUnknownDifficulty, "user_id", userID, "difficulty", input.Difficulty)
	}
	if !domain.KnownQuestType(input.Type) {
		log.Debug(LogMsgUnknownQuestType, "user_id", userID, "type", input.Type)
	}

	id, err := s.store.CreateTask(ctx, domain.Task{
		UserID:     userID,
		Name:       name,
		Difficulty: input.Difficulty,
		Type:       input.Type,
	})
	if err != nil {
		return nil, err
	}

	// Re-read so the caller sees the stored record, ID and timestamp included
	created, err := s.store.GetTask(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgTaskCreated, "user_id", userID, "task_id", id, "difficulty", input.Difficulty, "type", input.Type)
	return created, nil
}

func (s *service) List(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.store.ActiveTasks(ctx, userID)
}

func (s *service) Complete(ctx context.Context, userID, taskID string) (*domain.CompletionResult, error) {
	log := logger.FromContext(ctx)

	// One completion at a time per user: the character read-modify-write
	// must not interleave with another completion's
	lock := s.locks.GetLock(userID)
	lock.Lock()
	defer lock.Unlock()

	task, err := s.store.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if task.Completed {
		return nil, domain.ErrTaskAlreadyCompleted
	}

	c, err := s.characterSvc.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := s.engine.ApplyTaskCompletion(*c, task.Difficulty, task.Type)

	// Full snapshot first, then retire the task, matching the order the
	// rest of the system observes state in
	if err := s.store.SaveCharacter(ctx, userID, result.Character); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToSaveRewards, err)
	}

	if err := s.store.MarkTaskCompleted(ctx, userID, taskID); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToClaimTask, err)
	}

	s.publishCompletion(ctx, *task, result)

	log.Info(LogMsgTaskCompleted,
		"user_id", userID,
		"task_id", taskID,
		"difficulty", task.Difficulty,
		"type", task.Type,
		"gold", result.Reward.Gold,
		"exp", result.Reward.Experience,
		"leveled_up", result.LeveledUp,
		"dropped_item", result.DroppedItem)

	return &result, nil
}

func (s *service) Delete(ctx context.Context, userID, taskID string) error {
	log := logger.FromContext(ctx)

	// Shares the completion lock so a delete cannot slip between a
	// completion's task read and its claim
	lock := s.locks.GetLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.store.DeleteTask(ctx, userID, taskID); err != nil {
		return err
	}

	log.Info(LogMsgTaskDeleted, "user_id", userID, "task_id", taskID)
	return nil
}

func (s *service) publishCompletion(ctx context.Context, task domain.Task, result domain.CompletionResult) {
	if s.publisher == nil {
		return
	}

	s.publisher.PublishWithRetry(ctx, event.NewTaskCompletedEvent(task, result))

	if result.LeveledUp {
		s.publisher.PublishWithRetry(ctx, event.NewLeveledUpEvent(task.UserID, result.NewLevel-1, result.NewLevel))
	}
	if result.DroppedItem != "" {
		s.publisher.PublishWithRetry(ctx, event.NewItemDroppedEvent(task.UserID, result.DroppedItem))
	}
}

// Shutdown gracefully shuts down the task service. The shared event
// publisher is not closed here; bootstrap shuts it down last so pending
// retries still flush.
func (s *service) Shutdown(ctx context.Context) error {
	logger.FromContext(ctx).Info(LogMsgServiceShuttingDown)
	return nil
}
