package repository

import (
	"context"

	"github.com/questkeeper-app/questkeeper/internal/domain"
)

// Task defines the interface for task persistence
type Task interface {
	// Create stores a new task and returns its ID
	Create(ctx context.Context, task domain.Task) (string, error)

	// Get returns the task owned by userID, or domain.ErrTaskNotFound
	Get(ctx context.Context, userID, taskID string) (*domain.Task, error)

	// ListActive returns the user's uncompleted tasks, oldest first
	ListActive(ctx context.Context, userID string) ([]domain.Task, error)

	// MarkCompleted flags the task as completed. Returns
	// domain.ErrTaskNotFound for unknown tasks and
	// domain.ErrTaskAlreadyCompleted when the flag is already set.
	MarkCompleted(ctx context.Context, userID, taskID string) error

	// Delete removes the task, completed or not.
	// Returns domain.ErrTaskNotFound for unknown tasks.
	Delete(ctx context.Context, userID, taskID string) error
}
