package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/questkeeper-app/questkeeper/internal/domain"
)

// TaskRepository implements the task repository for PostgreSQL
type TaskRepository struct {
	db *pgxpool.Pool
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create stores a new task and returns its ID
func (r *TaskRepository) Create(ctx context.Context, task domain.Task) (string, error) {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}

	query := `
		INSERT INTO tasks (task_id, user_id, name, difficulty, quest_type, completed, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, NOW())
	`

	_, err := r.db.Exec(ctx, query,
		task.ID,
		task.UserID,
		task.Name,
		string(task.Difficulty),
		string(task.Type),
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgFailedToCreateTask, err)
	}

	return task.ID, nil
}

// Get retrieves a task owned by the given user
func (r *TaskRepository) Get(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	query := `
		SELECT task_id, user_id, name, difficulty, quest_type, completed, created_at
		FROM tasks
		WHERE user_id = $1 AND task_id = $2
	`

	task, err := scanTask(r.db.QueryRow(ctx, query, userID, taskID))
	if err == pgx.ErrNoRows {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetTask, err)
	}

	return task, nil
}

// ListActive returns the user's uncompleted tasks, oldest first
func (r *TaskRepository) ListActive(ctx context.Context, userID string) ([]domain.Task, error) {
	query := `
		SELECT task_id, user_id, name, difficulty, quest_type, completed, created_at
		FROM tasks
		WHERE user_id = $1 AND NOT completed
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTasks, err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanTask, err)
		}
		tasks = append(tasks, *task)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tasks, nil
}

// MarkCompleted flags a task as completed exactly once
func (r *TaskRepository) MarkCompleted(ctx context.Context, userID, taskID string) error {
	query := `
		UPDATE tasks
		SET completed = TRUE
		WHERE user_id = $1 AND task_id = $2 AND NOT completed
	`

	result, err := r.db.Exec(ctx, query, userID, taskID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarkTaskCompleted, err)
	}
	if result.RowsAffected() == 1 {
		return nil
	}

	// Nothing flipped: either the task is unknown or already completed
	var completed bool
	err = r.db.QueryRow(ctx,
		"SELECT completed FROM tasks WHERE user_id = $1 AND task_id = $2",
		userID, taskID).Scan(&completed)
	if err == pgx.ErrNoRows {
		return domain.ErrTaskNotFound
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToGetTask, err)
	}
	if completed {
		return domain.ErrTaskAlreadyCompleted
	}

	return domain.ErrTaskNotFound
}

// Delete removes a task, completed or not
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID string) error {
	query := `DELETE FROM tasks WHERE user_id = $1 AND task_id = $2`

	result, err := r.db.Exec(ctx, query, userID, taskID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteTask, err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

// scanTask reads one task row from a QueryRow or rows.Next position
func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	var difficulty, questType string

	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Name,
		&difficulty,
		&questType,
		&task.Completed,
		&task.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Difficulty = domain.Difficulty(difficulty)
	task.Type = domain.QuestType(questType)
	return &task, nil
}
