package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/questkeeper-app/questkeeper/internal/domain"
	"github.com/questkeeper-app/questkeeper/internal/identity"
	"github.com/questkeeper-app/questkeeper/internal/logger"
	"github.com/questkeeper-app/questkeeper/internal/task"
)

// CreateTaskRequest carries the user-supplied fields for a new task.
// Difficulty and type are free-form: unrecognized difficulties earn nothing
// and unrecognized types fall back to the general allocation, so neither is
// validated against a closed set.
type CreateTaskRequest struct {
	Name       string `json:"name" validate:"required,notblank,max=200,excludesall=\x00\n\r\t"`
	Difficulty string `json:"difficulty" validate:"max=50"`
	Type       string `json:"type" validate:"max=50"`
}

// TasksResponse lists the caller's active tasks in creation order
type TasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
}

// HandleCreateTask creates a new active task for the caller
// @Summary Create task
// @Description Create a new active task for the caller
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body CreateTaskRequest true "Task details"
// @Success 201 {object} domain.Task
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tasks [post]
func HandleCreateTask(svc task.Service, resolver identity.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, ok := ResolveIdentity(w, r, resolver)
		if !ok {
			return
		}

		var req CreateTaskRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create task"); err != nil {
			return
		}

		created, err := svc.Create(r.Context(), userID, task.CreateInput{
			Name:       req.Name,
			Difficulty: domain.Difficulty(req.Difficulty),
			Type:       domain.QuestType(req.Type),
		})
		if err != nil {
			respondServiceError(w, r, ErrMsgCreateTaskFailed, err)
			return
		}

		log.Info("Task created", "user_id", userID, "task_id", created.ID)

		respondJSON(w, http.StatusCreated, created)
	}
}

// HandleListTasks returns the caller's active tasks
// @Summary List tasks
// @Description List the caller's active (not completed) tasks in creation order
// @Tags tasks
// @Produce json
// @Success 200 {object} TasksResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tasks [get]
func HandleListTasks(svc task.Service, resolver identity.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := ResolveIdentity(w, r, resolver)
		if !ok {
			return
		}

		tasks, err := svc.List(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, ErrMsgListTasksFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, TasksResponse{Tasks: tasks})
	}
}

// HandleCompleteTask runs the completion flow for one of the caller's tasks
// @Summary Complete task
// @Description Apply the task's rewards to the caller's character, retire the task, and return the updated snapshot with what changed
// @Tags tasks
// @Produce json
// @Param taskID path string true "Task ID"
// @Success 200 {object} domain.CompletionResult
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Task already completed"
// @Failure 500 {object} ErrorResponse
// @Router /tasks/{taskID}/complete [post]
func HandleCompleteTask(svc task.Service, resolver identity.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, ok := ResolveIdentity(w, r, resolver)
		if !ok {
			return
		}

		taskID := chi.URLParam(r, "taskID")
		if taskID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgMissingTaskID)
			return
		}

		result, err := svc.Complete(r.Context(), userID, taskID)
		if err != nil {
			respondServiceError(w, r, ErrMsgCompleteTaskFailed, err)
			return
		}

		log.Info("Task completed",
			"user_id", userID,
			"task_id", taskID,
			"leveled_up", result.LeveledUp,
			"dropped_item", result.DroppedItem)

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleDeleteTask removes one of the caller's active tasks without rewards
// @Summary Delete task
// @Description Remove an active task. No rewards are applied.
// @Tags tasks
// @Produce json
// @Param taskID path string true "Task ID"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tasks/{taskID} [delete]
func HandleDeleteTask(svc task.Service, resolver identity.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, ok := ResolveIdentity(w, r, resolver)
		if !ok {
			return
		}

		taskID := chi.URLParam(r, "taskID")
		if taskID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgMissingTaskID)
			return
		}

		if err := svc.Delete(r.Context(), userID, taskID); err != nil {
			respondServiceError(w, r, ErrMsgDeleteTaskFailed, err)
			return
		}

		log.Info("Task deleted", "user_id", userID, "task_id", taskID)

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgTaskDeletedSuccess})
	}
}
