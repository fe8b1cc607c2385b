package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/questkeeper-app/questkeeper/internal/domain"
	"github.com/questkeeper-app/questkeeper/internal/identity"
	"github.com/questkeeper-app/questkeeper/internal/task"
)

func TestHandleCreateTask(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		userID         string
		requestBody    interface{}
		setupMock      func(*MockTaskService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "Success",
			userID: "alice",
			requestBody: CreateTaskRequest{
				Name:       "Write the quarterly report",
				Difficulty: "medium",
				Type:       "mental",
			},
			setupMock: func(m *MockTaskService) {
				m.On("Create", mock.Anything, "alice", task.CreateInput{
					Name:       "Write the quarterly report",
					Difficulty: domain.DifficultyMedium,
					Type:       domain.QuestTypeMental,
				}).Return(&domain.Task{
					ID:         "task-1",
					UserID:     "alice",
					Name:       "Write the quarterly report",
					Difficulty: domain.DifficultyMedium,
					Type:       domain.QuestTypeMental,
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"id":"task-1"`,
		},
		{
			name:   "Unrecognized Difficulty Accepted",
			userID: "alice",
			requestBody: CreateTaskRequest{
				Name:       "Mystery chore",
				Difficulty: "legendary",
			},
			setupMock: func(m *MockTaskService) {
				m.On("Create", mock.Anything, "alice", task.CreateInput{
					Name:       "Mystery chore",
					Difficulty: domain.Difficulty("legendary"),
				}).Return(&domain.Task{
					ID:         "task-2",
					UserID:     "alice",
					Name:       "Mystery chore",
					Difficulty: domain.Difficulty("legendary"),
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"difficulty":"legendary"`,
		},
		{
			name:           "Missing Name",
			userID:         "alice",
			requestBody:    CreateTaskRequest{Difficulty: "easy"},
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "This field is required",
		},
		{
			name:           "Blank Name",
			userID:         "alice",
			requestBody:    CreateTaskRequest{Name: "   ", Difficulty: "easy"},
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Cannot be blank",
		},
		{
			name:           "Missing Identity",
			userID:         "",
			requestBody:    CreateTaskRequest{Name: "Do the dishes"},
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   ErrMsgIdentityRequiredError,
		},
		{
			name:        "Invalid Input From Service",
			userID:      "alice",
			requestBody: CreateTaskRequest{Name: "Do the dishes"},
			setupMock: func(m *MockTaskService) {
				m.On("Create", mock.Anything, "alice", mock.Anything).
					Return(nil, domain.ErrInvalidInput)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestError,
		},
		{
			name:        "Service Error",
			userID:      "alice",
			requestBody: CreateTaskRequest{Name: "Do the dishes"},
			setupMock: func(m *MockTaskService) {
				m.On("Create", mock.Anything, "alice", mock.Anything).
					Return(nil, assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   ErrMsgCreateTaskFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockTaskService{}
			tt.setupMock(mockSvc)

			handler := HandleCreateTask(mockSvc, identity.NewHeaderResolver())

			body, _ := json.Marshal(tt.requestBody)
			req := authedRequest("POST", "/tasks", tt.userID, bytes.NewBuffer(body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestHandleCreateTask_InvalidJSON(t *testing.T) {
	InitValidator()

	mockSvc := &MockTaskService{}
	handler := HandleCreateTask(mockSvc, identity.NewHeaderResolver())

	req := authedRequest("POST", "/tasks", "alice", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgInvalidRequest)
	mockSvc.AssertExpectations(t)
}

func TestHandleListTasks(t *testing.T) {
	tests := []struct {
		name           string
		userID         string
		setupMock      func(*MockTaskService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "Success",
			userID: "alice",
			setupMock: func(m *MockTaskService) {
				m.On("List", mock.Anything, "alice").Return([]domain.Task{
					{ID: "task-1", UserID: "alice", Name: "Morning run", Difficulty: domain.DifficultyEasy, Type: domain.QuestTypePhysical},
					{ID: "task-2", UserID: "alice", Name: "Ship the release", Difficulty: domain.DifficultyHard, Type: domain.QuestTypeProduction},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"task-2"`,
		},
		{
			name:   "Empty List",
			userID: "alice",
			setupMock: func(m *MockTaskService) {
				m.On("List", mock.Anything, "alice").Return([]domain.Task{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"tasks":[]`,
		},
		{
			name:           "Missing Identity",
			userID:         "",
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   ErrMsgIdentityRequiredError,
		},
		{
			name:   "Service Error",
			userID: "alice",
			setupMock: func(m *MockTaskService) {
				m.On("List", mock.Anything, "alice").Return(nil, assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   ErrMsgListTasksFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockTaskService{}
			tt.setupMock(mockSvc)

			handler := HandleListTasks(mockSvc, identity.NewHeaderResolver())

			req := authedRequest("GET", "/tasks", tt.userID, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockSvc.AssertExpectations(t)
		})
	}
}

// completeRouter mounts the handler the way the server does, so chi.URLParam
// can resolve the task ID from the path.
func completeRouter(svc task.Service) http.Handler {
	r := chi.NewRouter()
	r.Post("/tasks/{taskID}/complete", HandleCompleteTask(svc, identity.NewHeaderResolver()))
	return r
}

func TestHandleCompleteTask(t *testing.T) {
	tests := []struct {
		name           string
		userID         string
		target         string
		setupMock      func(*MockTaskService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "Success",
			userID: "alice",
			target: "/tasks/task-1/complete",
			setupMock: func(m *MockTaskService) {
				char := domain.NewCharacter("alice")
				char.Strength = 13
				char.Health = 101
				char.Gold = 10
				char.Experience = 20
				m.On("Complete", mock.Anything, "alice", "task-1").Return(&domain.CompletionResult{
					Character: char,
					Reward:    domain.Reward{StatPoints: 3, Gold: 10, Experience: 20},
					LeveledUp: false,
					NewLevel:  1,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"strength":13`,
		},
		{
			name:   "Level Up Reported",
			userID: "alice",
			target: "/tasks/task-1/complete",
			setupMock: func(m *MockTaskService) {
				char := domain.NewCharacter("alice")
				char.Level = 2
				char.Experience = 15
				m.On("Complete", mock.Anything, "alice", "task-1").Return(&domain.CompletionResult{
					Character: char,
					Reward:    domain.Reward{StatPoints: 3, Gold: 10, Experience: 20},
					LeveledUp: true,
					NewLevel:  2,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"leveled_up":true`,
		},
		{
			name:   "Task Not Found",
			userID: "alice",
			target: "/tasks/missing/complete",
			setupMock: func(m *MockTaskService) {
				m.On("Complete", mock.Anything, "alice", "missing").
					Return(nil, domain.ErrTaskNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgTaskNotFoundError,
		},
		{
			name:   "Already Completed",
			userID: "alice",
			target: "/tasks/task-1/complete",
			setupMock: func(m *MockTaskService) {
				m.On("Complete", mock.Anything, "alice", "task-1").
					Return(nil, domain.ErrTaskAlreadyCompleted)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgTaskAlreadyCompletedError,
		},
		{
			name:           "Missing Identity",
			userID:         "",
			target:         "/tasks/task-1/complete",
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   ErrMsgIdentityRequiredError,
		},
		{
			name:   "Service Error",
			userID: "alice",
			target: "/tasks/task-1/complete",
			setupMock: func(m *MockTaskService) {
				m.On("Complete", mock.Anything, "alice", "task-1").
					Return(nil, assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   ErrMsgCompleteTaskFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockTaskService{}
			tt.setupMock(mockSvc)

			router := completeRouter(mockSvc)

			req := authedRequest("POST", tt.target, tt.userID, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestHandleDeleteTask(t *testing.T) {
	tests := []struct {
		name           string
		userID         string
		target         string
		setupMock      func(*MockTaskService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "Success",
			userID: "alice",
			target: "/tasks/task-1",
			setupMock: func(m *MockTaskService) {
				m.On("Delete", mock.Anything, "alice", "task-1").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   MsgTaskDeletedSuccess,
		},
		{
			name:   "Task Not Found",
			userID: "alice",
			target: "/tasks/missing",
			setupMock: func(m *MockTaskService) {
				m.On("Delete", mock.Anything, "alice", "missing").
					Return(domain.ErrTaskNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgTaskNotFoundError,
		},
		{
			name:           "Missing Identity",
			userID:         "",
			target:         "/tasks/task-1",
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   ErrMsgIdentityRequiredError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockTaskService{}
			tt.setupMock(mockSvc)

			r := chi.NewRouter()
			r.Delete("/tasks/{taskID}", HandleDeleteTask(mockSvc, identity.NewHeaderResolver()))

			req := authedRequest("DELETE", tt.target, tt.userID, nil)
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockSvc.AssertExpectations(t)
		})
	}
}
