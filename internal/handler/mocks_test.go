package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/stretchr/testify/mock"

	"github.com/questkeeper-app/questkeeper/internal/domain"
	"github.com/questkeeper-app/questkeeper/internal/event"
	"github.com/questkeeper-app/questkeeper/internal/identity"
	"github.com/questkeeper-app/questkeeper/internal/repository"
	"github.com/questkeeper-app/questkeeper/internal/task"
)

// Hand-rolled service mocks shared by the handler tests

type MockCharacterService struct {
	mock.Mock
}

func (m *MockCharacterService) GetOrCreate(ctx context.Context, userID string) (*domain.Character, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockCharacterService) DerivedStats(ctx context.Context, userID string) (domain.DerivedStats, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.DerivedStats), args.Error(1)
}

func (m *MockCharacterService) ChangeAvatar(ctx context.Context, userID, styleID string) (*domain.Character, error) {
	args := m.Called(ctx, userID, styleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockCharacterService) AvatarStyles() []domain.AvatarStyleOption {
	args := m.Called()
	return args.Get(0).([]domain.AvatarStyleOption)
}

func (m *MockCharacterService) Watch(ctx context.Context, userID string) (<-chan domain.Character, func(), error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(<-chan domain.Character), args.Get(1).(func()), args.Error(2)
}

func (m *MockCharacterService) Shutdown(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, userID string, input task.CreateInput) (*domain.Task, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskService) List(ctx context.Context, userID string) ([]domain.Task, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskService) Complete(ctx context.Context, userID, taskID string) (*domain.CompletionResult, error) {
	args := m.Called(ctx, userID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompletionResult), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, userID, taskID string) error {
	args := m.Called(ctx, userID, taskID)
	return args.Error(0)
}

func (m *MockTaskService) Shutdown(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) Subscribe(bus event.Bus) {
	m.Called(bus)
}

func (m *MockJournalService) Recent(ctx context.Context, userID string, limit int) ([]repository.JournalEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.JournalEntry), args.Error(1)
}

func (m *MockJournalService) Cleanup(ctx context.Context, retentionDays int) (int64, error) {
	args := m.Called(ctx, retentionDays)
	return args.Get(0).(int64), args.Error(1)
}

// authedRequest builds a request carrying the trusted identity header
func authedRequest(method, target, userID string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set(identity.HeaderUserID, userID)
	return req
}
