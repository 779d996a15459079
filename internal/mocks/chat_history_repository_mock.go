package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"codegen-server/internal/models"
	"codegen-server/internal/repository"
)

// MockChatHistoryRepository is a mock type for the ChatHistoryRepository type
type MockChatHistoryRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, history
func (_m *MockChatHistoryRepository) Create(ctx context.Context, history *models.ChatHistory) error {
	ret := _m.Called(ctx, history)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.ChatHistory) error); ok {
		r0 = rf(ctx, history)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// ListRecentByApp provides a mock function with given fields: ctx, appID, limit
func (_m *MockChatHistoryRepository) ListRecentByApp(ctx context.Context, appID int64, limit int) ([]models.ChatHistory, error) {
	ret := _m.Called(ctx, appID, limit)

	var r0 []models.ChatHistory
	if rf, ok := ret.Get(0).(func(context.Context, int64, int) []models.ChatHistory); ok {
		r0 = rf(ctx, appID, limit)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.ChatHistory)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64, int) error); ok {
		r1 = rf(ctx, appID, limit)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ListByAppBefore provides a mock function with given fields: ctx, appID, before, beforeID, limit
func (_m *MockChatHistoryRepository) ListByAppBefore(ctx context.Context, appID int64, before time.Time, beforeID int64, limit int) ([]models.ChatHistory, error) {
	ret := _m.Called(ctx, appID, before, beforeID, limit)

	var r0 []models.ChatHistory
	if rf, ok := ret.Get(0).(func(context.Context, int64, time.Time, int64, int) []models.ChatHistory); ok {
		r0 = rf(ctx, appID, before, beforeID, limit)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.ChatHistory)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64, time.Time, int64, int) error); ok {
		r1 = rf(ctx, appID, before, beforeID, limit)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// DeleteByApp provides a mock function with given fields: ctx, appID
func (_m *MockChatHistoryRepository) DeleteByApp(ctx context.Context, appID int64) error {
	ret := _m.Called(ctx, appID)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int64) error); ok {
		r0 = rf(ctx, appID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockChatHistoryRepository creates a new instance of MockChatHistoryRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockChatHistoryRepository(t interface {
	mock.TestingT
	Helper()
}) *MockChatHistoryRepository {
	m := &MockChatHistoryRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.ChatHistoryRepository = (*MockChatHistoryRepository)(nil)
