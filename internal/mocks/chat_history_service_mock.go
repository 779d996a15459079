package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"codegen-server/internal/models"
	"codegen-server/internal/service"
)

// MockChatHistoryService is a mock type for the ChatHistoryService type
type MockChatHistoryService struct {
	mock.Mock
}

// AddChatMessage provides a mock function with given fields: ctx, appID, userID, message, messageType
func (_m *MockChatHistoryService) AddChatMessage(ctx context.Context, appID int64, userID int64, message string, messageType string) error {
	ret := _m.Called(ctx, appID, userID, message, messageType)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int64, int64, string, string) error); ok {
		r0 = rf(ctx, appID, userID, message, messageType)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// ListByAppCursor provides a mock function with given fields: ctx, appID, userID, isAdmin, before, beforeID, limit
func (_m *MockChatHistoryService) ListByAppCursor(ctx context.Context, appID int64, userID int64, isAdmin bool, before *time.Time, beforeID int64, limit int) ([]models.ChatHistory, error) {
	ret := _m.Called(ctx, appID, userID, isAdmin, before, beforeID, limit)

	var r0 []models.ChatHistory
	if rf, ok := ret.Get(0).(func(context.Context, int64, int64, bool, *time.Time, int64, int) []models.ChatHistory); ok {
		r0 = rf(ctx, appID, userID, isAdmin, before, beforeID, limit)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.ChatHistory)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64, int64, bool, *time.Time, int64, int) error); ok {
		r1 = rf(ctx, appID, userID, isAdmin, before, beforeID, limit)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// DeleteByAppID provides a mock function with given fields: ctx, appID
func (_m *MockChatHistoryService) DeleteByAppID(ctx context.Context, appID int64) error {
	ret := _m.Called(ctx, appID)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int64) error); ok {
		r0 = rf(ctx, appID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockChatHistoryService creates a new instance of MockChatHistoryService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockChatHistoryService(t interface {
	mock.TestingT
	Helper()
}) *MockChatHistoryService {
	m := &MockChatHistoryService{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ service.ChatHistoryService = (*MockChatHistoryService)(nil)
