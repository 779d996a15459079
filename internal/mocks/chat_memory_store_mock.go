package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"codegen-server/internal/models"
	"codegen-server/internal/repository"
)

// MockChatMemoryStore is a mock type for the ChatMemoryStore type
type MockChatMemoryStore struct {
	mock.Mock
}

// LoadMessages provides a mock function with given fields: ctx, appID
func (_m *MockChatMemoryStore) LoadMessages(ctx context.Context, appID int64) ([]models.ChatMessage, error) {
	ret := _m.Called(ctx, appID)

	var r0 []models.ChatMessage
	if rf, ok := ret.Get(0).(func(context.Context, int64) []models.ChatMessage); ok {
		r0 = rf(ctx, appID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.ChatMessage)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64) error); ok {
		r1 = rf(ctx, appID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// SaveMessages provides a mock function with given fields: ctx, appID, messages
func (_m *MockChatMemoryStore) SaveMessages(ctx context.Context, appID int64, messages []models.ChatMessage) error {
	ret := _m.Called(ctx, appID, messages)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int64, []models.ChatMessage) error); ok {
		r0 = rf(ctx, appID, messages)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// DeleteMessages provides a mock function with given fields: ctx, appID
func (_m *MockChatMemoryStore) DeleteMessages(ctx context.Context, appID int64) error {
	ret := _m.Called(ctx, appID)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int64) error); ok {
		r0 = rf(ctx, appID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockChatMemoryStore creates a new instance of MockChatMemoryStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockChatMemoryStore(t interface {
	mock.TestingT
	Helper()
}) *MockChatMemoryStore {
	m := &MockChatMemoryStore{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.ChatMemoryStore = (*MockChatMemoryStore)(nil)
