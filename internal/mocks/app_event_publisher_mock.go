package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"codegen-server/internal/messaging"
)

// MockAppEventPublisher is a mock type for the AppEventPublisher type
type MockAppEventPublisher struct {
	mock.Mock
}

// PublishAppEvent provides a mock function with given fields: ctx, payload
func (_m *MockAppEventPublisher) PublishAppEvent(ctx context.Context, payload messaging.AppEventPayload) error {
	ret := _m.Called(ctx, payload)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, messaging.AppEventPayload) error); ok {
		r0 = rf(ctx, payload)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockAppEventPublisher creates a new instance of MockAppEventPublisher. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockAppEventPublisher(t interface {
	mock.TestingT
	Helper()
}) *MockAppEventPublisher {
	m := &MockAppEventPublisher{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ messaging.AppEventPublisher = (*MockAppEventPublisher)(nil)
