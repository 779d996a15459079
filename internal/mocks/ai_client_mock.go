package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"codegen-server/internal/models"
	"codegen-server/internal/service"
)

// MockAIClient is a mock type for the AIClient type
type MockAIClient struct {
	mock.Mock
}

// GenerateCode provides a mock function with given fields: ctx, systemPrompt, history, userMessage, params
func (_m *MockAIClient) GenerateCode(ctx context.Context, systemPrompt string, history []models.ChatMessage, userMessage string, params service.GenerationParams) (string, service.UsageInfo, error) {
	ret := _m.Called(ctx, systemPrompt, history, userMessage, params)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, string, []models.ChatMessage, string, service.GenerationParams) string); ok {
		r0 = rf(ctx, systemPrompt, history, userMessage, params)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(string)
		}
	}

	var r1 service.UsageInfo
	if rf, ok := ret.Get(1).(func(context.Context, string, []models.ChatMessage, string, service.GenerationParams) service.UsageInfo); ok {
		r1 = rf(ctx, systemPrompt, history, userMessage, params)
	} else {
		if ret.Get(1) != nil {
			r1 = ret.Get(1).(service.UsageInfo)
		}
	}

	var r2 error
	if rf, ok := ret.Get(2).(func(context.Context, string, []models.ChatMessage, string, service.GenerationParams) error); ok {
		r2 = rf(ctx, systemPrompt, history, userMessage, params)
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// GenerateCodeStream provides a mock function with given fields: ctx, systemPrompt, history, userMessage, params, chunkHandler
func (_m *MockAIClient) GenerateCodeStream(ctx context.Context, systemPrompt string, history []models.ChatMessage, userMessage string, params service.GenerationParams, chunkHandler func(string) error) (service.UsageInfo, error) {
	ret := _m.Called(ctx, systemPrompt, history, userMessage, params, chunkHandler)

	var r0 service.UsageInfo
	if rf, ok := ret.Get(0).(func(context.Context, string, []models.ChatMessage, string, service.GenerationParams, func(string) error) service.UsageInfo); ok {
		r0 = rf(ctx, systemPrompt, history, userMessage, params, chunkHandler)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(service.UsageInfo)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string, []models.ChatMessage, string, service.GenerationParams, func(string) error) error); ok {
		r1 = rf(ctx, systemPrompt, history, userMessage, params, chunkHandler)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockAIClient creates a new instance of MockAIClient. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockAIClient(t interface {
	mock.TestingT
	Helper()
}) *MockAIClient {
	m := &MockAIClient{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ service.AIClient = (*MockAIClient)(nil)
