package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"codegen-server/internal/models"
	"codegen-server/internal/service"
)

// MockAppService is a mock type for the AppService type
type MockAppService struct {
	mock.Mock
}

// CreateApp provides a mock function with given fields: ctx, userID, initPrompt
func (_m *MockAppService) CreateApp(ctx context.Context, userID int64, initPrompt string) (*models.App, error) {
	ret := _m.Called(ctx, userID, initPrompt)

	var r0 *models.App
	if rf, ok := ret.Get(0).(func(context.Context, int64, string) *models.App); ok {
		r0 = rf(ctx, userID, initPrompt)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.App)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64, string) error); ok {
		r1 = rf(ctx, userID, initPrompt)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetApp provides a mock function with given fields: ctx, appID
func (_m *MockAppService) GetApp(ctx context.Context, appID int64) (*models.App, error) {
	ret := _m.Called(ctx, appID)

	var r0 *models.App
	if rf, ok := ret.Get(0).(func(context.Context, int64) *models.App); ok {
		r0 = rf(ctx, appID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.App)
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

// UpdateAppName provides a mock function with given fields: ctx, appID, userID, appName
func (_m *MockAppService) UpdateAppName(ctx context.Context, appID int64, userID int64, appName string) (*models.App, error) {
	ret := _m.Called(ctx, appID, userID, appName)

	var r0 *models.App
	if rf, ok := ret.Get(0).(func(context.Context, int64, int64, string) *models.App); ok {
		r0 = rf(ctx, appID, userID, appName)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.App)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64, int64, string) error); ok {
		r1 = rf(ctx, appID, userID, appName)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// DeleteApp provides a mock function with given fields: ctx, appID, userID, isAdmin
func (_m *MockAppService) DeleteApp(ctx context.Context, appID int64, userID int64, isAdmin bool) error {
	ret := _m.Called(ctx, appID, userID, isAdmin)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int64, int64, bool) error); ok {
		r0 = rf(ctx, appID, userID, isAdmin)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// ListMyApps provides a mock function with given fields: ctx, userID, page, pageSize
func (_m *MockAppService) ListMyApps(ctx context.Context, userID int64, page int, pageSize int) ([]models.App, error) {
	ret := _m.Called(ctx, userID, page, pageSize)

	var r0 []models.App
	if rf, ok := ret.Get(0).(func(context.Context, int64, int, int) []models.App); ok {
		r0 = rf(ctx, userID, page, pageSize)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.App)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64, int, int) error); ok {
		r1 = rf(ctx, userID, page, pageSize)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ListGoodApps provides a mock function with given fields: ctx, page, pageSize
func (_m *MockAppService) ListGoodApps(ctx context.Context, page int, pageSize int) ([]models.App, error) {
	ret := _m.Called(ctx, page, pageSize)

	var r0 []models.App
	if rf, ok := ret.Get(0).(func(context.Context, int, int) []models.App); ok {
		r0 = rf(ctx, page, pageSize)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.App)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int, int) error); ok {
		r1 = rf(ctx, page, pageSize)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ListAllApps provides a mock function with given fields: ctx, page, pageSize
func (_m *MockAppService) ListAllApps(ctx context.Context, page int, pageSize int) ([]models.App, error) {
	ret := _m.Called(ctx, page, pageSize)

	var r0 []models.App
	if rf, ok := ret.Get(0).(func(context.Context, int, int) []models.App); ok {
		r0 = rf(ctx, page, pageSize)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.App)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int, int) error); ok {
		r1 = rf(ctx, page, pageSize)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ChatToGenCode provides a mock function with given fields: ctx, appID, userID, message
func (_m *MockAppService) ChatToGenCode(ctx context.Context, appID int64, userID int64, message string) (<-chan service.StreamChunk, error) {
	ret := _m.Called(ctx, appID, userID, message)

	var r0 <-chan service.StreamChunk
	if rf, ok := ret.Get(0).(func(context.Context, int64, int64, string) <-chan service.StreamChunk); ok {
		r0 = rf(ctx, appID, userID, message)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(<-chan service.StreamChunk)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64, int64, string) error); ok {
		r1 = rf(ctx, appID, userID, message)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// DeployApp provides a mock function with given fields: ctx, appID, userID
func (_m *MockAppService) DeployApp(ctx context.Context, appID int64, userID int64) (string, error) {
	ret := _m.Called(ctx, appID, userID)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, int64, int64) string); ok {
		r0 = rf(ctx, appID, userID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(string)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64, int64) error); ok {
		r1 = rf(ctx, appID, userID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockAppService creates a new instance of MockAppService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockAppService(t interface {
	mock.TestingT
	Helper()
}) *MockAppService {
	m := &MockAppService{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ service.AppService = (*MockAppService)(nil)
