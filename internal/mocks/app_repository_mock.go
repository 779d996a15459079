package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"codegen-server/internal/models"
	"codegen-server/internal/repository"
)

// MockAppRepository is a mock type for the AppRepository type
type MockAppRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, app
func (_m *MockAppRepository) Create(ctx context.Context, app *models.App) error {
	ret := _m.Called(ctx, app)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.App) error); ok {
		r0 = rf(ctx, app)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockAppRepository) GetByID(ctx context.Context, id int64) (*models.App, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.App
	if rf, ok := ret.Get(0).(func(context.Context, int64) *models.App); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.App)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Update provides a mock function with given fields: ctx, app
func (_m *MockAppRepository) Update(ctx context.Context, app *models.App) error {
	ret := _m.Called(ctx, app)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.App) error); ok {
		r0 = rf(ctx, app)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Delete provides a mock function with given fields: ctx, id
func (_m *MockAppRepository) Delete(ctx context.Context, id int64) error {
	ret := _m.Called(ctx, id)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int64) error); ok {
		r0 = rf(ctx, id)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// ListByUser provides a mock function with given fields: ctx, userID, offset, limit
func (_m *MockAppRepository) ListByUser(ctx context.Context, userID int64, offset int, limit int) ([]models.App, error) {
	ret := _m.Called(ctx, userID, offset, limit)

	var r0 []models.App
	if rf, ok := ret.Get(0).(func(context.Context, int64, int, int) []models.App); ok {
		r0 = rf(ctx, userID, offset, limit)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.App)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64, int, int) error); ok {
		r1 = rf(ctx, userID, offset, limit)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ListByPriority provides a mock function with given fields: ctx, priority, offset, limit
func (_m *MockAppRepository) ListByPriority(ctx context.Context, priority int, offset int, limit int) ([]models.App, error) {
	ret := _m.Called(ctx, priority, offset, limit)

	var r0 []models.App
	if rf, ok := ret.Get(0).(func(context.Context, int, int, int) []models.App); ok {
		r0 = rf(ctx, priority, offset, limit)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.App)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int, int, int) error); ok {
		r1 = rf(ctx, priority, offset, limit)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// List provides a mock function with given fields: ctx, offset, limit
func (_m *MockAppRepository) List(ctx context.Context, offset int, limit int) ([]models.App, error) {
	ret := _m.Called(ctx, offset, limit)

	var r0 []models.App
	if rf, ok := ret.Get(0).(func(context.Context, int, int) []models.App); ok {
		r0 = rf(ctx, offset, limit)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.App)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int, int) error); ok {
		r1 = rf(ctx, offset, limit)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockAppRepository creates a new instance of MockAppRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockAppRepository(t interface {
	mock.TestingT
	Helper()
}) *MockAppRepository {
	m := &MockAppRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.AppRepository = (*MockAppRepository)(nil)
