package service_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"codegen-server/internal/mocks"
	"codegen-server/internal/models"
	"codegen-server/internal/service"
)

func newHistoryServiceFixture(t *testing.T) (service.ChatHistoryService, *mocks.MockChatHistoryRepository, *mocks.MockAppRepository) {
	t.Helper()
	historyRepo := mocks.NewMockChatHistoryRepository(t)
	appRepo := mocks.NewMockAppRepository(t)
	svc := service.NewChatHistoryService(historyRepo, appRepo, zap.NewNop())
	return svc, historyRepo, appRepo
}

func TestChatHistoryService_AddChatMessage(t *testing.T) {
	svc, historyRepo, _ := newHistoryServiceFixture(t)

	historyRepo.On("Create", mock.Anything, mock.MatchedBy(func(h *models.ChatHistory) bool {
		return h.AppID == 1 && h.UserID == 10 && h.Message == "hello" && h.MessageType == models.MessageTypeUser
	})).Return(nil).Once()

	err := svc.AddChatMessage(context.Background(), 1, 10, "hello", models.MessageTypeUser)
	assert.NoError(t, err)
}

func TestChatHistoryService_AddChatMessage_Validation(t *testing.T) {
	svc, historyRepo, _ := newHistoryServiceFixture(t)

	assert.ErrorIs(t, svc.AddChatMessage(context.Background(), 0, 10, "m", models.MessageTypeUser), models.ErrInvalidInput)
	assert.ErrorIs(t, svc.AddChatMessage(context.Background(), 1, 10, "   ", models.MessageTypeUser), models.ErrInvalidInput)
	assert.ErrorIs(t, svc.AddChatMessage(context.Background(), 1, 10, "m", "system"), models.ErrInvalidInput)
	historyRepo.AssertNotCalled(t, "Create")
}

func TestChatHistoryService_ListByAppCursor_OwnerAccess(t *testing.T) {
	svc, historyRepo, appRepo := newHistoryServiceFixture(t)

	appRepo.On("GetByID", mock.Anything, int64(1)).
		Return(&models.App{ID: 1, UserID: 10}, nil).Once()
	historyRepo.On("ListByAppBefore", mock.Anything, int64(1), mock.Anything, mock.Anything, 10).
		Return([]models.ChatHistory{{ID: 5, AppID: 1}}, nil).Once()

	histories, err := svc.ListByAppCursor(context.Background(), 1, 10, false, nil, 0, 0)
	require.NoError(t, err)
	assert.Len(t, histories, 1)
}

func TestChatHistoryService_ListByAppCursor_ForbiddenForStranger(t *testing.T) {
	svc, historyRepo, appRepo := newHistoryServiceFixture(t)

	appRepo.On("GetByID", mock.Anything, int64(1)).
		Return(&models.App{ID: 1, UserID: 10}, nil).Once()

	_, err := svc.ListByAppCursor(context.Background(), 1, 99, false, nil, 0, 10)
	assert.ErrorIs(t, err, models.ErrForbidden)
	historyRepo.AssertNotCalled(t, "ListByAppBefore")
}

func TestChatHistoryService_ListByAppCursor_AdminAccess(t *testing.T) {
	svc, historyRepo, appRepo := newHistoryServiceFixture(t)

	appRepo.On("GetByID", mock.Anything, int64(1)).
		Return(&models.App{ID: 1, UserID: 10}, nil).Once()
	historyRepo.On("ListByAppBefore", mock.Anything, int64(1), mock.Anything, mock.Anything, 10).
		Return(nil, nil).Once()

	_, err := svc.ListByAppCursor(context.Background(), 1, 99, true, nil, 0, 10)
	assert.NoError(t, err)
}

func TestChatHistoryService_ListByAppCursor_LimitCapped(t *testing.T) {
	svc, historyRepo, appRepo := newHistoryServiceFixture(t)

	appRepo.On("GetByID", mock.Anything, int64(1)).
		Return(&models.App{ID: 1, UserID: 10}, nil).Once()
	// Запрошенный размер страницы выше потолка урезается до 50
	historyRepo.On("ListByAppBefore", mock.Anything, int64(1), mock.Anything, mock.Anything, 50).
		Return(nil, nil).Once()

	_, err := svc.ListByAppCursor(context.Background(), 1, 10, false, nil, 0, 500)
	assert.NoError(t, err)
}

func TestChatHistoryService_ListByAppCursor_UsesCursor(t *testing.T) {
	svc, historyRepo, appRepo := newHistoryServiceFixture(t)

	cursor := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	appRepo.On("GetByID", mock.Anything, int64(1)).
		Return(&models.App{ID: 1, UserID: 10}, nil).Once()
	historyRepo.On("ListByAppBefore", mock.Anything, int64(1), cursor, int64(42), 10).
		Return(nil, nil).Once()

	_, err := svc.ListByAppCursor(context.Background(), 1, 10, false, &cursor, 42, 10)
	assert.NoError(t, err)
	historyRepo.AssertExpectations(t)
}

func TestChatHistoryService_ListByAppCursor_TimeOnlyCursorKeepsTies(t *testing.T) {
	svc, historyRepo, appRepo := newHistoryServiceFixture(t)

	// Без lastId курсор по id раскрывается в максимум, чтобы записи с тем же
	// created_at не выпадали из выдачи
	cursor := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	appRepo.On("GetByID", mock.Anything, int64(1)).
		Return(&models.App{ID: 1, UserID: 10}, nil).Once()
	historyRepo.On("ListByAppBefore", mock.Anything, int64(1), cursor, int64(math.MaxInt64), 10).
		Return(nil, nil).Once()

	_, err := svc.ListByAppCursor(context.Background(), 1, 10, false, &cursor, 0, 10)
	assert.NoError(t, err)
	historyRepo.AssertExpectations(t)
}
