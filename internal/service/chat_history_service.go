package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"codegen-server/internal/models"
	"codegen-server/internal/repository"
)

const (
	defaultChatHistoryPageSize = 10
	maxChatHistoryPageSize     = 50
)

// ChatHistoryService управляет durable-историей диалогов приложений.
//
//go:generate mockery --name ChatHistoryService --output ../mocks --outpkg mocks --case=underscore
type ChatHistoryService interface {
	// AddChatMessage добавляет сообщение в историю приложения.
	AddChatMessage(ctx context.Context, appID, userID int64, message, messageType string) error
	// ListByAppCursor возвращает страницу истории приложения от новых к
	// старым. Курсор составной (before, beforeID); beforeID <= 0 означает
	// "все записи не новее before". Доступ имеет владелец приложения или
	// администратор.
	ListByAppCursor(ctx context.Context, appID, userID int64, isAdmin bool, before *time.Time, beforeID int64, limit int) ([]models.ChatHistory, error)
	// DeleteByAppID удаляет всю историю приложения (каскад при удалении).
	DeleteByAppID(ctx context.Context, appID int64) error
}

type chatHistoryService struct {
	historyRepo repository.ChatHistoryRepository
	appRepo     repository.AppRepository
	logger      *zap.Logger
}

var _ ChatHistoryService = (*chatHistoryService)(nil)

// NewChatHistoryService создает сервис истории диалогов.
func NewChatHistoryService(
	historyRepo repository.ChatHistoryRepository,
	appRepo repository.AppRepository,
	logger *zap.Logger,
) ChatHistoryService {
	return &chatHistoryService{
		historyRepo: historyRepo,
		appRepo:     appRepo,
		logger:      logger.Named("ChatHistoryService"),
	}
}

func (s *chatHistoryService) AddChatMessage(ctx context.Context, appID, userID int64, message, messageType string) error {
	if appID <= 0 {
		return fmt.Errorf("%w: некорректный appID", models.ErrInvalidInput)
	}
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("%w: пустое сообщение", models.ErrInvalidInput)
	}
	if !models.IsValidMessageType(messageType) {
		return fmt.Errorf("%w: неизвестный тип сообщения %q", models.ErrInvalidInput, messageType)
	}

	history := &models.ChatHistory{
		AppID:       appID,
		UserID:      userID,
		Message:     message,
		MessageType: messageType,
	}
	if err := s.historyRepo.Create(ctx, history); err != nil {
		s.logger.Error("Не удалось сохранить сообщение истории",
			zap.Int64("appID", appID), zap.String("type", messageType), zap.Error(err))
		return err
	}
	return nil
}

func (s *chatHistoryService) ListByAppCursor(ctx context.Context, appID, userID int64, isAdmin bool, before *time.Time, beforeID int64, limit int) ([]models.ChatHistory, error) {
	app, err := s.appRepo.GetByID(ctx, appID)
	if err != nil {
		return nil, err
	}
	if app.UserID != userID && !isAdmin {
		return nil, fmt.Errorf("%w: история доступна только владельцу приложения", models.ErrForbidden)
	}

	if limit <= 0 {
		limit = defaultChatHistoryPageSize
	}
	if limit > maxChatHistoryPageSize {
		limit = maxChatHistoryPageSize
	}

	cursor := time.Now()
	cursorID := int64(math.MaxInt64)
	if before != nil {
		cursor = *before
		if beforeID > 0 {
			cursorID = beforeID
		}
	}
	return s.historyRepo.ListByAppBefore(ctx, appID, cursor, cursorID, limit)
}

func (s *chatHistoryService) DeleteByAppID(ctx context.Context, appID int64) error {
	if err := s.historyRepo.DeleteByApp(ctx, appID); err != nil {
		s.logger.Error("Не удалось удалить историю приложения",
			zap.Int64("appID", appID), zap.Error(err))
		return err
	}
	return nil
}
