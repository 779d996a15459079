package repository

import (
	"context"
	"fmt"
	"time"

	"codegen-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"go.uber.org/zap"
)

const (
	createChatHistoryQuery = `
        INSERT INTO chat_histories (app_id, user_id, message, message_type)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	// Последние limit сообщений, развернутые обратно в хронологический порядок.
	listRecentChatHistoryQuery = `
        SELECT id, app_id, user_id, message, message_type, created_at FROM (
            SELECT id, app_id, user_id, message, message_type, created_at
            FROM chat_histories
            WHERE app_id = $1
            ORDER BY created_at DESC, id DESC
            LIMIT $2
        ) AS recent
        ORDER BY created_at ASC, id ASC`

	// Составной курсор (created_at, id), иначе строки с одинаковым
	// created_at теряются между страницами.
	listChatHistoryBeforeQuery = `
        SELECT id, app_id, user_id, message, message_type, created_at
        FROM chat_histories
        WHERE app_id = $1 AND (created_at, id) < ($2, $3)
        ORDER BY created_at DESC, id DESC
        LIMIT $4`

	deleteChatHistoryByAppQuery = `DELETE FROM chat_histories WHERE app_id = $1`
)

// Compile-time check to ensure pgChatHistoryRepository implements ChatHistoryRepository
var _ ChatHistoryRepository = (*pgChatHistoryRepository)(nil)

type pgChatHistoryRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgChatHistoryRepository создает PostgreSQL-реализацию ChatHistoryRepository.
func NewPgChatHistoryRepository(db DBTX, logger *zap.Logger) ChatHistoryRepository {
	return &pgChatHistoryRepository{
		db:     db,
		logger: logger.Named("PgChatHistoryRepo"),
	}
}

func (r *pgChatHistoryRepository) Create(ctx context.Context, history *models.ChatHistory) error {
	err := r.db.QueryRow(ctx, createChatHistoryQuery,
		history.AppID, history.UserID, history.Message, history.MessageType,
	).Scan(&history.ID, &history.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to append chat history",
			zap.Error(err), zap.Int64("appID", history.AppID), zap.String("messageType", history.MessageType))
		return fmt.Errorf("failed to append chat history: %w", err)
	}
	r.logger.Debug("Chat history appended",
		zap.Int64("appID", history.AppID), zap.String("messageType", history.MessageType), zap.Int("len", len(history.Message)))
	return nil
}

func (r *pgChatHistoryRepository) ListRecentByApp(ctx context.Context, appID int64, limit int) ([]models.ChatHistory, error) {
	var items []models.ChatHistory
	if err := pgxscan.Select(ctx, r.db, &items, listRecentChatHistoryQuery, appID, limit); err != nil {
		r.logger.Error("Failed to list recent chat history", zap.Error(err), zap.Int64("appID", appID))
		return nil, fmt.Errorf("failed to list recent chat history: %w", err)
	}
	return items, nil
}

func (r *pgChatHistoryRepository) ListByAppBefore(ctx context.Context, appID int64, before time.Time, beforeID int64, limit int) ([]models.ChatHistory, error) {
	var items []models.ChatHistory
	if err := pgxscan.Select(ctx, r.db, &items, listChatHistoryBeforeQuery, appID, before, beforeID, limit); err != nil {
		r.logger.Error("Failed to list chat history page", zap.Error(err), zap.Int64("appID", appID))
		return nil, fmt.Errorf("failed to list chat history page: %w", err)
	}
	return items, nil
}

func (r *pgChatHistoryRepository) DeleteByApp(ctx context.Context, appID int64) error {
	tag, err := r.db.Exec(ctx, deleteChatHistoryByAppQuery, appID)
	if err != nil {
		r.logger.Error("Failed to delete chat history by app", zap.Error(err), zap.Int64("appID", appID))
		return fmt.Errorf("failed to delete chat history by app: %w", err)
	}
	r.logger.Info("Chat history deleted", zap.Int64("appID", appID), zap.Int64("rows", tag.RowsAffected()))
	return nil
}
