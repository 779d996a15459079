package repository

import (
	"context"
	"time"

	"codegen-server/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX - общий интерфейс для pgxpool.Pool и pgx.Tx, чтобы репозитории
// работали и с пулом, и внутри транзакции.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// AppRepository определяет доступ к приложениям.
//
//go:generate mockery --name AppRepository --output ../mocks --outpkg mocks --case=underscore
type AppRepository interface {
	Create(ctx context.Context, app *models.App) error
	GetByID(ctx context.Context, id int64) (*models.App, error)
	// Update обновляет только непустые изменяемые поля (имя, deploy-ключ,
	// время деплоя, приоритет).
	Update(ctx context.Context, app *models.App) error
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64, offset, limit int) ([]models.App, error)
	ListByPriority(ctx context.Context, priority int, offset, limit int) ([]models.App, error)
	List(ctx context.Context, offset, limit int) ([]models.App, error)
}

// ChatHistoryRepository определяет durable-хранилище истории диалогов.
//
//go:generate mockery --name ChatHistoryRepository --output ../mocks --outpkg mocks --case=underscore
type ChatHistoryRepository interface {
	Create(ctx context.Context, history *models.ChatHistory) error
	// ListRecentByApp возвращает последние limit сообщений приложения
	// в хронологическом порядке.
	ListRecentByApp(ctx context.Context, appID int64, limit int) ([]models.ChatHistory, error)
	// ListByAppBefore возвращает страницу сообщений строго старше составного
	// курсора (before, beforeID), от новых к старым.
	ListByAppBefore(ctx context.Context, appID int64, before time.Time, beforeID int64, limit int) ([]models.ChatHistory, error)
	DeleteByApp(ctx context.Context, appID int64) error
}
