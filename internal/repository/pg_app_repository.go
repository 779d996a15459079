package repository

import (
	"context"
	"errors"
	"fmt"

	"codegen-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	createAppQuery = `
        INSERT INTO apps (app_name, cover, init_prompt, code_gen_type, priority, user_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	getAppByIDQuery = `
        SELECT id, app_name, cover, init_prompt, code_gen_type, deploy_key,
               deployed_time, priority, user_id, created_at, updated_at
        FROM apps WHERE id = $1`

	updateAppQuery = `
        UPDATE apps SET
            app_name      = COALESCE(NULLIF($2, ''), app_name),
            deploy_key    = COALESCE(NULLIF($3, ''), deploy_key),
            deployed_time = COALESCE($4, deployed_time),
            priority      = COALESCE(NULLIF($5, 0), priority),
            updated_at    = NOW()
        WHERE id = $1`

	deleteAppQuery = `DELETE FROM apps WHERE id = $1`

	listAppsBaseQuery = `
        SELECT id, app_name, cover, init_prompt, code_gen_type, deploy_key,
               deployed_time, priority, user_id, created_at, updated_at
        FROM apps`
)

// Compile-time check to ensure pgAppRepository implements AppRepository
var _ AppRepository = (*pgAppRepository)(nil)

type pgAppRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgAppRepository создает PostgreSQL-реализацию AppRepository.
func NewPgAppRepository(db DBTX, logger *zap.Logger) AppRepository {
	return &pgAppRepository{
		db:     db,
		logger: logger.Named("PgAppRepo"),
	}
}

func (r *pgAppRepository) Create(ctx context.Context, app *models.App) error {
	err := r.db.QueryRow(ctx, createAppQuery,
		app.AppName, app.Cover, app.InitPrompt, app.CodeGenType, app.Priority, app.UserID,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create app", zap.Error(err), zap.Int64("userID", app.UserID))
		return fmt.Errorf("failed to create app: %w", err)
	}
	r.logger.Info("App created", zap.Int64("appID", app.ID), zap.Int64("userID", app.UserID))
	return nil
}

func (r *pgAppRepository) GetByID(ctx context.Context, id int64) (*models.App, error) {
	var app models.App
	err := pgxscan.Get(ctx, r.db, &app, getAppByIDQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("App not found", zap.Int64("appID", id))
			return nil, models.ErrAppNotFound
		}
		r.logger.Error("Failed to get app by id", zap.Error(err), zap.Int64("appID", id))
		return nil, fmt.Errorf("failed to get app by id: %w", err)
	}
	return &app, nil
}

func (r *pgAppRepository) Update(ctx context.Context, app *models.App) error {
	tag, err := r.db.Exec(ctx, updateAppQuery,
		app.ID, app.AppName, app.DeployKey, app.DeployedTime, app.Priority)
	if err != nil {
		r.logger.Error("Failed to update app", zap.Error(err), zap.Int64("appID", app.ID))
		return fmt.Errorf("failed to update app: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrAppNotFound
	}
	return nil
}

func (r *pgAppRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, deleteAppQuery, id)
	if err != nil {
		r.logger.Error("Failed to delete app", zap.Error(err), zap.Int64("appID", id))
		return fmt.Errorf("failed to delete app: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrAppNotFound
	}
	r.logger.Info("App deleted", zap.Int64("appID", id))
	return nil
}

func (r *pgAppRepository) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]models.App, error) {
	var apps []models.App
	query := listAppsBaseQuery + ` WHERE user_id = $1 ORDER BY created_at DESC OFFSET $2 LIMIT $3`
	if err := pgxscan.Select(ctx, r.db, &apps, query, userID, offset, limit); err != nil {
		r.logger.Error("Failed to list apps by user", zap.Error(err), zap.Int64("userID", userID))
		return nil, fmt.Errorf("failed to list apps by user: %w", err)
	}
	return apps, nil
}

func (r *pgAppRepository) ListByPriority(ctx context.Context, priority int, offset, limit int) ([]models.App, error) {
	var apps []models.App
	query := listAppsBaseQuery + ` WHERE priority = $1 ORDER BY created_at DESC OFFSET $2 LIMIT $3`
	if err := pgxscan.Select(ctx, r.db, &apps, query, priority, offset, limit); err != nil {
		r.logger.Error("Failed to list apps by priority", zap.Error(err), zap.Int("priority", priority))
		return nil, fmt.Errorf("failed to list apps by priority: %w", err)
	}
	return apps, nil
}

func (r *pgAppRepository) List(ctx context.Context, offset, limit int) ([]models.App, error) {
	var apps []models.App
	query := listAppsBaseQuery + ` ORDER BY created_at DESC OFFSET $1 LIMIT $2`
	if err := pgxscan.Select(ctx, r.db, &apps, query, offset, limit); err != nil {
		r.logger.Error("Failed to list apps", zap.Error(err))
		return nil, fmt.Errorf("failed to list apps: %w", err)
	}
	return apps, nil
}
