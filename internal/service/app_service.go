package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"codegen-server/internal/messaging"
	"codegen-server/internal/models"
	"codegen-server/internal/repository"
	"codegen-server/internal/utils"
)

const (
	deployKeyLength  = 6
	defaultPageSize  = 10
	maxAppPageSize   = 20
	maxAppNameLength = 64
)

// AppService - операции жизненного цикла приложений: создание, генерация
// кода в диалоге, деплой.
//
//go:generate mockery --name AppService --output ../mocks --outpkg mocks --case=underscore
type AppService interface {
	CreateApp(ctx context.Context, userID int64, initPrompt string) (*models.App, error)
	GetApp(ctx context.Context, appID int64) (*models.App, error)
	// UpdateAppName переименовывает приложение; доступно только владельцу.
	UpdateAppName(ctx context.Context, appID, userID int64, appName string) (*models.App, error)
	// DeleteApp удаляет приложение вместе с историей диалога и сессиями.
	DeleteApp(ctx context.Context, appID, userID int64, isAdmin bool) error
	ListMyApps(ctx context.Context, userID int64, page, pageSize int) ([]models.App, error)
	// ListGoodApps возвращает витрину избранных приложений.
	ListGoodApps(ctx context.Context, page, pageSize int) ([]models.App, error)
	// ListAllApps - админский список всех приложений.
	ListAllApps(ctx context.Context, page, pageSize int) ([]models.App, error)
	// ChatToGenCode запускает потоковую генерацию кода по сообщению
	// пользователя. Обе реплики диалога (и ошибка генерации) сохраняются
	// в durable-историю.
	ChatToGenCode(ctx context.Context, appID, userID int64, message string) (<-chan StreamChunk, error)
	// DeployApp публикует сгенерированный код приложения и возвращает
	// URL вида {domain}/{deployKey}/.
	DeployApp(ctx context.Context, appID, userID int64) (string, error)
}

type appService struct {
	appRepo        repository.AppRepository
	historyService ChatHistoryService
	facade         *CodeGenFacade
	sessionCache   *SessionCache
	publisher      messaging.AppEventPublisher
	outputRoot     string
	deployRoot     string
	deployDomain   string
	logger         *zap.Logger
}

var _ AppService = (*appService)(nil)

// NewAppService создает сервис приложений.
func NewAppService(
	appRepo repository.AppRepository,
	historyService ChatHistoryService,
	facade *CodeGenFacade,
	sessionCache *SessionCache,
	publisher messaging.AppEventPublisher,
	outputRoot, deployRoot, deployDomain string,
	logger *zap.Logger,
) AppService {
	return &appService{
		appRepo:        appRepo,
		historyService: historyService,
		facade:         facade,
		sessionCache:   sessionCache,
		publisher:      publisher,
		outputRoot:     outputRoot,
		deployRoot:     deployRoot,
		deployDomain:   strings.TrimSuffix(deployDomain, "/"),
		logger:         logger.Named("AppService"),
	}
}

func (s *appService) CreateApp(ctx context.Context, userID int64, initPrompt string) (*models.App, error) {
	initPrompt = strings.TrimSpace(initPrompt)
	if initPrompt == "" {
		return nil, fmt.Errorf("%w: initPrompt не может быть пустым", models.ErrInvalidInput)
	}

	// Имя по умолчанию - первые символы промпта (по рунам, не байтам)
	name := initPrompt
	if runes := []rune(name); len(runes) > models.AppNameMaxLen {
		name = string(runes[:models.AppNameMaxLen])
	}

	app := &models.App{
		AppName:     name,
		InitPrompt:  initPrompt,
		CodeGenType: string(models.CodeGenTypeMultiFile),
		UserID:      userID,
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		s.logger.Error("Не удалось создать приложение", zap.Int64("userID", userID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Приложение создано",
		zap.Int64("appID", app.ID),
		zap.Int64("userID", userID),
		zap.String("codeGenType", app.CodeGenType))
	return app, nil
}

func (s *appService) GetApp(ctx context.Context, appID int64) (*models.App, error) {
	return s.appRepo.GetByID(ctx, appID)
}

func (s *appService) UpdateAppName(ctx context.Context, appID, userID int64, appName string) (*models.App, error) {
	appName = strings.TrimSpace(appName)
	if appName == "" {
		return nil, fmt.Errorf("%w: имя приложения не может быть пустым", models.ErrInvalidInput)
	}
	if len([]rune(appName)) > maxAppNameLength {
		return nil, fmt.Errorf("%w: имя приложения слишком длинное", models.ErrInvalidInput)
	}

	app, err := s.appRepo.GetByID(ctx, appID)
	if err != nil {
		return nil, err
	}
	if app.UserID != userID {
		return nil, fmt.Errorf("%w: изменять приложение может только владелец", models.ErrForbidden)
	}

	app.AppName = appName
	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *appService) DeleteApp(ctx context.Context, appID, userID int64, isAdmin bool) error {
	app, err := s.appRepo.GetByID(ctx, appID)
	if err != nil {
		return err
	}
	if app.UserID != userID && !isAdmin {
		return fmt.Errorf("%w: удалять приложение может только владелец", models.ErrForbidden)
	}

	if err := s.appRepo.Delete(ctx, appID); err != nil {
		return err
	}

	// Каскад: история и сессии чистятся best-effort, приложение уже удалено
	if err := s.historyService.DeleteByAppID(ctx, appID); err != nil {
		s.logger.Warn("Не удалось удалить историю удаленного приложения",
			zap.Int64("appID", appID), zap.Error(err))
	}
	s.sessionCache.Invalidate(ctx, appID)

	s.publishEvent(ctx, messaging.AppEventPayload{
		EventType: messaging.EventAppDeleted,
		AppID:     appID,
		UserID:    app.UserID,
	})

	s.logger.Info("Приложение удалено", zap.Int64("appID", appID), zap.Int64("userID", userID))
	return nil
}

// normalizePage приводит параметры пагинации к допустимым значениям.
func normalizePage(page, pageSize int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxAppPageSize {
		pageSize = maxAppPageSize
	}
	return (page - 1) * pageSize, pageSize
}

func (s *appService) ListMyApps(ctx context.Context, userID int64, page, pageSize int) ([]models.App, error) {
	offset, limit := normalizePage(page, pageSize)
	return s.appRepo.ListByUser(ctx, userID, offset, limit)
}

func (s *appService) ListGoodApps(ctx context.Context, page, pageSize int) ([]models.App, error) {
	offset, limit := normalizePage(page, pageSize)
	return s.appRepo.ListByPriority(ctx, models.GoodAppPriority, offset, limit)
}

func (s *appService) ListAllApps(ctx context.Context, page, pageSize int) ([]models.App, error) {
	offset, limit := normalizePage(page, pageSize)
	return s.appRepo.List(ctx, offset, limit)
}

func (s *appService) ChatToGenCode(ctx context.Context, appID, userID int64, message string) (<-chan StreamChunk, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: пустое сообщение пользователя", models.ErrInvalidInput)
	}

	app, err := s.appRepo.GetByID(ctx, appID)
	if err != nil {
		return nil, err
	}
	if app.UserID != userID {
		return nil, fmt.Errorf("%w: генерировать код может только владелец приложения", models.ErrForbidden)
	}

	codeGenType, err := models.ParseCodeGenType(app.CodeGenType)
	if err != nil {
		return nil, err
	}

	// Реплика пользователя пишется в историю до запуска генерации
	if err := s.historyService.AddChatMessage(ctx, appID, userID, message, models.MessageTypeUser); err != nil {
		s.logger.Warn("Не удалось сохранить реплику пользователя",
			zap.Int64("appID", appID), zap.Error(err))
	}

	upstream := s.facade.GenerateAndSaveStream(ctx, appID, codeGenType, message)
	out := make(chan StreamChunk, 16)

	go func() {
		defer close(out)

		// История диалога фиксируется и после отключения клиента
		persistCtx := context.WithoutCancel(ctx)

		var accumulated strings.Builder
		for chunk := range upstream {
			if chunk.Err != nil {
				// Ошибка генерации тоже становится репликой ai, чтобы
				// диалог отражал неудачную попытку
				s.persistAIError(persistCtx, appID, userID, chunk.Err)
				select {
				case out <- chunk:
				case <-ctx.Done():
				}
				return
			}
			accumulated.WriteString(chunk.Content)
			select {
			case out <- chunk:
			case <-ctx.Done():
				// Потребитель отключился, прерванная генерация фиксируется
				// в истории как неудачная попытка
				s.persistAIError(persistCtx, appID, userID, ctx.Err())
				return
			}
		}

		if err := s.historyService.AddChatMessage(persistCtx, appID, userID, accumulated.String(), models.MessageTypeAI); err != nil {
			s.logger.Warn("Не удалось сохранить реплику модели",
				zap.Int64("appID", appID), zap.Error(err))
		}

		s.publishEvent(persistCtx, messaging.AppEventPayload{
			EventType:   messaging.EventAppGenerated,
			AppID:       appID,
			UserID:      userID,
			CodeGenType: app.CodeGenType,
		})
	}()

	return out, nil
}

// persistAIError фиксирует неудачную попытку генерации как реплику ai.
func (s *appService) persistAIError(ctx context.Context, appID, userID int64, genErr error) {
	errMsg := fmt.Sprintf("AI reply failed: %v", genErr)
	if err := s.historyService.AddChatMessage(ctx, appID, userID, errMsg, models.MessageTypeAI); err != nil {
		s.logger.Warn("Не удалось сохранить реплику об ошибке",
			zap.Int64("appID", appID), zap.Error(err))
	}
}

func (s *appService) DeployApp(ctx context.Context, appID, userID int64) (string, error) {
	app, err := s.appRepo.GetByID(ctx, appID)
	if err != nil {
		return "", err
	}
	if app.UserID != userID {
		return "", fmt.Errorf("%w: деплоить приложение может только владелец", models.ErrForbidden)
	}

	codeGenType, err := models.ParseCodeGenType(app.CodeGenType)
	if err != nil {
		return "", err
	}

	sourceDir := filepath.Join(s.outputRoot, models.OutputDirName(codeGenType, appID))
	if _, err := os.Stat(sourceDir); err != nil {
		return "", fmt.Errorf("%w: код приложения еще не сгенерирован", models.ErrNotFound)
	}

	// Существующий ключ переиспользуется, чтобы URL был стабильным
	deployKey := app.DeployKey
	if deployKey == "" {
		deployKey = utils.RandomString(deployKeyLength)
	}

	targetDir := filepath.Join(s.deployRoot, deployKey)
	if err := utils.CopyDir(sourceDir, targetDir); err != nil {
		return "", fmt.Errorf("%w: не удалось скопировать файлы деплоя: %v", models.ErrStorage, err)
	}

	now := time.Now()
	app.DeployKey = deployKey
	app.DeployedTime = &now
	if err := s.appRepo.Update(ctx, app); err != nil {
		return "", err
	}

	s.publishEvent(ctx, messaging.AppEventPayload{
		EventType: messaging.EventAppDeployed,
		AppID:     appID,
		UserID:    userID,
		DeployKey: deployKey,
	})

	url := fmt.Sprintf("%s/%s/", s.deployDomain, deployKey)
	s.logger.Info("Приложение задеплоено",
		zap.Int64("appID", appID),
		zap.String("deployKey", deployKey),
		zap.String("url", url))
	return url, nil
}

// publishEvent публикует событие best-effort: ошибка брокера не влияет
// на основную операцию.
func (s *appService) publishEvent(ctx context.Context, payload messaging.AppEventPayload) {
	payload.Timestamp = time.Now()
	if err := s.publisher.PublishAppEvent(ctx, payload); err != nil {
		s.logger.Warn("Не удалось опубликовать событие приложения",
			zap.String("eventType", payload.EventType),
			zap.Int64("appID", payload.AppID),
			zap.Error(err))
	}
}
