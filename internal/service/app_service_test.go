package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"codegen-server/internal/messaging"
	"codegen-server/internal/mocks"
	"codegen-server/internal/models"
	"codegen-server/internal/service"
)

type appServiceFixture struct {
	svc            service.AppService
	appRepo        *mocks.MockAppRepository
	historyService *mocks.MockChatHistoryService
	aiClient       *mocks.MockAIClient
	memoryStore    *mocks.MockChatMemoryStore
	historyRepo    *mocks.MockChatHistoryRepository
	publisher      *mocks.MockAppEventPublisher
	outputRoot     string
	deployRoot     string
}

func newAppServiceFixture(t *testing.T) *appServiceFixture {
	t.Helper()

	appRepo := mocks.NewMockAppRepository(t)
	historyService := mocks.NewMockChatHistoryService(t)
	aiClient := mocks.NewMockAIClient(t)
	memoryStore := mocks.NewMockChatMemoryStore(t)
	historyRepo := mocks.NewMockChatHistoryRepository(t)
	publisher := mocks.NewMockAppEventPublisher(t)

	cache := service.NewSessionCache(service.SessionCacheConfig{
		MaxEntries:  100,
		AccessTTL:   time.Minute,
		WriteTTL:    time.Hour,
		MaxMessages: 20,
	}, memoryStore, historyRepo, zap.NewNop())
	t.Cleanup(cache.Stop)

	outputRoot := t.TempDir()
	deployRoot := t.TempDir()
	saver := service.NewCodeSaver(outputRoot, zap.NewNop())
	facade := service.NewCodeGenFacade(aiClient, cache, memoryStore, saver, zap.NewNop())

	svc := service.NewAppService(
		appRepo, historyService, facade, cache, publisher,
		outputRoot, deployRoot, "http://localhost",
		zap.NewNop(),
	)

	return &appServiceFixture{
		svc:            svc,
		appRepo:        appRepo,
		historyService: historyService,
		aiClient:       aiClient,
		memoryStore:    memoryStore,
		historyRepo:    historyRepo,
		publisher:      publisher,
		outputRoot:     outputRoot,
		deployRoot:     deployRoot,
	}
}

func TestAppService_CreateApp(t *testing.T) {
	f := newAppServiceFixture(t)

	prompt := "сделай лендинг для кофейни с меню и формой заказа"
	f.appRepo.On("Create", mock.Anything, mock.MatchedBy(func(app *models.App) bool {
		return app.UserID == 10 &&
			app.InitPrompt == prompt &&
			app.CodeGenType == string(models.CodeGenTypeMultiFile) &&
			len([]rune(app.AppName)) == models.AppNameMaxLen
	})).Return(nil).Once()

	app, err := f.svc.CreateApp(context.Background(), 10, prompt)
	require.NoError(t, err)
	assert.Equal(t, string([]rune(prompt)[:models.AppNameMaxLen]), app.AppName)
}

func TestAppService_CreateApp_EmptyPrompt(t *testing.T) {
	f := newAppServiceFixture(t)

	_, err := f.svc.CreateApp(context.Background(), 10, "   ")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestAppService_UpdateAppName_OwnerOnly(t *testing.T) {
	f := newAppServiceFixture(t)

	f.appRepo.On("GetByID", mock.Anything, int64(1)).
		Return(&models.App{ID: 1, UserID: 10}, nil).Once()

	_, err := f.svc.UpdateAppName(context.Background(), 1, 99, "new name")
	assert.ErrorIs(t, err, models.ErrForbidden)
	f.appRepo.AssertNotCalled(t, "Update")
}

func TestAppService_DeleteApp_Cascades(t *testing.T) {
	f := newAppServiceFixture(t)

	f.appRepo.On("GetByID", mock.Anything, int64(1)).
		Return(&models.App{ID: 1, UserID: 10}, nil).Once()
	f.appRepo.On("Delete", mock.Anything, int64(1)).Return(nil).Once()
	f.historyService.On("DeleteByAppID", mock.Anything, int64(1)).Return(nil).Once()
	f.memoryStore.On("DeleteMessages", mock.Anything, int64(1)).Return(nil).Once()
	f.publisher.On("PublishAppEvent", mock.Anything, mock.MatchedBy(func(p messaging.AppEventPayload) bool {
		return p.EventType == messaging.EventAppDeleted && p.AppID == 1
	})).Return(nil).Once()

	err := f.svc.DeleteApp(context.Background(), 1, 10, false)
	require.NoError(t, err)
	f.historyService.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestAppService_DeleteApp_AdminBypassesOwnership(t *testing.T) {
	f := newAppServiceFixture(t)

	f.appRepo.On("GetByID", mock.Anything, int64(2)).
		Return(&models.App{ID: 2, UserID: 10}, nil).Once()
	f.appRepo.On("Delete", mock.Anything, int64(2)).Return(nil).Once()
	f.historyService.On("DeleteByAppID", mock.Anything, int64(2)).Return(nil).Once()
	f.memoryStore.On("DeleteMessages", mock.Anything, int64(2)).Return(nil).Once()
	f.publisher.On("PublishAppEvent", mock.Anything, mock.Anything).Return(nil).Once()

	err := f.svc.DeleteApp(context.Background(), 2, 99, true)
	assert.NoError(t, err)
}

func TestAppService_DeployApp(t *testing.T) {
	f := newAppServiceFixture(t)

	app := &models.App{ID: 1, UserID: 10, CodeGenType: string(models.CodeGenTypeHTML)}
	f.appRepo.On("GetByID", mock.Anything, int64(1)).Return(app, nil).Once()
	f.appRepo.On("Update", mock.Anything, mock.MatchedBy(func(a *models.App) bool {
		return a.DeployKey != "" && a.DeployedTime != nil
	})).Return(nil).Once()
	f.publisher.On("PublishAppEvent", mock.Anything, mock.MatchedBy(func(p messaging.AppEventPayload) bool {
		return p.EventType == messaging.EventAppDeployed
	})).Return(nil).Once()

	// Сгенерированный код уже лежит в каталоге материализации
	sourceDir := filepath.Join(f.outputRoot, "html_1")
	require.NoError(t, os.MkdirAll(sourceDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "index.html"), []byte("<html></html>"), 0o644))

	url, err := f.svc.DeployApp(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://localhost/"))
	assert.True(t, strings.HasSuffix(url, "/"))

	deployKey := strings.TrimSuffix(strings.TrimPrefix(url, "http://localhost/"), "/")
	assert.Len(t, deployKey, 6)

	data, err := os.ReadFile(filepath.Join(f.deployRoot, deployKey, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))
}

func TestAppService_DeployApp_ReusesExistingKey(t *testing.T) {
	f := newAppServiceFixture(t)

	app := &models.App{ID: 2, UserID: 10, CodeGenType: string(models.CodeGenTypeHTML), DeployKey: "abc123"}
	f.appRepo.On("GetByID", mock.Anything, int64(2)).Return(app, nil).Once()
	f.appRepo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
	f.publisher.On("PublishAppEvent", mock.Anything, mock.Anything).Return(nil).Once()

	sourceDir := filepath.Join(f.outputRoot, "html_2")
	require.NoError(t, os.MkdirAll(sourceDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "index.html"), []byte("x"), 0o644))

	url, err := f.svc.DeployApp(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost/abc123/", url)
}

func TestAppService_DeployApp_NoGeneratedCode(t *testing.T) {
	f := newAppServiceFixture(t)

	f.appRepo.On("GetByID", mock.Anything, int64(3)).
		Return(&models.App{ID: 3, UserID: 10, CodeGenType: string(models.CodeGenTypeHTML)}, nil).Once()

	_, err := f.svc.DeployApp(context.Background(), 3, 10)
	assert.ErrorIs(t, err, models.ErrNotFound)
	f.appRepo.AssertNotCalled(t, "Update")
}

func TestAppService_ChatToGenCode_PersistsBothTurns(t *testing.T) {
	f := newAppServiceFixture(t)

	app := &models.App{ID: 1, UserID: 10, CodeGenType: string(models.CodeGenTypeHTML)}
	f.appRepo.On("GetByID", mock.Anything, int64(1)).Return(app, nil).Once()

	raw := "```html\n<html></html>\n```"
	f.historyService.On("AddChatMessage", mock.Anything, int64(1), int64(10), "make it", models.MessageTypeUser).
		Return(nil).Once()
	f.historyService.On("AddChatMessage", mock.Anything, int64(1), int64(10), raw, models.MessageTypeAI).
		Return(nil).Once()

	f.memoryStore.On("LoadMessages", mock.Anything, int64(1)).Return(nil, nil).Once()
	f.historyRepo.On("ListRecentByApp", mock.Anything, int64(1), 20).Return(nil, nil).Once()
	f.memoryStore.On("SaveMessages", mock.Anything, int64(1), mock.Anything).Return(nil).Once()

	f.aiClient.On("GenerateCodeStream", mock.Anything, mock.Anything, mock.Anything, "make it", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			handler := args.Get(5).(func(string) error)
			_ = handler(raw)
		}).
		Return(service.UsageInfo{}, nil).Once()

	f.publisher.On("PublishAppEvent", mock.Anything, mock.MatchedBy(func(p messaging.AppEventPayload) bool {
		return p.EventType == messaging.EventAppGenerated && p.AppID == 1
	})).Return(nil).Once()

	stream, err := f.svc.ChatToGenCode(context.Background(), 1, 10, "make it")
	require.NoError(t, err)

	var full strings.Builder
	for chunk := range stream {
		require.NoError(t, chunk.Err)
		full.WriteString(chunk.Content)
	}
	assert.Equal(t, raw, full.String())
	f.historyService.AssertExpectations(t)
}

func TestAppService_ChatToGenCode_ErrorTurnPersisted(t *testing.T) {
	f := newAppServiceFixture(t)

	app := &models.App{ID: 2, UserID: 10, CodeGenType: string(models.CodeGenTypeHTML)}
	f.appRepo.On("GetByID", mock.Anything, int64(2)).Return(app, nil).Once()

	f.historyService.On("AddChatMessage", mock.Anything, int64(2), int64(10), "msg", models.MessageTypeUser).
		Return(nil).Once()
	// Ошибка генерации превращается в реплику ai
	f.historyService.On("AddChatMessage", mock.Anything, int64(2), int64(10), mock.MatchedBy(func(m string) bool {
		return strings.HasPrefix(m, "AI reply failed:")
	}), models.MessageTypeAI).Return(nil).Once()

	f.memoryStore.On("LoadMessages", mock.Anything, int64(2)).Return(nil, nil).Once()
	f.historyRepo.On("ListRecentByApp", mock.Anything, int64(2), 20).Return(nil, nil).Once()

	f.aiClient.On("GenerateCodeStream", mock.Anything, mock.Anything, mock.Anything, "msg", mock.Anything, mock.Anything).
		Return(service.UsageInfo{}, errors.New("model unavailable")).Once()

	stream, err := f.svc.ChatToGenCode(context.Background(), 2, 10, "msg")
	require.NoError(t, err)

	var terminal error
	for chunk := range stream {
		if chunk.Err != nil {
			terminal = chunk.Err
		}
	}
	require.Error(t, terminal)
	f.historyService.AssertExpectations(t)
	f.publisher.AssertNotCalled(t, "PublishAppEvent")
}

func TestAppService_ChatToGenCode_ConsumerCancellation(t *testing.T) {
	f := newAppServiceFixture(t)

	app := &models.App{ID: 4, UserID: 10, CodeGenType: string(models.CodeGenTypeHTML)}
	f.appRepo.On("GetByID", mock.Anything, int64(4)).Return(app, nil).Once()

	f.historyService.On("AddChatMessage", mock.Anything, int64(4), int64(10), "msg", models.MessageTypeUser).
		Return(nil).Once()
	// Прерванная генерация фиксируется в истории как неудачная попытка
	f.historyService.On("AddChatMessage", mock.Anything, int64(4), int64(10), mock.MatchedBy(func(m string) bool {
		return strings.HasPrefix(m, "AI reply failed:")
	}), models.MessageTypeAI).Return(nil).Once()

	f.memoryStore.On("LoadMessages", mock.Anything, int64(4)).Return(nil, nil).Once()
	f.historyRepo.On("ListRecentByApp", mock.Anything, int64(4), 20).Return(nil, nil).Once()

	f.aiClient.On("GenerateCodeStream", mock.Anything, mock.Anything, mock.Anything, "msg", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			handler := args.Get(5).(func(string) error)
			for i := 0; i < 100; i++ {
				if err := handler("chunk "); err != nil {
					return
				}
			}
		}).
		Return(service.UsageInfo{}, context.Canceled).Once()

	// Обе горутины конвейера должны завершиться, даже если клиент ушел,
	// не читая поток
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	stream, err := f.svc.ChatToGenCode(ctx, 4, 10, "msg")
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	cancel()

	drained := make(chan struct{})
	go func() {
		for range stream {
		}
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(2 * time.Second):
		t.Fatal("поток не закрылся после отмены контекста")
	}

	f.historyService.AssertExpectations(t)
	f.publisher.AssertNotCalled(t, "PublishAppEvent")
}

func TestAppService_ChatToGenCode_OwnerOnly(t *testing.T) {
	f := newAppServiceFixture(t)

	f.appRepo.On("GetByID", mock.Anything, int64(3)).
		Return(&models.App{ID: 3, UserID: 10, CodeGenType: string(models.CodeGenTypeHTML)}, nil).Once()

	_, err := f.svc.ChatToGenCode(context.Background(), 3, 99, "msg")
	assert.ErrorIs(t, err, models.ErrForbidden)
	f.aiClient.AssertNotCalled(t, "GenerateCodeStream")
}
