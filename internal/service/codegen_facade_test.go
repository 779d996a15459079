package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"codegen-server/internal/mocks"
	"codegen-server/internal/models"
	"codegen-server/internal/service"
)

type facadeFixture struct {
	facade      *service.CodeGenFacade
	aiClient    *mocks.MockAIClient
	memoryStore *mocks.MockChatMemoryStore
	historyRepo *mocks.MockChatHistoryRepository
	outputRoot  string
}

func newFacadeFixture(t *testing.T) *facadeFixture {
	t.Helper()

	aiClient := mocks.NewMockAIClient(t)
	memoryStore := mocks.NewMockChatMemoryStore(t)
	historyRepo := mocks.NewMockChatHistoryRepository(t)

	cache := service.NewSessionCache(service.SessionCacheConfig{
		MaxEntries:  100,
		AccessTTL:   time.Minute,
		WriteTTL:    time.Hour,
		MaxMessages: 20,
	}, memoryStore, historyRepo, zap.NewNop())
	t.Cleanup(cache.Stop)

	outputRoot := t.TempDir()
	saver := service.NewCodeSaver(outputRoot, zap.NewNop())

	return &facadeFixture{
		facade:      service.NewCodeGenFacade(aiClient, cache, memoryStore, saver, zap.NewNop()),
		aiClient:    aiClient,
		memoryStore: memoryStore,
		historyRepo: historyRepo,
		outputRoot:  outputRoot,
	}
}

// expectEmptySessionLoad настраивает наполнение новой сессии пустым окном.
func (f *facadeFixture) expectEmptySessionLoad(appID int64) {
	f.memoryStore.On("LoadMessages", mock.Anything, appID).Return(nil, nil).Once()
	f.historyRepo.On("ListRecentByApp", mock.Anything, appID, 20).Return(nil, nil).Once()
}

func TestCodeGenFacade_GenerateAndSave_HTML(t *testing.T) {
	f := newFacadeFixture(t)
	f.expectEmptySessionLoad(1)

	raw := "```html\n<html><body>Generated</body></html>\n```"
	f.aiClient.On("GenerateCode", mock.Anything, mock.Anything, mock.Anything, "make a page", mock.Anything).
		Return(raw, service.UsageInfo{TotalTokens: 100}, nil).Once()
	f.memoryStore.On("SaveMessages", mock.Anything, int64(1), mock.Anything).Return(nil).Once()

	result, dir, err := f.facade.GenerateAndSave(context.Background(), 1, models.CodeGenTypeHTML, "make a page")
	require.NoError(t, err)

	assert.Equal(t, "<html><body>Generated</body></html>", result.HTML)
	data, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, result.HTML, string(data))
}

func TestCodeGenFacade_GenerateAndSave_MultiFile(t *testing.T) {
	f := newFacadeFixture(t)
	f.expectEmptySessionLoad(2)

	raw := "```html\n<html></html>\n```\n```css\nbody {}\n```\n```js\nvoid 0;\n```"
	f.aiClient.On("GenerateCode", mock.Anything, mock.Anything, mock.Anything, "app", mock.Anything).
		Return(raw, service.UsageInfo{}, nil).Once()
	f.memoryStore.On("SaveMessages", mock.Anything, int64(2), mock.Anything).Return(nil).Once()

	result, dir, err := f.facade.GenerateAndSave(context.Background(), 2, models.CodeGenTypeMultiFile, "app")
	require.NoError(t, err)

	assert.Equal(t, "body {}", result.CSS)
	for _, name := range []string{"index.html", "style.css", "script.js"} {
		_, statErr := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, statErr, name)
	}
}

func TestCodeGenFacade_GenerateAndSave_ProjectModeRejected(t *testing.T) {
	f := newFacadeFixture(t)

	_, _, err := f.facade.GenerateAndSave(context.Background(), 3, models.CodeGenTypeProject, "msg")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrGeneration)

	// До модели дело не дошло
	f.aiClient.AssertNotCalled(t, "GenerateCode")
}

func TestCodeGenFacade_GenerateAndSave_UnknownModeRejected(t *testing.T) {
	f := newFacadeFixture(t)

	_, _, err := f.facade.GenerateAndSave(context.Background(), 3, models.CodeGenType("vue"), "msg")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrGeneration)
	f.aiClient.AssertNotCalled(t, "GenerateCode")
}

func TestCodeGenFacade_GenerateAndSave_ParseFailure(t *testing.T) {
	f := newFacadeFixture(t)
	f.expectEmptySessionLoad(4)

	f.aiClient.On("GenerateCode", mock.Anything, mock.Anything, mock.Anything, "msg", mock.Anything).
		Return("```css\nbody {}\n```", service.UsageInfo{}, nil).Once()

	_, _, err := f.facade.GenerateAndSave(context.Background(), 4, models.CodeGenTypeMultiFile, "msg")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrParse)

	// Каталог материализации не создан
	_, statErr := os.Stat(filepath.Join(f.outputRoot, "multi_file_4"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestCodeGenFacade_Stream_DeliversChunksAndSaves(t *testing.T) {
	f := newFacadeFixture(t)
	f.expectEmptySessionLoad(5)

	chunks := []string{"```html\n", "<html><body>S", "treamed</body></html>\n", "```"}
	f.aiClient.On("GenerateCodeStream", mock.Anything, mock.Anything, mock.Anything, "msg", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			handler := args.Get(5).(func(string) error)
			for _, c := range chunks {
				require.NoError(t, handler(c))
			}
		}).
		Return(service.UsageInfo{TotalTokens: 50}, nil).Once()
	f.memoryStore.On("SaveMessages", mock.Anything, int64(5), mock.Anything).Return(nil).Once()

	stream := f.facade.GenerateAndSaveStream(context.Background(), 5, models.CodeGenTypeHTML, "msg")

	var received []string
	for chunk := range stream {
		require.NoError(t, chunk.Err)
		received = append(received, chunk.Content)
	}
	assert.Equal(t, chunks, received)

	data, err := os.ReadFile(filepath.Join(f.outputRoot, "html_5", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html><body>Streamed</body></html>", string(data))
}

func TestCodeGenFacade_Stream_ErrorAfterChunks(t *testing.T) {
	f := newFacadeFixture(t)
	f.expectEmptySessionLoad(6)

	genErr := errors.New("connection reset")
	f.aiClient.On("GenerateCodeStream", mock.Anything, mock.Anything, mock.Anything, "msg", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			handler := args.Get(5).(func(string) error)
			_ = handler("partial ")
			_ = handler("output")
		}).
		Return(service.UsageInfo{}, genErr).Once()

	stream := f.facade.GenerateAndSaveStream(context.Background(), 6, models.CodeGenTypeHTML, "msg")

	var received []string
	var terminal error
	for chunk := range stream {
		if chunk.Err != nil {
			terminal = chunk.Err
			break
		}
		received = append(received, chunk.Content)
	}

	// Уже доставленные чанки дошли, затем пришла терминальная ошибка
	assert.Equal(t, []string{"partial ", "output"}, received)
	require.Error(t, terminal)
	assert.ErrorIs(t, terminal, genErr)

	// Частичный текст не материализован
	_, statErr := os.Stat(filepath.Join(f.outputRoot, "html_6"))
	assert.True(t, os.IsNotExist(statErr))
	f.memoryStore.AssertNotCalled(t, "SaveMessages")
}

func TestCodeGenFacade_Stream_ConsumerCancellation(t *testing.T) {
	f := newFacadeFixture(t)
	f.expectEmptySessionLoad(10)

	// Модель отдает чанков больше, чем вмещает буфер канала, пока
	// обработчик не откажет из-за отмены контекста
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

	// Все горутины конвейера должны завершиться, даже если поток никто
	// не дочитывает
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	stream := f.facade.GenerateAndSaveStream(ctx, 10, models.CodeGenTypeHTML, "msg")

	// Потребитель уходит, не прочитав ни одного чанка
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

	// Частичный текст не материализован, окно сессии не обновлено
	_, statErr := os.Stat(filepath.Join(f.outputRoot, "html_10"))
	assert.True(t, os.IsNotExist(statErr))
	f.memoryStore.AssertNotCalled(t, "SaveMessages")
}

func TestCodeGenFacade_Stream_ProjectModeRejected(t *testing.T) {
	f := newFacadeFixture(t)

	stream := f.facade.GenerateAndSaveStream(context.Background(), 7, models.CodeGenTypeProject, "msg")

	chunk, ok := <-stream
	require.True(t, ok)
	assert.ErrorIs(t, chunk.Err, models.ErrGeneration)

	_, ok = <-stream
	assert.False(t, ok)
	f.aiClient.AssertNotCalled(t, "GenerateCodeStream")
}

func TestCodeGenFacade_Stream_EmptyMessageRejected(t *testing.T) {
	f := newFacadeFixture(t)

	stream := f.facade.GenerateAndSaveStream(context.Background(), 8, models.CodeGenTypeHTML, "   ")

	chunk := <-stream
	assert.ErrorIs(t, chunk.Err, models.ErrValidation)
}

func TestCodeGenFacade_SecondTurnCarriesHistory(t *testing.T) {
	f := newFacadeFixture(t)
	f.expectEmptySessionLoad(9)

	raw := "```html\n<html>v1</html>\n```"
	f.aiClient.On("GenerateCode", mock.Anything, mock.Anything, mock.Anything, "first", mock.Anything).
		Return(raw, service.UsageInfo{}, nil).Once()
	f.memoryStore.On("SaveMessages", mock.Anything, int64(9), mock.Anything).Return(nil).Twice()

	_, _, err := f.facade.GenerateAndSave(context.Background(), 9, models.CodeGenTypeHTML, "first")
	require.NoError(t, err)

	// Второй ход должен получить окно с обеими репликами первого хода
	f.aiClient.On("GenerateCode", mock.Anything, mock.Anything, mock.MatchedBy(func(history []models.ChatMessage) bool {
		return len(history) == 2 &&
			history[0].Role == models.MessageTypeUser && history[0].Content == "first" &&
			history[1].Role == models.MessageTypeAI
	}), "second", mock.Anything).
		Return("```html\n<html>v2</html>\n```", service.UsageInfo{}, nil).Once()

	_, _, err = f.facade.GenerateAndSave(context.Background(), 9, models.CodeGenTypeHTML, "second")
	require.NoError(t, err)
	f.aiClient.AssertExpectations(t)
}
