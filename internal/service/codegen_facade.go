package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"codegen-server/internal/models"
	"codegen-server/internal/repository"
)

// StreamChunk - элемент потока генерации. Либо очередной фрагмент текста
// модели, либо терминальная ошибка. После чанка с Err канал закрывается.
type StreamChunk struct {
	Content string
	Err     error
}

// CodeGenFacade - единая точка входа конвейера генерации: сессия,
// вызов модели, парсинг и материализация.
type CodeGenFacade struct {
	aiClient     AIClient
	sessionCache *SessionCache
	memoryStore  repository.ChatMemoryStore
	saver        *CodeSaver
	logger       *zap.Logger
}

// NewCodeGenFacade создает фасад конвейера генерации.
func NewCodeGenFacade(
	aiClient AIClient,
	sessionCache *SessionCache,
	memoryStore repository.ChatMemoryStore,
	saver *CodeSaver,
	logger *zap.Logger,
) *CodeGenFacade {
	return &CodeGenFacade{
		aiClient:     aiClient,
		sessionCache: sessionCache,
		memoryStore:  memoryStore,
		saver:        saver,
		logger:       logger.Named("CodeGenFacade"),
	}
}

// checkCodeGenType отклоняет режимы, которые конвейер не поддерживает,
// до обращения к модели.
func checkCodeGenType(codeGenType models.CodeGenType) error {
	switch codeGenType {
	case models.CodeGenTypeHTML, models.CodeGenTypeMultiFile:
		return nil
	case models.CodeGenTypeProject:
		return fmt.Errorf("%w: режим %q конвейером не поддерживается", models.ErrGeneration, codeGenType)
	default:
		return fmt.Errorf("%w: unknown code gen type %q", models.ErrGeneration, codeGenType)
	}
}

// GenerateAndSave выполняет синхронную генерацию: вызов модели, парсинг,
// материализация. Любая ошибка этапа прерывает конвейер. Возвращает
// результат и абсолютный путь каталога материализации.
func (f *CodeGenFacade) GenerateAndSave(ctx context.Context, appID int64, codeGenType models.CodeGenType, message string) (*models.CodeResult, string, error) {
	if err := checkCodeGenType(codeGenType); err != nil {
		return nil, "", err
	}
	if strings.TrimSpace(message) == "" {
		return nil, "", fmt.Errorf("%w: пустое сообщение пользователя", models.ErrValidation)
	}

	systemPrompt, err := systemPromptFor(codeGenType)
	if err != nil {
		return nil, "", err
	}

	session := f.sessionCache.GetOrCreate(ctx, appID, codeGenType)
	history := session.Messages()

	raw, usage, err := f.aiClient.GenerateCode(ctx, systemPrompt, history, message, GenerationParams{})
	if err != nil {
		return nil, "", err
	}
	f.logger.Info("Генерация завершена",
		zap.Int64("appID", appID),
		zap.String("type", string(codeGenType)),
		zap.Int("totalTokens", usage.TotalTokens))

	result, err := ParseCode(raw, codeGenType)
	if err != nil {
		return nil, "", err
	}

	dir, err := f.saver.Save(result, appID)
	if err != nil {
		return nil, "", err
	}

	f.rememberTurn(ctx, session, message, raw)

	return result, dir, nil
}

// GenerateAndSaveStream выполняет потоковую генерацию. Возвращает канал,
// в который по мере поступления пишутся фрагменты ответа модели; при
// ошибке последним элементом приходит чанк с Err, затем канал закрывается.
// Парсинг и материализация выполняются best-effort после успешного
// завершения потока: их ошибки логируются, но поток не фейлят.
func (f *CodeGenFacade) GenerateAndSaveStream(ctx context.Context, appID int64, codeGenType models.CodeGenType, message string) <-chan StreamChunk {
	out := make(chan StreamChunk, 16)

	if err := checkCodeGenType(codeGenType); err != nil {
		out <- StreamChunk{Err: err}
		close(out)
		return out
	}
	if strings.TrimSpace(message) == "" {
		out <- StreamChunk{Err: fmt.Errorf("%w: пустое сообщение пользователя", models.ErrValidation)}
		close(out)
		return out
	}

	systemPrompt, err := systemPromptFor(codeGenType)
	if err != nil {
		out <- StreamChunk{Err: err}
		close(out)
		return out
	}

	session := f.sessionCache.GetOrCreate(ctx, appID, codeGenType)
	history := session.Messages()

	go func() {
		defer close(out)

		var accumulated strings.Builder
		chunkHandler := func(chunk string) error {
			accumulated.WriteString(chunk)
			select {
			case out <- StreamChunk{Content: chunk}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		usage, err := f.aiClient.GenerateCodeStream(ctx, systemPrompt, history, message, GenerationParams{}, chunkHandler)
		if err != nil {
			f.logger.Warn("Потоковая генерация завершилась ошибкой",
				zap.Int64("appID", appID),
				zap.String("type", string(codeGenType)),
				zap.Error(err))
			// Потребитель мог уже отключиться, терминальный чанк его не ждет
			select {
			case out <- StreamChunk{Err: err}:
			case <-ctx.Done():
			}
			return
		}

		raw := accumulated.String()
		f.logger.Info("Потоковая генерация завершена",
			zap.Int64("appID", appID),
			zap.String("type", string(codeGenType)),
			zap.Int("responseLength", len(raw)),
			zap.Int("totalTokens", usage.TotalTokens))

		f.rememberTurn(ctx, session, message, raw)

		// Материализация после успешного потока best-effort: клиент уже
		// получил весь текст, ошибка сохранения не должна ломать стрим
		result, parseErr := ParseCode(raw, codeGenType)
		if parseErr != nil {
			f.logger.Warn("Не удалось распарсить результат потоковой генерации",
				zap.Int64("appID", appID), zap.Error(parseErr))
			return
		}
		if _, saveErr := f.saver.Save(result, appID); saveErr != nil {
			f.logger.Warn("Не удалось сохранить результат потоковой генерации",
				zap.Int64("appID", appID), zap.Error(saveErr))
		}
	}()

	return out
}

// rememberTurn добавляет пару user/ai в окно сессии и обновляет зеркало
// в Redis. Ошибка зеркала не фатальна.
func (f *CodeGenFacade) rememberTurn(ctx context.Context, session *ChatSession, userMessage, aiResponse string) {
	session.Append(models.MessageTypeUser, userMessage)
	session.Append(models.MessageTypeAI, aiResponse)
	if err := f.memoryStore.SaveMessages(ctx, session.AppID, session.Messages()); err != nil {
		f.logger.Warn("Не удалось обновить зеркало окна диалога",
			zap.Int64("appID", session.AppID), zap.Error(err))
	}
}
