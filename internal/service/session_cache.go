package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"go.uber.org/zap"

	"codegen-server/internal/models"
	"codegen-server/internal/repository"
)

// SessionCacheConfig - параметры кэша AI-сессий.
type SessionCacheConfig struct {
	// MaxEntries - емкость кэша; при переполнении вытесняется LRU-запись.
	MaxEntries uint64
	// AccessTTL - скользящий TTL: сессия живет, пока к ней обращаются.
	AccessTTL time.Duration
	// WriteTTL - абсолютный TTL с момента создания сессии; по его
	// истечении сессия пересоздается даже при активном использовании.
	WriteTTL time.Duration
	// MaxMessages - размер окна диалога каждой сессии.
	MaxMessages int
}

// SessionCache хранит оперативные окна диалогов по ключу {appId}_{режим}.
// Вытесненная или истекшая сессия восстанавливается из зеркала в Redis,
// а при его недоступности - из таблицы chat_histories.
type SessionCache struct {
	cache       *ttlcache.Cache[string, *ChatSession]
	writeTTL    time.Duration
	maxMessages int
	memoryStore repository.ChatMemoryStore
	historyRepo repository.ChatHistoryRepository
	logger      *zap.Logger
}

// sessionKey формирует ключ кэша: {appId}_{режим генерации}.
func sessionKey(appID int64, codeGenType models.CodeGenType) string {
	return fmt.Sprintf("%d_%s", appID, codeGenType)
}

// NewSessionCache создает кэш сессий поверх ttlcache с ограничением
// емкости и скользящим TTL по доступу.
func NewSessionCache(
	cfg SessionCacheConfig,
	memoryStore repository.ChatMemoryStore,
	historyRepo repository.ChatHistoryRepository,
	logger *zap.Logger,
) *SessionCache {
	log := logger.Named("SessionCache")

	cache := ttlcache.New[string, *ChatSession](
		ttlcache.WithTTL[string, *ChatSession](cfg.AccessTTL),
		ttlcache.WithCapacity[string, *ChatSession](cfg.MaxEntries),
	)

	cache.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, *ChatSession]) {
		cause := "unknown"
		switch reason {
		case ttlcache.EvictionReasonExpired:
			cause = "expired"
		case ttlcache.EvictionReasonCapacityReached:
			cause = "capacity"
		case ttlcache.EvictionReasonDeleted:
			cause = "deleted"
		}
		log.Info("AI-сессия вытеснена из кэша",
			zap.String("key", item.Key()),
			zap.String("cause", cause))
	})

	go cache.Start() // фоновая очистка истекших записей

	return &SessionCache{
		cache:       cache,
		writeTTL:    cfg.WriteTTL,
		maxMessages: cfg.MaxMessages,
		memoryStore: memoryStore,
		historyRepo: historyRepo,
		logger:      log,
	}
}

// GetOrCreate возвращает сессию для пары (appId, режим). Повторные вызовы
// с теми же аргументами возвращают тот же экземпляр, пока сессия жива.
// Истекшая по абсолютному TTL сессия пересоздается и наполняется заново.
func (c *SessionCache) GetOrCreate(ctx context.Context, appID int64, codeGenType models.CodeGenType) *ChatSession {
	key := sessionKey(appID, codeGenType)

	if item := c.cache.Get(key); item != nil {
		session := item.Value()
		// Скользящий TTL продлевается самим Get; абсолютный проверяем вручную
		if time.Since(session.CreatedAt()) < c.writeTTL {
			return session
		}
		c.logger.Info("AI-сессия истекла по абсолютному TTL, пересоздаем",
			zap.String("key", key),
			zap.Time("createdAt", session.CreatedAt()))
		c.cache.Delete(key)
	}

	session := NewChatSession(appID, codeGenType, c.maxMessages)
	c.populate(ctx, session)
	c.cache.Set(key, session, ttlcache.DefaultTTL)
	return session
}

// Invalidate удаляет сессии приложения из кэша и его зеркало в Redis.
// Вызывается при удалении приложения.
func (c *SessionCache) Invalidate(ctx context.Context, appID int64) {
	for _, t := range []models.CodeGenType{models.CodeGenTypeHTML, models.CodeGenTypeMultiFile, models.CodeGenTypeProject} {
		c.cache.Delete(sessionKey(appID, t))
	}
	if err := c.memoryStore.DeleteMessages(ctx, appID); err != nil {
		c.logger.Warn("Не удалось удалить зеркало окна диалога",
			zap.Int64("appID", appID), zap.Error(err))
	}
}

// populate наполняет новую сессию: сначала из зеркала в Redis, при
// неудаче - из последних сообщений в БД. Ошибки обоих источников не
// фатальны: генерация может идти и с пустым окном.
func (c *SessionCache) populate(ctx context.Context, session *ChatSession) {
	messages, err := c.memoryStore.LoadMessages(ctx, session.AppID)
	if err == nil && len(messages) > 0 {
		session.Replace(messages)
		c.logger.Debug("Окно диалога восстановлено из зеркала",
			zap.Int64("appID", session.AppID), zap.Int("messages", len(messages)))
		return
	}
	if err != nil {
		c.logger.Warn("Зеркало окна диалога недоступно, читаем историю из БД",
			zap.Int64("appID", session.AppID), zap.Error(err))
	}

	histories, err := c.historyRepo.ListRecentByApp(ctx, session.AppID, c.maxMessages)
	if err != nil {
		c.logger.Warn("Не удалось загрузить историю диалога, сессия начнется пустой",
			zap.Int64("appID", session.AppID), zap.Error(err))
		return
	}
	if len(histories) == 0 {
		return
	}

	restored := make([]models.ChatMessage, 0, len(histories))
	for _, h := range histories {
		restored = append(restored, models.ChatMessage{Role: h.MessageType, Content: h.Message})
	}
	session.Replace(restored)
	c.logger.Debug("Окно диалога восстановлено из БД",
		zap.Int64("appID", session.AppID), zap.Int("messages", len(restored)))
}

// Stop останавливает фоновую очистку кэша.
func (c *SessionCache) Stop() {
	c.cache.Stop()
}
