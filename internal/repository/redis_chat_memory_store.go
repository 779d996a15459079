package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"codegen-server/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ChatMemoryStore - зеркало оперативного окна диалога. Переживает
// вытеснение сессии из кэша, но не является источником истины:
// истина - таблица chat_histories.
//
//go:generate mockery --name ChatMemoryStore --output ../mocks --outpkg mocks --case=underscore
type ChatMemoryStore interface {
	LoadMessages(ctx context.Context, appID int64) ([]models.ChatMessage, error)
	SaveMessages(ctx context.Context, appID int64, messages []models.ChatMessage) error
	DeleteMessages(ctx context.Context, appID int64) error
}

// Compile-time check to ensure redisChatMemoryStore implements ChatMemoryStore
var _ ChatMemoryStore = (*redisChatMemoryStore)(nil)

type redisChatMemoryStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisChatMemoryStore создает Redis-реализацию ChatMemoryStore.
func NewRedisChatMemoryStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) ChatMemoryStore {
	return &redisChatMemoryStore{
		client: client,
		ttl:    ttl,
		logger: logger.Named("RedisChatMemory"),
	}
}

func chatMemoryKey(appID int64) string {
	return fmt.Sprintf("chat_memory:%d", appID)
}

func (s *redisChatMemoryStore) LoadMessages(ctx context.Context, appID int64) ([]models.ChatMessage, error) {
	data, err := s.client.Get(ctx, chatMemoryKey(appID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		s.logger.Warn("Failed to load chat memory from redis", zap.Error(err), zap.Int64("appID", appID))
		return nil, fmt.Errorf("failed to load chat memory: %w", err)
	}

	var messages []models.ChatMessage
	if err := json.Unmarshal(data, &messages); err != nil {
		s.logger.Warn("Corrupted chat memory payload in redis", zap.Error(err), zap.Int64("appID", appID))
		return nil, fmt.Errorf("failed to decode chat memory: %w", err)
	}
	return messages, nil
}

func (s *redisChatMemoryStore) SaveMessages(ctx context.Context, appID int64, messages []models.ChatMessage) error {
	data, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to encode chat memory: %w", err)
	}
	if err := s.client.Set(ctx, chatMemoryKey(appID), data, s.ttl).Err(); err != nil {
		s.logger.Warn("Failed to save chat memory to redis", zap.Error(err), zap.Int64("appID", appID))
		return fmt.Errorf("failed to save chat memory: %w", err)
	}
	return nil
}

func (s *redisChatMemoryStore) DeleteMessages(ctx context.Context, appID int64) error {
	if err := s.client.Del(ctx, chatMemoryKey(appID)).Err(); err != nil {
		s.logger.Warn("Failed to delete chat memory from redis", zap.Error(err), zap.Int64("appID", appID))
		return fmt.Errorf("failed to delete chat memory: %w", err)
	}
	return nil
}
