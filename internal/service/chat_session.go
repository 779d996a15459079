package service

import (
	"sync"
	"time"

	"codegen-server/internal/models"
)

// ChatSession - оперативное окно диалога одной пары (appId, режим).
// Хранит последние maxMessages сообщений; старые вытесняются при
// добавлении новых. Безопасна для конкурентного доступа.
type ChatSession struct {
	AppID int64
	Type  models.CodeGenType

	createdAt time.Time

	mu          sync.Mutex
	maxMessages int
	messages    []models.ChatMessage
}

// NewChatSession создает пустую сессию с окном на maxMessages сообщений.
func NewChatSession(appID int64, codeGenType models.CodeGenType, maxMessages int) *ChatSession {
	if maxMessages <= 0 {
		maxMessages = 20
	}
	return &ChatSession{
		AppID:       appID,
		Type:        codeGenType,
		createdAt:   time.Now(),
		maxMessages: maxMessages,
	}
}

// CreatedAt возвращает момент создания сессии. Используется кэшем для
// проверки абсолютного TTL с момента записи.
func (s *ChatSession) CreatedAt() time.Time {
	return s.createdAt
}

// Messages возвращает копию текущего окна в хронологическом порядке.
func (s *ChatSession) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Append добавляет сообщение в окно, вытесняя самые старые при переполнении.
func (s *ChatSession) Append(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, models.ChatMessage{Role: role, Content: content})
	if len(s.messages) > s.maxMessages {
		s.messages = s.messages[len(s.messages)-s.maxMessages:]
	}
}

// Replace целиком заменяет содержимое окна (используется при наполнении
// сессии из зеркала или из БД). Лишние сообщения в начале отбрасываются.
func (s *ChatSession) Replace(messages []models.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(messages) > s.maxMessages {
		messages = messages[len(messages)-s.maxMessages:]
	}
	s.messages = make([]models.ChatMessage, len(messages))
	copy(s.messages, messages)
}

// Len возвращает текущее количество сообщений в окне.
func (s *ChatSession) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}
