package models

import "time"

// Типы сообщений в истории диалога.
const (
	MessageTypeUser = "user"
	MessageTypeAI   = "ai"
)

// IsValidMessageType проверяет, что тип сообщения известен.
func IsValidMessageType(messageType string) bool {
	return messageType == MessageTypeUser || messageType == MessageTypeAI
}

// ChatHistory - одно сообщение диалога, хранимое в БД.
// Записи append-only: никогда не изменяются, удаляются только каскадно
// вместе с приложением.
type ChatHistory struct {
	ID          int64     `json:"id" db:"id"`
	AppID       int64     `json:"appId" db:"app_id"`
	UserID      int64     `json:"userId" db:"user_id"`
	Message     string    `json:"message" db:"message"`
	MessageType string    `json:"messageType" db:"message_type"`
	CreatedAt   time.Time `json:"createTime" db:"created_at"`
}

// ChatMessage - элемент оперативного окна диалога (короткая память модели).
// В отличие от ChatHistory не привязан к БД.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
