package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Типы событий жизненного цикла приложения.
const (
	EventAppGenerated = "app_generated"
	EventAppDeployed  = "app_deployed"
	EventAppDeleted   = "app_deleted"
)

// AppEventPayload - событие жизненного цикла приложения для внешних
// потребителей (аналитика, нотификации).
type AppEventPayload struct {
	EventType   string    `json:"event_type"`
	AppID       int64     `json:"app_id"`
	UserID      int64     `json:"user_id"`
	CodeGenType string    `json:"code_gen_type,omitempty"`
	DeployKey   string    `json:"deploy_key,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// AppEventPublisher defines the interface for publishing app lifecycle events.
//
//go:generate mockery --name AppEventPublisher --output ../mocks --outpkg mocks --case=underscore
type AppEventPublisher interface {
	PublishAppEvent(ctx context.Context, payload AppEventPayload) error
}

// rabbitMQPublisher implements the AppEventPublisher interface for RabbitMQ.
type rabbitMQPublisher struct {
	channel   *amqp.Channel
	queueName string
}

var _ AppEventPublisher = (*rabbitMQPublisher)(nil)

// NewRabbitMQAppEventPublisher creates a new instance of AppEventPublisher.
// Паблишер объявляет очередь сам, чтобы не зависеть от порядка запуска
// сервисов; параметры должны совпадать с параметрами консьюмера.
func NewRabbitMQAppEventPublisher(conn *amqp.Connection, queueName string) (AppEventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("app event publisher: не удалось открыть канал: %w", err)
	}
	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		log.Printf("AppEventPublisher ERROR: Не удалось объявить очередь '%s': %v", queueName, err)
		ch.Close()
		return nil, fmt.Errorf("app event publisher: не удалось объявить очередь '%s': %w", queueName, err)
	}
	log.Printf("AppEventPublisher: очередь '%s' успешно объявлена/найдена", queueName)
	return &rabbitMQPublisher{channel: ch, queueName: queueName}, nil
}

// PublishAppEvent publishes an app lifecycle event.
func (p *rabbitMQPublisher) PublishAppEvent(ctx context.Context, payload AppEventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[AppID: %d] Ошибка сериализации AppEventPayload: %v", payload.AppID, err)
		return fmt.Errorf("ошибка сериализации события приложения AppID %d: %w", payload.AppID, err)
	}

	if err := p.publishMessage(ctx, body); err != nil {
		log.Printf("[AppID: %d] Ошибка публикации AppEvent '%s': %v", payload.AppID, payload.EventType, err)
		return fmt.Errorf("ошибка публикации события '%s' для AppID %d: %w", payload.EventType, payload.AppID, err)
	}
	return nil
}

// publishMessage is a helper method for publishing a message.
func (p *rabbitMQPublisher) publishMessage(ctx context.Context, body []byte) error {
	if p.channel == nil {
		log.Println("Ошибка публикации: канал RabbitMQ не инициализирован (nil)")
		return errors.New("канал RabbitMQ не инициализирован")
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var err error
	// Попытка публикации с retry до 3 раз
	for attempt := 1; attempt <= 3; attempt++ {
		err = p.channel.PublishWithContext(ctx,
			"",          // exchange (используем default)
			p.queueName, // routing key (имя очереди)
			false,       // mandatory
			false,       // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Body:         body,
				Timestamp:    time.Now(),
				AppId:        "codegen-server",
			},
		)
		if err == nil {
			break
		}
		log.Printf("Ошибка публикации (attempt %d) в очередь '%s': %v", attempt, p.queueName, err)
		time.Sleep(time.Duration(attempt) * 100 * time.Millisecond)
	}
	if err != nil {
		return fmt.Errorf("ошибка публикации в очередь %s после retries: %w", p.queueName, err)
	}
	log.Printf("Сообщение успешно опубликовано в очередь '%s'", p.queueName)
	return nil
}

// noopPublisher используется при отключенном RabbitMQ (пустой URL).
type noopPublisher struct{}

var _ AppEventPublisher = (*noopPublisher)(nil)

// NewNoopAppEventPublisher возвращает паблишер-заглушку.
func NewNoopAppEventPublisher() AppEventPublisher {
	return &noopPublisher{}
}

func (p *noopPublisher) PublishAppEvent(_ context.Context, _ AppEventPayload) error {
	return nil
}
