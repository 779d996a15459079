package config

import (
	"fmt"
	"log"
	"time"

	"codegen-server/internal/utils"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит конфигурацию сервиса генерации кода.
type Config struct {
	// Настройки сервера
	Port     string `envconfig:"SERVER_PORT" default:"8090"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Настройки PostgreSQL
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	DBSSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns int    `envconfig:"DB_MAX_CONNECTIONS" default:"10"`
	// Секретное поле БЕЗ envconfig тега
	DBPassword string

	// Настройки Redis (зеркало окна диалога)
	RedisAddr       string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB         int           `envconfig:"REDIS_DB" default:"0"`
	RedisPassword   string        `envconfig:"REDIS_PASSWORD" default:""`
	ChatMemoryTTL   time.Duration `envconfig:"CHAT_MEMORY_TTL" default:"30m"`
	ChatMaxMessages int           `envconfig:"CHAT_MAX_MESSAGES" default:"20"`

	// Настройки RabbitMQ (события генерации/деплоя); пустой URL отключает публикацию
	RabbitMQURL    string `envconfig:"RABBITMQ_URL" default:""`
	AppEventsQueue string `envconfig:"APP_EVENTS_QUEUE" default:"app_events"`

	// Настройки AI
	AIClientType string        `envconfig:"AI_CLIENT_TYPE" default:"openai"`
	AIBaseURL    string        `envconfig:"AI_BASE_URL" default:"https://api.openai.com/v1"`
	AIModel      string        `envconfig:"AI_MODEL" default:"gpt-4o-mini"`
	AITimeout    time.Duration `envconfig:"AI_TIMEOUT" default:"300s"`
	// Секретное поле БЕЗ envconfig тега
	AIAPIKey string

	// Кэш AI-сессий
	SessionCacheMaxEntries uint64        `envconfig:"SESSION_CACHE_MAX_ENTRIES" default:"10000"`
	SessionAccessTTL       time.Duration `envconfig:"SESSION_ACCESS_TTL" default:"10m"`
	SessionWriteTTL        time.Duration `envconfig:"SESSION_WRITE_TTL" default:"30m"`

	// Каталоги генерации и деплоя. DeployDomain по умолчанию указывает на
	// собственный статик-роут /deploy этого же сервера.
	CodeOutputRoot string `envconfig:"CODE_OUTPUT_ROOT" default:"tmp/code_output"`
	CodeDeployRoot string `envconfig:"CODE_DEPLOY_ROOT" default:"tmp/code_deploy"`
	DeployDomain   string `envconfig:"DEPLOY_DOMAIN" default:"http://localhost:8090/deploy"`

	// Секретное поле БЕЗ envconfig тега
	JWTSecret string
}

// GetDSN возвращает строку подключения (DSN) для PostgreSQL.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// LoadConfig загружает конфигурацию из переменных окружения и секретов.
func LoadConfig() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации codegen-server: %w", err)
	}

	// Загружаем ОБЯЗАТЕЛЬНЫЕ секреты
	var loadErr error
	cfg.DBPassword, loadErr = utils.ReadSecret("db_password")
	if loadErr != nil {
		return nil, loadErr
	}

	cfg.JWTSecret, loadErr = utils.ReadSecret("jwt_secret")
	if loadErr != nil {
		return nil, loadErr
	}

	// Ключ AI нужен только openai-совместимым бэкендам, для ollama секрета нет
	if cfg.AIClientType == "openai" {
		cfg.AIAPIKey, loadErr = utils.ReadSecret("ai_api_key")
		if loadErr != nil {
			return nil, loadErr
		}
	}

	log.Printf("Конфигурация codegen-server загружена (секреты из файлов):")
	log.Printf("  Port: %s", cfg.Port)
	log.Printf("  LogLevel: %s", cfg.LogLevel)
	log.Printf("  DB DSN: postgres://%s:***@%s:%s/%s?sslmode=%s", cfg.DBUser, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode)
	log.Printf("  Redis: %s (db %d)", cfg.RedisAddr, cfg.RedisDB)
	log.Printf("  AI: type=%s model=%s baseURL=%s timeout=%v", cfg.AIClientType, cfg.AIModel, cfg.AIBaseURL, cfg.AITimeout)
	log.Printf("  Session cache: max=%d accessTTL=%v writeTTL=%v", cfg.SessionCacheMaxEntries, cfg.SessionAccessTTL, cfg.SessionWriteTTL)
	log.Printf("  Output root: %s, deploy root: %s", cfg.CodeOutputRoot, cfg.CodeDeployRoot)

	return &cfg, nil
}
