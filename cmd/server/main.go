package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"codegen-server/internal/config"
	"codegen-server/internal/handler"
	"codegen-server/internal/logger"
	"codegen-server/internal/messaging"
	"codegen-server/internal/middleware"
	"codegen-server/internal/repository"
	"codegen-server/internal/service"
	"codegen-server/migrations"
	"codegen-server/pkg/migration"
)

func main() {
	_ = godotenv.Load()
	log.Println("Запуск Codegen Service...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{Level: cfg.LogLevel})
	if err != nil {
		log.Fatalf("Не удалось инициализировать логгер: %v", err)
	}
	defer zapLogger.Sync()
	zap.ReplaceGlobals(zapLogger)
	zapLogger.Info("Logger initialized", zap.String("logLevel", cfg.LogLevel))

	// Подключение к PostgreSQL
	dbPool, err := setupDatabase(cfg)
	if err != nil {
		zapLogger.Fatal("Не удалось подключиться к БД", zap.Error(err))
	}
	defer dbPool.Close()
	zapLogger.Info("Успешное подключение к PostgreSQL")

	// Применяем миграции схемы
	migrator := migration.NewMigrator(migration.Config{
		MigrationsPath: ".",
		MigrationsFS:   migrations.FS,
	}, dbPool)
	if err := migrator.Up(context.Background()); err != nil {
		zapLogger.Fatal("Не удалось применить миграции", zap.Error(err))
	}

	// Подключение к Redis (зеркало окна диалога)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			zapLogger.Fatal("Не удалось подключиться к Redis", zap.Error(err))
		}
		cancel()
	}
	zapLogger.Info("Успешное подключение к Redis", zap.String("addr", cfg.RedisAddr))

	// RabbitMQ опционален: без него события не публикуются
	var eventPublisher messaging.AppEventPublisher
	if cfg.RabbitMQURL != "" {
		rabbitConn, err := connectRabbitMQ(cfg.RabbitMQURL, zapLogger)
		if err != nil {
			zapLogger.Fatal("Не удалось подключиться к RabbitMQ", zap.Error(err))
		}
		defer rabbitConn.Close()
		zapLogger.Info("Успешное подключение к RabbitMQ")

		eventPublisher, err = messaging.NewRabbitMQAppEventPublisher(rabbitConn, cfg.AppEventsQueue)
		if err != nil {
			zapLogger.Fatal("Не удалось создать AppEventPublisher", zap.Error(err))
		}
	} else {
		zapLogger.Warn("RabbitMQ не сконфигурирован, события приложений публиковаться не будут")
		eventPublisher = messaging.NewNoopAppEventPublisher()
	}

	// Инициализация зависимостей
	appRepo := repository.NewPgAppRepository(dbPool, zapLogger)
	historyRepo := repository.NewPgChatHistoryRepository(dbPool, zapLogger)
	memoryStore := repository.NewRedisChatMemoryStore(redisClient, cfg.ChatMemoryTTL, zapLogger)

	aiClient, err := service.NewAIClient(cfg)
	if err != nil {
		zapLogger.Fatal("Не удалось создать AI клиент", zap.Error(err))
	}

	sessionCache := service.NewSessionCache(service.SessionCacheConfig{
		MaxEntries:  cfg.SessionCacheMaxEntries,
		AccessTTL:   cfg.SessionAccessTTL,
		WriteTTL:    cfg.SessionWriteTTL,
		MaxMessages: cfg.ChatMaxMessages,
	}, memoryStore, historyRepo, zapLogger)
	defer sessionCache.Stop()

	codeSaver := service.NewCodeSaver(cfg.CodeOutputRoot, zapLogger)
	facade := service.NewCodeGenFacade(aiClient, sessionCache, memoryStore, codeSaver, zapLogger)

	historyService := service.NewChatHistoryService(historyRepo, appRepo, zapLogger)
	appService := service.NewAppService(
		appRepo, historyService, facade, sessionCache, eventPublisher,
		cfg.CodeOutputRoot, cfg.CodeDeployRoot, cfg.DeployDomain,
		zapLogger,
	)

	// Настройка Gin
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ZapLoggingMiddleware(zapLogger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	prom := ginprometheus.NewPrometheus("codegen")
	prom.Use(router)

	// Статика задеплоенных приложений: {domain}/{deployKey}/
	router.Static("/deploy", cfg.CodeDeployRoot)

	handler.NewHealthHandler(dbPool).RegisterRoutes(router)
	handler.NewAppHandler(appService, cfg.JWTSecret, zapLogger).RegisterRoutes(router)
	handler.NewChatHistoryHandler(historyService, cfg.JWTSecret, zapLogger).RegisterRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Codegen сервер слушает на порту %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Ошибка запуска HTTP сервера", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Получен сигнал завершения, начинаем graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Ошибка при graceful shutdown HTTP сервера", zap.Error(err))
	}

	log.Println("Codegen Service успешно остановлен")
}

// setupDatabase инициализирует и возвращает пул соединений с БД
func setupDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга DSN: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.DBMaxConns)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	dbPool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать пул соединений: %w", err)
	}
	if err = dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("не удалось подключиться к БД (ping failed): %w", err)
	}
	return dbPool, nil
}

// connectRabbitMQ пытается подключиться к RabbitMQ с несколькими попытками
func connectRabbitMQ(url string, logger *zap.Logger) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	maxRetries := 5
	retryDelay := 5 * time.Second
	for i := 0; i < maxRetries; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			return conn, nil
		}
		logger.Warn("Не удалось подключиться к RabbitMQ",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", maxRetries),
			zap.Duration("retry_delay", retryDelay),
			zap.Error(err),
		)
		time.Sleep(retryDelay)
	}
	return nil, err
}
