package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/pkoukk/tiktoken-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	openaigo "github.com/sashabaranov/go-openai"

	"codegen-server/internal/config"
	"codegen-server/internal/models"
)

// Цены за 1М токенов в USD для оценки стоимости запросов.
const (
	pricePerMillionInputTokensUSD  = 0.1
	pricePerMillionOutputTokensUSD = 0.4
)

// GenerationParams - параметры генерации. Указатели, чтобы отличить
// 0/0.0 от отсутствия значения.
type GenerationParams struct {
	Temperature *float64
	MaxTokens   *int
	TopP        *float64
}

var (
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codegen_ai_requests_total",
			Help: "Total number of requests to the AI API.",
		},
		[]string{"model", "status"},
	)
	aiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codegen_ai_request_duration_seconds",
			Help:    "Histogram of AI API request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model"},
	)
	aiPromptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codegen_ai_prompt_tokens",
			Help:    "Histogram of prompt token counts.",
			Buckets: prometheus.LinearBuckets(250, 250, 20),
		},
		[]string{"model"},
	)
	aiCompletionTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codegen_ai_completion_tokens",
			Help:    "Histogram of completion token counts.",
			Buckets: prometheus.LinearBuckets(100, 100, 20),
		},
		[]string{"model"},
	)
	aiTotalTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codegen_ai_total_tokens",
			Help:    "Histogram of total token counts (prompt + completion).",
			Buckets: prometheus.LinearBuckets(350, 350, 20),
		},
		[]string{"model"},
	)
	aiEstimatedCostUSD = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codegen_ai_estimated_cost_usd_total",
			Help: "Estimated total cost of AI requests in USD.",
		},
		[]string{"model"},
	)
)

// UsageInfo содержит информацию об использовании токенов и стоимости
type UsageInfo struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	EstimatedCostUSD float64
}

// AIClient интерфейс для взаимодействия с AI API
//
//go:generate mockery --name AIClient --output ../mocks --outpkg mocks --with-expecter
type AIClient interface {
	// GenerateCode генерирует код на основе системного промта, истории диалога
	// и нового сообщения пользователя. Возвращает полный текст ответа модели,
	// информацию об использовании и ошибку.
	GenerateCode(ctx context.Context, systemPrompt string, history []models.ChatMessage, userMessage string, params GenerationParams) (string, UsageInfo, error)
	// GenerateCodeStream генерирует код и вызывает chunkHandler для каждого
	// полученного фрагмента. Ошибка chunkHandler прерывает стрим.
	GenerateCodeStream(ctx context.Context, systemPrompt string, history []models.ChatMessage, userMessage string, params GenerationParams, chunkHandler func(string) error) (UsageInfo, error)
}

// calculateCost рассчитывает оценочную стоимость запроса на основе токенов.
func calculateCost(promptTokens, completionTokens int) float64 {
	inputCost := float64(promptTokens) * pricePerMillionInputTokensUSD / 1_000_000.0
	outputCost := float64(completionTokens) * pricePerMillionOutputTokensUSD / 1_000_000.0
	return inputCost + outputCost
}

// --- OpenAI Client Implementation ---

// openAIClient реализует AIClient с использованием go-openai
type openAIClient struct {
	client *openaigo.Client
	model  string
}

var _ AIClient = (*openAIClient)(nil)

// buildOpenAIMessages собирает полный контекст диалога: системный промт,
// окно истории и новое сообщение пользователя.
func buildOpenAIMessages(systemPrompt string, history []models.ChatMessage, userMessage string) []openaigo.ChatCompletionMessage {
	messages := make([]openaigo.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openaigo.ChatCompletionMessage{
		Role:    openaigo.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, msg := range history {
		role := openaigo.ChatMessageRoleUser
		if msg.Role == models.MessageTypeAI {
			role = openaigo.ChatMessageRoleAssistant
		}
		messages = append(messages, openaigo.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}
	if userMessage != "" {
		messages = append(messages, openaigo.ChatCompletionMessage{
			Role:    openaigo.ChatMessageRoleUser,
			Content: userMessage,
		})
	}
	return messages
}

// GenerateCode генерирует код в синхронном режиме
func (c *openAIClient) GenerateCode(ctx context.Context, systemPrompt string, history []models.ChatMessage, userMessage string, params GenerationParams) (string, UsageInfo, error) {
	usageInfo := UsageInfo{}

	if strings.TrimSpace(systemPrompt) == "" {
		log.Printf("Ошибка: системный промт пуст")
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: системный промт пуст", models.ErrGeneration)
	}

	messages := buildOpenAIMessages(systemPrompt, history, userMessage)

	startTime := time.Now()
	log.Printf("Отправка запроса к AI: Model=%s, SystemPrompt=%d bytes, History=%d msgs, UserMessage=%d bytes",
		c.model, len(systemPrompt), len(history), len(userMessage))

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openaigo.ChatCompletionRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: float32Val(params.Temperature),
			MaxTokens:   intVal(params.MaxTokens),
			TopP:        float32Val(params.TopP),
		},
	)

	duration := time.Since(startTime)

	if err != nil {
		log.Printf("Ошибка от AI API за %v: %v", duration, err)
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: %v", models.ErrGeneration, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		log.Printf("AI API вернул пустой ответ за %v", duration)
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error_empty_response"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: получен пустой ответ", models.ErrGeneration)
	}

	aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "success"}).Inc()
	aiRequestDuration.With(prometheus.Labels{"model": c.model}).Observe(duration.Seconds())

	generatedText := resp.Choices[0].Message.Content
	log.Printf("Ответ от AI API получен за %v. Длина ответа: %d символов.", duration, len(generatedText))

	if resp.Usage.TotalTokens > 0 {
		log.Printf("AI Usage: PromptTokens=%d, CompletionTokens=%d, TotalTokens=%d",
			resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens)
		aiPromptTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(resp.Usage.PromptTokens))
		aiCompletionTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(resp.Usage.CompletionTokens))
		aiTotalTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(resp.Usage.TotalTokens))

		usageInfo.PromptTokens = resp.Usage.PromptTokens
		usageInfo.CompletionTokens = resp.Usage.CompletionTokens
		usageInfo.TotalTokens = resp.Usage.TotalTokens
		usageInfo.EstimatedCostUSD = calculateCost(resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
		if usageInfo.EstimatedCostUSD > 0 {
			aiEstimatedCostUSD.With(prometheus.Labels{"model": c.model}).Add(usageInfo.EstimatedCostUSD)
			log.Printf("AI Usage Cost (estimated): $%.6f", usageInfo.EstimatedCostUSD)
		}
	}

	return generatedText, usageInfo, nil
}

// GenerateCodeStream генерирует код в потоковом режиме, вызывая chunkHandler.
// Возвращает UsageInfo с токенами (если удалось их получить) и ошибку.
func (c *openAIClient) GenerateCodeStream(ctx context.Context, systemPrompt string, history []models.ChatMessage, userMessage string, params GenerationParams, chunkHandler func(string) error) (UsageInfo, error) {
	usageInfo := UsageInfo{}
	if strings.TrimSpace(systemPrompt) == "" {
		log.Printf("Ошибка стриминга: системный промт пуст")
		return usageInfo, fmt.Errorf("%w: системный промт пуст для стриминга", models.ErrGeneration)
	}

	request := openaigo.ChatCompletionRequest{
		Model:       c.model,
		Messages:    buildOpenAIMessages(systemPrompt, history, userMessage),
		Stream:      true,
		Temperature: float32Val(params.Temperature),
		MaxTokens:   intVal(params.MaxTokens),
		TopP:        float32Val(params.TopP),
	}

	log.Printf("Отправка STREAM запроса к OpenAI: Model=%s, SystemPrompt=%d bytes, History=%d msgs, UserMessage=%d bytes",
		c.model, len(systemPrompt), len(history), len(userMessage))

	stream, err := c.client.CreateChatCompletionStream(ctx, request)
	if err != nil {
		log.Printf("Ошибка создания стрима от OpenAI API: %v", err)
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error_stream_init"}).Inc()
		return usageInfo, fmt.Errorf("%w: ошибка создания стрима: %v", models.ErrGeneration, err)
	}
	defer stream.Close()

	log.Printf("Стрим от OpenAI API успешно инициирован. Чтение...")
	startTime := time.Now()
	completionTokensCount := 0
	var finalUsage openaigo.Usage

	for {
		response, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			log.Printf("Стрим OpenAI завершен.")
			break
		}
		if err != nil {
			log.Printf("Ошибка чтения из стрима OpenAI: %v", err)
			aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error_stream_read"}).Inc()
			return usageInfo, fmt.Errorf("%w: ошибка чтения стрима: %v", models.ErrGeneration, err)
		}

		// Usage приходит в конце стрима, если модель его отдает
		if response.Usage != nil && response.Usage.TotalTokens > 0 {
			finalUsage = *response.Usage
		}

		if len(response.Choices) > 0 {
			chunk := response.Choices[0].Delta.Content
			if chunk == "" {
				continue
			}
			// Примерный подсчет токенов на лету (менее точный, чем Usage)
			tke, err := tiktoken.EncodingForModel(c.model)
			if err == nil {
				completionTokensCount += len(tke.Encode(chunk, nil, nil))
			}

			if chunkHandler != nil {
				if err := chunkHandler(chunk); err != nil {
					log.Printf("Ошибка обработчика чанка стрима: %v", err)
					aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error_chunk_handler"}).Inc()
					return usageInfo, fmt.Errorf("%w: ошибка обработчика стрима: %v", models.ErrGeneration, err)
				}
			}
		}
	}

	duration := time.Since(startTime)
	log.Printf("Чтение стрима завершено за %v.", duration)

	if finalUsage.TotalTokens > 0 {
		usageInfo.PromptTokens = finalUsage.PromptTokens
		usageInfo.CompletionTokens = finalUsage.CompletionTokens
		usageInfo.TotalTokens = finalUsage.TotalTokens
		usageInfo.EstimatedCostUSD = calculateCost(finalUsage.PromptTokens, finalUsage.CompletionTokens)
		log.Printf("AI Stream Usage (from final block): Prompt=%d, Completion=%d, Total=%d",
			usageInfo.PromptTokens, usageInfo.CompletionTokens, usageInfo.TotalTokens)
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "success_stream"}).Inc()
		aiRequestDuration.With(prometheus.Labels{"model": c.model}).Observe(duration.Seconds())
		aiPromptTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(usageInfo.PromptTokens))
		aiCompletionTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(usageInfo.CompletionTokens))
		aiTotalTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(usageInfo.TotalTokens))
		if usageInfo.EstimatedCostUSD > 0 {
			aiEstimatedCostUSD.With(prometheus.Labels{"model": c.model}).Add(usageInfo.EstimatedCostUSD)
		}
	} else {
		// Финальный Usage не пришел, оцениваем токены через tiktoken
		log.Printf("[WARN] Final usage block not received in stream. Using estimated token counts.")
		tke, err := tiktoken.EncodingForModel(c.model)
		if err == nil {
			promptTokensCount := len(tke.Encode(systemPrompt, nil, nil)) + len(tke.Encode(userMessage, nil, nil))
			for _, msg := range history {
				promptTokensCount += len(tke.Encode(msg.Content, nil, nil))
			}
			totalTokens := promptTokensCount + completionTokensCount
			usageInfo.PromptTokens = promptTokensCount
			usageInfo.CompletionTokens = completionTokensCount
			usageInfo.TotalTokens = totalTokens
			usageInfo.EstimatedCostUSD = calculateCost(promptTokensCount, completionTokensCount)
			log.Printf("AI Stream Usage (estimated): Prompt≈%d, Completion≈%d, Total≈%d",
				promptTokensCount, completionTokensCount, totalTokens)
			aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "success_stream_estimated"}).Inc()
			aiRequestDuration.With(prometheus.Labels{"model": c.model}).Observe(duration.Seconds())
			aiPromptTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(promptTokensCount))
			aiCompletionTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(completionTokensCount))
			aiTotalTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(totalTokens))
		} else {
			log.Printf("[ERROR] Could not get tokenizer for model %s to estimate stream tokens. Skipping token metrics for this stream.", c.model)
			aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "success_stream_no_tokens"}).Inc()
			aiRequestDuration.With(prometheus.Labels{"model": c.model}).Observe(duration.Seconds())
		}
	}

	return usageInfo, nil
}

func float32Val(f64 *float64) float32 {
	if f64 == nil {
		return 1.0
	}
	return float32(*f64)
}

func intVal(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

// --- Ollama Client Implementation ---

// ollamaClient реализует AIClient с использованием ollama/api
type ollamaClient struct {
	client  *api.Client
	model   string
	timeout time.Duration
}

var _ AIClient = (*ollamaClient)(nil)

// newOllamaClient создает новый клиент для взаимодействия с Ollama
func newOllamaClient(cfg *config.Config) (AIClient, error) {
	httpClient := &http.Client{
		Timeout: cfg.AITimeout,
	}

	// api.NewClient требует URL без суффикса /v1
	ollamaBaseURL := strings.TrimSuffix(cfg.AIBaseURL, "/v1")
	ollamaBaseURL = strings.TrimSuffix(ollamaBaseURL, "/")

	parsedURL, err := url.Parse(ollamaBaseURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга Ollama Base URL '%s': %w", ollamaBaseURL, err)
	}

	client := api.NewClient(parsedURL, httpClient)

	log.Printf("Ollama Клиент создан. Используемый BaseURL: %s, Model: %s, Timeout: %v", ollamaBaseURL, cfg.AIModel, cfg.AITimeout)

	return &ollamaClient{
		client:  client,
		model:   cfg.AIModel,
		timeout: cfg.AITimeout,
	}, nil
}

// buildOllamaMessages собирает контекст диалога для нативного API Ollama.
func buildOllamaMessages(systemPrompt string, history []models.ChatMessage, userMessage string) []api.Message {
	messages := make([]api.Message, 0, len(history)+2)
	messages = append(messages, api.Message{Role: "system", Content: systemPrompt})
	for _, msg := range history {
		role := "user"
		if msg.Role == models.MessageTypeAI {
			role = "assistant"
		}
		messages = append(messages, api.Message{Role: role, Content: msg.Content})
	}
	if userMessage != "" {
		messages = append(messages, api.Message{Role: "user", Content: userMessage})
	}
	return messages
}

// GenerateCode генерирует код с использованием Ollama
func (c *ollamaClient) GenerateCode(ctx context.Context, systemPrompt string, history []models.ChatMessage, userMessage string, params GenerationParams) (string, UsageInfo, error) {
	usageInfo := UsageInfo{EstimatedCostUSD: 0} // Ollama локальный, стоимость 0

	if strings.TrimSpace(systemPrompt) == "" {
		log.Printf("Ошибка: системный промт пуст. Невозможно отправить запрос к Ollama.")
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: системный промт пуст", models.ErrGeneration)
	}

	req := &api.ChatRequest{
		Model:    c.model,
		Messages: buildOllamaMessages(systemPrompt, history, userMessage),
		Stream:   func(b bool) *bool { return &b }(false),
		Options: map[string]interface{}{
			"temperature": params.Temperature,
			"top_p":       params.TopP,
			"num_predict": intVal(params.MaxTokens),
		},
	}

	requestCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	startTime := time.Now()
	log.Printf("Отправка запроса к Ollama: Model=%s, SystemPrompt=%d bytes, History=%d msgs, UserMessage=%d bytes",
		c.model, len(systemPrompt), len(history), len(userMessage))

	var resp api.ChatResponse
	err := c.client.Chat(requestCtx, req, func(r api.ChatResponse) error {
		resp = r // Сохраняем последний (полный) ответ
		return nil
	})

	duration := time.Since(startTime)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Printf("Ошибка таймаута (%v) от Ollama API за %v: %v", c.timeout, duration, err)
		} else {
			log.Printf("Ошибка от Ollama API за %v: %v", duration, err)
		}
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: %v", models.ErrGeneration, err)
	}

	if resp.Message.Content == "" {
		log.Printf("Ollama API вернул пустой ответ за %v", duration)
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: получен пустой ответ", models.ErrGeneration)
	}

	aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "success"}).Inc()
	aiRequestDuration.With(prometheus.Labels{"model": c.model}).Observe(duration.Seconds())

	generatedText := resp.Message.Content
	log.Printf("Ответ от Ollama API получен за %v. Длина ответа: %d символов.", duration, len(generatedText))

	usageInfo.PromptTokens = resp.PromptEvalCount
	usageInfo.CompletionTokens = resp.EvalCount
	usageInfo.TotalTokens = resp.PromptEvalCount + resp.EvalCount

	if usageInfo.TotalTokens > 0 {
		log.Printf("Ollama Usage: PromptTokens=%d, CompletionTokens=%d, TotalTokens=%d",
			usageInfo.PromptTokens, usageInfo.CompletionTokens, usageInfo.TotalTokens)
		aiPromptTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(usageInfo.PromptTokens))
		aiCompletionTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(usageInfo.CompletionTokens))
		aiTotalTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(usageInfo.TotalTokens))
	}

	return generatedText, usageInfo, nil
}

// GenerateCodeStream генерирует код с использованием Ollama в потоковом режиме
func (c *ollamaClient) GenerateCodeStream(ctx context.Context, systemPrompt string, history []models.ChatMessage, userMessage string, params GenerationParams, chunkHandler func(string) error) (UsageInfo, error) {
	usageInfo := UsageInfo{EstimatedCostUSD: 0}

	if strings.TrimSpace(systemPrompt) == "" {
		log.Printf("Ошибка стриминга Ollama: системный промт пуст.")
		return usageInfo, fmt.Errorf("%w: системный промт пуст для стриминга", models.ErrGeneration)
	}

	req := &api.ChatRequest{
		Model:    c.model,
		Messages: buildOllamaMessages(systemPrompt, history, userMessage),
		Stream:   func(b bool) *bool { return &b }(true),
		Options: map[string]interface{}{
			"temperature": params.Temperature,
			"top_p":       params.TopP,
			"num_predict": intVal(params.MaxTokens),
		},
	}

	requestCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	startTime := time.Now()
	log.Printf("Отправка STREAM запроса к Ollama: Model=%s, SystemPrompt=%d bytes, History=%d msgs, UserMessage=%d bytes",
		c.model, len(systemPrompt), len(history), len(userMessage))

	var promptTokens, completionTokens int

	err := c.client.Chat(requestCtx, req, func(resp api.ChatResponse) error {
		if resp.Message.Content != "" {
			if err := chunkHandler(resp.Message.Content); err != nil {
				log.Printf("Ошибка обработки чанка стрима Ollama: %v", err)
				// Прерываем стрим, возвращая ошибку из колбэка
				return fmt.Errorf("ошибка обработчика стрима: %w", err)
			}
		}

		if resp.Done {
			promptTokens = resp.PromptEvalCount
			completionTokens = resp.EvalCount
			log.Printf("Стрим Ollama завершен. Причина: %s", resp.DoneReason)
		}
		return nil
	})

	duration := time.Since(startTime)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Printf("Ошибка таймаута (%v) во время стриминга Ollama за %v: %v", c.timeout, duration, err)
		} else {
			log.Printf("Ошибка во время стриминга Ollama за %v: %v", duration, err)
		}
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error_stream"}).Inc()
		return usageInfo, fmt.Errorf("%w: %v", models.ErrGeneration, err)
	}

	log.Printf("Обработка стрима Ollama завершена за %v.", duration)
	aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "success_stream"}).Inc()
	aiRequestDuration.With(prometheus.Labels{"model": c.model}).Observe(duration.Seconds())

	if promptTokens > 0 || completionTokens > 0 {
		log.Printf("Ollama Stream Usage: PromptTokens=%d, CompletionTokens=%d, TotalTokens=%d",
			promptTokens, completionTokens, promptTokens+completionTokens)
		aiPromptTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(promptTokens))
		aiCompletionTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(completionTokens))
		aiTotalTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(promptTokens + completionTokens))
	}

	usageInfo.PromptTokens = promptTokens
	usageInfo.CompletionTokens = completionTokens
	usageInfo.TotalTokens = promptTokens + completionTokens

	return usageInfo, nil
}

// --- Factory Function ---

// NewAIClient создает новый клиент для взаимодействия с AI в зависимости от конфигурации
func NewAIClient(cfg *config.Config) (AIClient, error) {
	switch strings.ToLower(cfg.AIClientType) {
	case "openai":
		log.Printf("Используется реализация AI клиента: OpenAI")
		openaiConfig := openaigo.DefaultConfig(cfg.AIAPIKey)
		openaiConfig.BaseURL = cfg.AIBaseURL
		openaiConfig.HTTPClient = &http.Client{
			Timeout: cfg.AITimeout,
		}
		client := openaigo.NewClientWithConfig(openaiConfig)
		log.Printf("OpenAI Клиент создан. Используемый BaseURL: %s, Model: %s, Timeout: %v", cfg.AIBaseURL, cfg.AIModel, cfg.AITimeout)
		return &openAIClient{
			client: client,
			model:  cfg.AIModel,
		}, nil
	case "ollama":
		log.Printf("Используется реализация AI клиента: Ollama")
		return newOllamaClient(cfg)
	default:
		return nil, fmt.Errorf("неизвестный тип AI клиента: '%s'", cfg.AIClientType)
	}
}
