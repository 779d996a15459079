package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"codegen-server/internal/middleware"
	"codegen-server/internal/models"
	"codegen-server/internal/service"
)

// ChatHistoryHandler обслуживает HTTP API истории диалогов.
type ChatHistoryHandler struct {
	historyService service.ChatHistoryService
	jwtSecret      string
	logger         *zap.Logger
}

// NewChatHistoryHandler создает обработчик истории диалогов.
func NewChatHistoryHandler(historyService service.ChatHistoryService, jwtSecret string, logger *zap.Logger) *ChatHistoryHandler {
	return &ChatHistoryHandler{
		historyService: historyService,
		jwtSecret:      jwtSecret,
		logger:         logger.Named("ChatHistoryHandler"),
	}
}

// RegisterRoutes регистрирует маршруты истории диалогов.
func (h *ChatHistoryHandler) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/chatHistory")
	group.Use(middleware.JWTAuthMiddleware(h.jwtSecret))
	{
		group.GET("/app/:appId", h.listAppChatHistory)
	}
}

// listAppChatHistory возвращает страницу истории приложения с курсорной
// пагинацией: lastCreateTime (RFC3339) и lastId - составной курсор
// последней полученной записи, pageSize - размер страницы. Без lastId
// записи, делящие created_at с курсором, могут прийти повторно.
func (h *ChatHistoryHandler) listAppChatHistory(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		handleServiceError(c, models.ErrTokenInvalid)
		return
	}

	appID, err := strconv.ParseInt(c.Param("appId"), 10, 64)
	if err != nil || appID <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code: models.ErrCodeBadRequest, Message: "invalid app id",
		})
		return
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	var before *time.Time
	if raw := c.Query("lastCreateTime"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Code: models.ErrCodeBadRequest, Message: "lastCreateTime must be RFC3339",
			})
			return
		}
		before = &t
	}
	beforeID, _ := strconv.ParseInt(c.DefaultQuery("lastId", "0"), 10, 64)

	histories, err := h.historyService.ListByAppCursor(c.Request.Context(), appID, userID, middleware.GetIsAdmin(c), before, beforeID, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK(histories))
}
