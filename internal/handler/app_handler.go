package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"codegen-server/internal/middleware"
	"codegen-server/internal/models"
	"codegen-server/internal/service"
)

// AppHandler обслуживает HTTP API приложений: CRUD, потоковую генерацию
// кода и деплой.
type AppHandler struct {
	appService service.AppService
	jwtSecret  string
	logger     *zap.Logger
}

// NewAppHandler создает обработчик приложений.
func NewAppHandler(appService service.AppService, jwtSecret string, logger *zap.Logger) *AppHandler {
	return &AppHandler{
		appService: appService,
		jwtSecret:  jwtSecret,
		logger:     logger.Named("AppHandler"),
	}
}

// RegisterRoutes регистрирует маршруты приложений.
func (h *AppHandler) RegisterRoutes(router *gin.Engine) {
	// Витрина избранных приложений доступна без аутентификации
	router.GET("/app/good/list", h.listGoodApps)

	appGroup := router.Group("/app")
	appGroup.Use(middleware.JWTAuthMiddleware(h.jwtSecret))
	{
		appGroup.POST("/add", h.createApp)
		appGroup.POST("/update", h.updateApp)
		appGroup.POST("/delete", h.deleteApp)
		appGroup.GET("/get", h.getApp)
		appGroup.GET("/my/list", h.listMyApps)
		appGroup.GET("/chat/gen/code", h.chatToGenCode)
		appGroup.POST("/deploy", h.deployApp)
	}

	adminGroup := router.Group("/app/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(h.jwtSecret), middleware.AdminOnlyMiddleware())
	{
		adminGroup.GET("/list", h.listAllApps)
	}
}

type createAppRequest struct {
	InitPrompt string `json:"initPrompt" binding:"required"`
}

func (h *AppHandler) createApp(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		handleServiceError(c, models.ErrTokenInvalid)
		return
	}

	var req createAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code: models.ErrCodeBadRequest, Message: "initPrompt is required",
		})
		return
	}

	app, err := h.appService.CreateApp(c.Request.Context(), userID, req.InitPrompt)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK(app))
}

type updateAppRequest struct {
	ID      int64  `json:"id" binding:"required"`
	AppName string `json:"appName" binding:"required"`
}

func (h *AppHandler) updateApp(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		handleServiceError(c, models.ErrTokenInvalid)
		return
	}

	var req updateAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code: models.ErrCodeBadRequest, Message: "id and appName are required",
		})
		return
	}

	app, err := h.appService.UpdateAppName(c.Request.Context(), req.ID, userID, req.AppName)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK(app))
}

type deleteAppRequest struct {
	ID int64 `json:"id" binding:"required"`
}

func (h *AppHandler) deleteApp(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		handleServiceError(c, models.ErrTokenInvalid)
		return
	}

	var req deleteAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code: models.ErrCodeBadRequest, Message: "id is required",
		})
		return
	}

	if err := h.appService.DeleteApp(c.Request.Context(), req.ID, userID, middleware.GetIsAdmin(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK(true))
}

func (h *AppHandler) getApp(c *gin.Context) {
	appID, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil || appID <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code: models.ErrCodeBadRequest, Message: "invalid app id",
		})
		return
	}

	app, err := h.appService.GetApp(c.Request.Context(), appID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK(app))
}

func (h *AppHandler) listMyApps(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		handleServiceError(c, models.ErrTokenInvalid)
		return
	}
	page, pageSize := parsePageParams(c)

	apps, err := h.appService.ListMyApps(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK(apps))
}

func (h *AppHandler) listGoodApps(c *gin.Context) {
	page, pageSize := parsePageParams(c)

	apps, err := h.appService.ListGoodApps(c.Request.Context(), page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK(apps))
}

func (h *AppHandler) listAllApps(c *gin.Context) {
	page, pageSize := parsePageParams(c)

	apps, err := h.appService.ListAllApps(c.Request.Context(), page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK(apps))
}

// sseChunk - полезная нагрузка одного SSE-сообщения с фрагментом кода.
type sseChunk struct {
	D string `json:"d"`
}

// chatToGenCode стримит фрагменты генерируемого кода через SSE.
// Каждый фрагмент приходит событием message с JSON {"d": "..."}; поток
// всегда завершается событием done. Ошибка генерации приходит событием
// business-error, за которым тоже следует done.
func (h *AppHandler) chatToGenCode(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		handleServiceError(c, models.ErrTokenInvalid)
		return
	}

	appID, err := strconv.ParseInt(c.Query("appId"), 10, 64)
	if err != nil || appID <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code: models.ErrCodeBadRequest, Message: "invalid app id",
		})
		return
	}
	message := c.Query("message")
	if message == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code: models.ErrCodeBadRequest, Message: "message is required",
		})
		return
	}

	stream, err := h.appService.ChatToGenCode(c.Request.Context(), appID, userID, message)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(_ io.Writer) bool {
		chunk, ok := <-stream
		if !ok {
			c.SSEvent("done", "")
			return false
		}
		if chunk.Err != nil {
			h.logger.Warn("Ошибка потоковой генерации",
				zap.Int64("appID", appID), zap.Error(chunk.Err))
			c.SSEvent("business-error", chunk.Err.Error())
			c.SSEvent("done", "")
			return false
		}
		payload, err := json.Marshal(sseChunk{D: chunk.Content})
		if err != nil {
			return false
		}
		c.SSEvent("message", string(payload))
		return true
	})
}

type deployAppRequest struct {
	AppID int64 `json:"appId" binding:"required"`
}

func (h *AppHandler) deployApp(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		handleServiceError(c, models.ErrTokenInvalid)
		return
	}

	var req deployAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code: models.ErrCodeBadRequest, Message: "appId is required",
		})
		return
	}

	url, err := h.appService.DeployApp(c.Request.Context(), req.AppID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK(url))
}

// parsePageParams читает параметры пагинации из query-строки.
func parsePageParams(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	return page, pageSize
}
