package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HealthHandler отвечает на healthcheck-запросы.
type HealthHandler struct {
	pool *pgxpool.Pool
}

// NewHealthHandler создает обработчик healthcheck.
func NewHealthHandler(pool *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{pool: pool}
}

// RegisterRoutes регистрирует маршрут /health.
func (h *HealthHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.health)
}

func (h *HealthHandler) health(c *gin.Context) {
	if err := h.pool.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
