package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BenAji/agora/internal/infrastructure/cache"
	"github.com/BenAji/agora/internal/infrastructure/persistence/postgres/connection"
)

// HealthHandler reports liveness and store connectivity
type HealthHandler struct {
	db    *connection.Database
	redis *cache.RedisClient
}

// NewHealthHandler creates a new health handler instance
func NewHealthHandler(db *connection.Database, redis *cache.RedisClient) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// TestDB godoc
// @Summary Store connectivity probe
// @Description Ping the database and the cache, reporting each independently
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/test-db [get]
func (h *HealthHandler) TestDB(c *gin.Context) {
	status := http.StatusOK
	result := gin.H{"database": "ok", "cache": "ok"}

	if err := h.db.Ping(); err != nil {
		status = http.StatusServiceUnavailable
		result["database"] = err.Error()
	}

	if h.redis == nil {
		result["cache"] = "disabled"
	} else if err := h.redis.HealthCheck(c.Request.Context()); err != nil {
		status = http.StatusServiceUnavailable
		result["cache"] = err.Error()
	}

	c.JSON(status, result)
}
