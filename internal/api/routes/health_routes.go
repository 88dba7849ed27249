package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BenAji/agora/internal/api/handlers"
)

type HealthRoutes struct {
	handler *handlers.HealthHandler
}

func NewHealthRoutes(handler *handlers.HealthHandler) *HealthRoutes {
	return &HealthRoutes{handler: handler}
}

// RegisterRoutes registers liveness and store connectivity probes.
// These stay unauthenticated so load balancers can reach them.
func (r *HealthRoutes) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", r.handler.Health)
	router.GET("/api/test-db", r.handler.TestDB)
}
