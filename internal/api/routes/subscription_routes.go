package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BenAji/agora/internal/api/handlers"
	"github.com/BenAji/agora/internal/api/middleware"
)

type SubscriptionRoutes struct {
	handler   *handlers.SubscriptionHandler
	jwtSecret string
}

func NewSubscriptionRoutes(handler *handlers.SubscriptionHandler, jwtSecret string) *SubscriptionRoutes {
	return &SubscriptionRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers subscription routes
func (r *SubscriptionRoutes) RegisterRoutes(router *gin.Engine) {
	subs := router.Group("/api/subscriptions")
	subs.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	subs.GET("", r.handler.List)
	subs.POST("", r.handler.Create)
	subs.GET("/sectors", r.handler.SectorCatalog)
	subs.PUT("/:id", r.handler.Update)
	subs.DELETE("/:id", r.handler.Delete)
}
