package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BenAji/agora/internal/api/handlers"
	"github.com/BenAji/agora/internal/api/middleware"
)

type RSVPRoutes struct {
	handler   *handlers.RSVPHandler
	jwtSecret string
}

func NewRSVPRoutes(handler *handlers.RSVPHandler, jwtSecret string) *RSVPRoutes {
	return &RSVPRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers RSVP routes
func (r *RSVPRoutes) RegisterRoutes(router *gin.Engine) {
	rsvps := router.Group("/api/rsvp")
	rsvps.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	rsvps.POST("", r.handler.Upsert)
	rsvps.GET("/user/:userID", r.handler.ListByUser)
	rsvps.GET("/event/:eventID", r.handler.EventSummary)
	rsvps.DELETE("/:eventID", r.handler.Delete)
}
