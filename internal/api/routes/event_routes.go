package routes

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/BenAji/agora/internal/api/handlers"
	"github.com/BenAji/agora/internal/api/middleware"
	"github.com/BenAji/agora/internal/domain/user"
)

type EventRoutes struct {
	handler   *handlers.EventHandler
	jwtSecret string
}

func NewEventRoutes(handler *handlers.EventHandler, jwtSecret string) *EventRoutes {
	return &EventRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers event routes. Reads are open to any authenticated
// user; publishing, updating and deleting require the IR admin role.
func (r *EventRoutes) RegisterRoutes(router *gin.Engine) {
	events := router.Group("/api/events")
	events.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	events.GET("", gzip.Gzip(gzip.DefaultCompression), r.handler.ListEvents)
	events.GET("/:id", r.handler.GetEvent)

	admin := events.Group("")
	admin.Use(middleware.RequireRole(string(user.RoleIRAdmin)))
	admin.POST("", r.handler.CreateEvent)
	admin.PUT("/:id", r.handler.UpdateEvent)
	admin.DELETE("/:id", r.handler.DeleteEvent)
}
