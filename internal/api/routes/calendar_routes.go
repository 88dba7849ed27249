package routes

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/BenAji/agora/internal/api/handlers"
	"github.com/BenAji/agora/internal/api/middleware"
)

type CalendarRoutes struct {
	handler   *handlers.CalendarHandler
	jwtSecret string
}

func NewCalendarRoutes(handler *handlers.CalendarHandler, jwtSecret string) *CalendarRoutes {
	return &CalendarRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers the aggregated calendar views. The month grid is
// the largest payload the API serves, so it goes out compressed.
func (r *CalendarRoutes) RegisterRoutes(router *gin.Engine) {
	calendar := router.Group("/api/calendar")
	calendar.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	calendar.GET("", gzip.Gzip(gzip.DefaultCompression), r.handler.MonthGrid)
	calendar.GET("/week", r.handler.WeekGrid)
}
