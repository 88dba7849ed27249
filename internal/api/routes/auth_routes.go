package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BenAji/agora/internal/api/handlers"
	"github.com/BenAji/agora/internal/api/middleware"
)

type AuthRoutes struct {
	handler   *handlers.AuthHandler
	jwtSecret string
}

func NewAuthRoutes(handler *handlers.AuthHandler, jwtSecret string) *AuthRoutes {
	return &AuthRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers signup, login and profile routes
func (r *AuthRoutes) RegisterRoutes(router *gin.Engine) {
	auth := router.Group("/api/auth")

	auth.POST("/signup", r.handler.Signup)
	auth.POST("/login", r.handler.Login)

	auth.GET("/me", middleware.NewAuthMiddleware(r.jwtSecret), r.handler.Me)
}
