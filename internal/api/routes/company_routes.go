package routes

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/BenAji/agora/internal/api/handlers"
	"github.com/BenAji/agora/internal/api/middleware"
	"github.com/BenAji/agora/internal/domain/user"
)

type CompanyRoutes struct {
	handler   *handlers.CompanyHandler
	jwtSecret string
}

func NewCompanyRoutes(handler *handlers.CompanyHandler, jwtSecret string) *CompanyRoutes {
	return &CompanyRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers company catalog routes
func (r *CompanyRoutes) RegisterRoutes(router *gin.Engine) {
	companies := router.Group("/api/companies")
	companies.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	companies.GET("", r.handler.ListCompanies)
	companies.GET("/gics", gzip.Gzip(gzip.DefaultCompression), r.handler.ListGicsCompanies)
	companies.GET("/:id", r.handler.GetCompany)

	admin := companies.Group("")
	admin.Use(middleware.RequireRole(string(user.RoleIRAdmin)))
	admin.POST("", r.handler.CreateCompany)
	admin.POST("/gics", r.handler.CreateGicsCompany)
}
