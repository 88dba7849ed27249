package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/BenAji/agora/internal/api/dto"
	"github.com/BenAji/agora/internal/api/handlers"
	"github.com/BenAji/agora/internal/api/middleware"
	"github.com/BenAji/agora/internal/api/routes"
	"github.com/BenAji/agora/internal/domain/calendar"
	"github.com/BenAji/agora/internal/domain/company"
	"github.com/BenAji/agora/internal/domain/event"
	"github.com/BenAji/agora/internal/domain/rsvp"
	"github.com/BenAji/agora/internal/domain/subscription"
	"github.com/BenAji/agora/internal/domain/user"
	"github.com/BenAji/agora/internal/infrastructure/cache"
	"github.com/BenAji/agora/internal/infrastructure/persistence/postgres/connection"
	"github.com/BenAji/agora/internal/infrastructure/persistence/postgres/migrations"
	"github.com/BenAji/agora/internal/infrastructure/scheduler"
	"github.com/BenAji/agora/pkg/config"
	"github.com/BenAji/agora/pkg/logger"
	"github.com/BenAji/agora/pkg/security/auth"
)

// @title           Agora API
// @version         1.0
// @description     Investor-relations event coordination: published calendar events, analyst RSVPs and sector subscription feeds.

// @host      localhost:8000
// @BasePath

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// RequestLoggerMiddleware logs all incoming HTTP requests
func RequestLoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("Request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("") // Empty string will make it search in default locations
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	log := logger.NewLoggerWithLevel(cfg.Logging.Level)
	defer log.Sync()

	log.Info("Configuration loaded successfully")
	log.Info("Server mode: " + cfg.Server.Mode)

	// Set up Gin
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	gin.DefaultWriter = os.Stdout

	dto.RegisterValidators()

	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware(log))
	router.Use(middleware.MetricsMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: cfg.CORS.AllowedMethods,
		AllowHeaders: append(cfg.CORS.AllowedHeaders,
			"Accept-Encoding",
			"Content-Encoding",
			"Content-Type",
			"Authorization",
		),
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Encoding",
			"Content-Type",
		},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	// Add Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Connect to database
	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if err := migrations.AutoMigrate(db, log.Logger); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize Redis
	redisConfig := cache.NewConfigFromEnv(cfg)
	redisClient, err := cache.NewRedisClient(redisConfig, log.Logger)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Initialize rate limiter with Redis client
	rateLimiter := auth.NewRedisRateLimiter(redisClient.GetClient(), 1*time.Minute, 1000)

	// Initialize repositories
	userRepo := user.NewRepository(db.DB)
	companyRepo := company.NewRepository(db.DB)
	eventRepo := event.NewRepository(db.DB)
	rsvpRepo := rsvp.NewRepository(db.DB)
	subscriptionRepo := subscription.NewRepository(db.DB)

	// Initialize services
	userService := user.NewService(userRepo, log.Logger)
	companyService := company.NewService(companyRepo)
	eventService := event.NewService(eventRepo, redisClient, log.Logger)
	rsvpService := rsvp.NewService(rsvpRepo, eventRepo, redisClient, log.Logger)
	subscriptionService := subscription.NewService(subscriptionRepo, redisClient, log.Logger)
	calendarService := calendar.NewService(eventRepo, companyRepo, subscriptionRepo, redisClient, log.Logger)

	// Initialize and start the subscription expiry scheduler
	expiryScheduler := scheduler.NewScheduler(subscriptionService, log)
	expiryScheduler.Start()
	defer expiryScheduler.Stop()
	log.Info("Subscription expiry scheduler started")

	// Initialize handlers
	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTExpiryHours)
	authHandler := handlers.NewAuthHandler(userService, jwtService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	eventHandler := handlers.NewEventHandler(eventService)
	rsvpHandler := handlers.NewRSVPHandler(rsvpService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, companyService)
	calendarHandler := handlers.NewCalendarHandler(calendarService)
	healthHandler := handlers.NewHealthHandler(db, redisClient)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check routes (no auth, for load balancers)
	routes.NewHealthRoutes(healthHandler).RegisterRoutes(router)

	// Auth routes stay outside the rate-limited group so lockouts are
	// governed only by credential checks
	routes.NewAuthRoutes(authHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)

	// Apply rate limiting middleware to everything registered below
	router.Use(middleware.RateLimitMiddleware(rateLimiter))

	routes.NewCompanyRoutes(companyHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	routes.NewEventRoutes(eventHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	routes.NewRSVPRoutes(rsvpHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	routes.NewSubscriptionRoutes(subscriptionHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	routes.NewCalendarRoutes(calendarHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	log.Info("Registered API routes")

	// Start server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info(fmt.Sprintf("Server starting on port %d", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited properly")
}
