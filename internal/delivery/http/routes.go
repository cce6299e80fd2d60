package http

import (
	"github.com/gin-gonic/gin"

	"github.com/listinglens/dashboard/config"
	"github.com/listinglens/dashboard/internal/delivery/page"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.SetHTMLTemplate(page.Template())

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	uploadLimit := RateLimitMiddleware(cfg.RateLimit.PerIP)

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// Dashboard page
	router.GET("/", handler.Index)
	router.POST("/", uploadLimit, handler.Upload)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		reports := v1.Group("/reports")
		{
			reports.POST("", uploadLimit, handler.CreateReport)
			reports.GET("/:id", handler.GetReport)
			reports.GET("/:id/charts/:chart", handler.GetChart)
		}
	}

	return router
}
