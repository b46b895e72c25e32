// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quotedesk/backend/internal/config"
	"github.com/quotedesk/backend/internal/handlers"
	"github.com/quotedesk/backend/internal/middleware"
	"github.com/quotedesk/backend/internal/policy"
	"github.com/quotedesk/backend/internal/services"
	"github.com/quotedesk/backend/internal/store"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	rules := policy.DefaultRuleset()
	st := store.NewGormStore(db)
	quoteService := services.NewQuoteService(st, rules)
	approvalService := services.NewApprovalService(st, rules)

	// Initialize handlers
	quoteHandler := handlers.NewQuoteHandler(quoteService, approvalService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		quotes := v1.Group("/quotes")
		{
			quotes.POST("", quoteHandler.CreateQuote)
			quotes.GET("", quoteHandler.GetQuotes)
			quotes.GET("/:id", quoteHandler.GetQuote)
			quotes.POST("/:id/decision", quoteHandler.RecordDecision)
			quotes.POST("/:id/recall", quoteHandler.RecallQuote)
		}
	}

	return r
}
