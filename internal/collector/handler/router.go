package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/common/middleware"
)

const serviceName = "linkvault"

type RouterConfig struct {
	LinkHandler    *LinkHandler
	WebhookHandler *WebhookHandler
	RateLimiter    *middleware.RateLimiterMiddleware
	Logger         *slog.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()

	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(cfg.Logger),
		middleware.NewMetricsMiddleware(serviceName).Handler(),
	)

	api := router.Group("/api")

	// Вебхук не ограничивается: ответ 429 платформа считает неудачной доставкой.
	api.POST("/whatsapp", cfg.WebhookHandler.HandleMessage)

	links := api.Group("/links")
	if cfg.RateLimiter != nil {
		links.Use(cfg.RateLimiter.Handler())
	}

	links.GET("", cfg.LinkHandler.ListLinks)
	links.POST("", cfg.LinkHandler.SaveLink)

	return router
}
