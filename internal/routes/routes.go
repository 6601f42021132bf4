package routes

import (
	"net/http"

	"gigup_backend/internal/handlers"
	"gigup_backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes регистрирует HTTP API и служебные эндпоинты.
// limit - middleware ограничения частоты для эндпоинтов входа
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	limit gin.HandlerFunc,
) {
	api := ginRouter.Group("/api")
	appHandlers.RegisterRoutes(api, limit)

	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	ginRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	logger.Info("HTTP routes registered", "count", len(ginRouter.Routes()))
}
