package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"headlines/internal/api/middleware"
)

func NewRouter(h *Handler, health *HealthHandler, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(middleware.Logger(logger))

	router.GET("/health", health.Health)
	router.GET("/live", health.Live)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		headlines := v1.Group("/headlines")
		{
			headlines.GET("", h.GetHeadlines)
			headlines.POST("/refresh", h.Refresh)
		}

		v1.GET("/search", h.GetSearch)
		v1.PUT("/search", h.SetSearch)

		history := v1.Group("/history")
		{
			history.GET("", h.GetHistory)
			history.POST("", h.AddHistory)
			history.DELETE("", h.ClearHistory)
			history.DELETE("/entry", h.RemoveHistory)
		}

		v1.POST("/articles/open", h.OpenArticle)
	}

	return router
}
