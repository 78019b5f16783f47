package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nutriswap/backend/config"
	"github.com/nutriswap/backend/internal/infrastructure/metrics"
)

// SetupRouter creates and configures the Gin router. m may be nil to run
// without metrics.
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger, m *metrics.Metrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	if m != nil {
		router.Use(MetricsMiddleware(m))
		router.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))
	{
		ingredients := v1.Group("/ingredients")
		{
			ingredients.GET("", handler.SearchIngredients)
			ingredients.GET("/:name", handler.GetIngredient)
		}

		v1.GET("/strategies", handler.ListStrategies)

		swaps := v1.Group("/swaps")
		{
			swaps.POST("/find", handler.FindSwaps)
			swaps.POST("/recommend", handler.Recommend)
			swaps.POST("/preview", handler.Preview)
			swaps.POST("/apply", handler.ApplySwap)
			swaps.GET("/history", handler.ListHistory)
			swaps.GET("/history/:id", handler.GetHistoryRecord)
		}
	}

	return router
}
