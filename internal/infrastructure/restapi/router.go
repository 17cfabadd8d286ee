package restapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRouter настраивает и возвращает экземпляр Gin роутера.
func SetupRouter(h *PortfolioHandler, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(ZapLoggerMiddleware(logger))
	router.Use(gin.Recovery())

	// Группа для API v1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/accounts", h.ListAccounts)
		v1.POST("/accounts/wallets", h.AddWallet)
		v1.POST("/accounts/exchanges", h.AddExchange)
		v1.POST("/accounts/:id/refresh", h.RefreshAccount)
		v1.DELETE("/accounts/:id", h.RemoveAccount)
		v1.POST("/refresh", h.RefreshAll)
		v1.GET("/portfolio", h.GetPortfolio)

		v1.GET("/session", h.GetSession)
		v1.POST("/session", h.StartSession)
		v1.DELETE("/session", h.ClearSession)

		v1.GET("/exchanges", h.ListExchanges)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) { c.Status(200) })

	return router
}
