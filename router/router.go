// api/router/router.go

package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/farrowscore/api/controller"
	"github.com/farrowscore/api/middleware"
	"github.com/farrowscore/api/model"
	"github.com/farrowscore/api/service"
)

// SetupRouter mounts every route under /api/v1. The rate limiter is installed
// only when a Redis client is supplied.
func SetupRouter(
	controllers *controller.Controllers,
	access service.IAccessService,
	redisClient redis.UniversalClient,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
) *gin.Engine {
	router := gin.New()
	// Forwarded headers are ignored until the caller trusts specific proxies,
	// so the rate limiter sees the socket address.
	router.SetTrustedProxies(nil)
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.UserIdentity())
	if redisClient != nil {
		router.Use(middleware.RateLimiter(redisClient, rateLimitRequests, rateLimitDuration))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	controllers.Game.RegisterRoutes(api)
	controllers.Payment.RegisterRoutes(api)

	api.GET("/games/:id/players",
		middleware.RequirePremium(access, model.FeatureAdvancedStats, "id"),
		controllers.Game.ListGamePlayers)
	api.GET("/history",
		middleware.RequirePremium(access, model.FeatureHistoricalData, ""),
		controllers.Game.ListHistoricalGames)

	return router
}
