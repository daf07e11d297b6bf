package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"epiroom-backend/config"
	"epiroom-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst, cfg.RequestIPHeader)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Upstream planning proxy. Deliberately uncached: real-time data.
		api.GET("/rooms", h.GetRooms)

		// Derived dashboard state, rebuilt by the poller.
		api.GET("/floors", h.GetFloors)

		// Static configuration, immutable at runtime.
		api.GET("/registry", caching, h.GetRegistry)
		api.GET("/regions", caching, h.GetRegions)
		api.GET("/regions/:floor", caching, h.GetFloorRegions)
	}

	return r
}
