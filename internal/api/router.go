package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"room-lease-backend/config"
	"room-lease-backend/internal/lease"
	"room-lease-backend/internal/mw"
	"room-lease-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.ServerConfig, s store.Store, lifecycle *lease.Lifecycle, registry *lease.RoomRegistry) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, lifecycle, registry)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter, mw.Identity(), mw.FlushOnWrite(cacheStore))
	{
		api.POST("/contracts", handler.PostContract)
		api.POST("/contracts/:id/accept", handler.AcceptContract)
		api.GET("/contracts/:id", handler.GetContract)
		api.GET("/contracts", handler.ListContracts)

		api.POST("/rooms", handler.PostRoom)
		api.GET("/rooms", handler.ListRooms)
		api.GET("/rooms/available", caching, handler.ListAvailableRooms)
		api.POST("/rooms/:id/attach/:property_id", handler.AttachRoom)
		api.POST("/rooms/:id/detach", handler.DetachRoom)
		api.DELETE("/rooms/:id", handler.DeleteRoom)

		api.POST("/properties", handler.PostProperty)
		api.GET("/properties", handler.ListProperties)
		api.GET("/properties/:id", handler.GetProperty)
		api.DELETE("/properties/:id", handler.DeleteProperty)
	}

	return r
}
