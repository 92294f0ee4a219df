package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestLogger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(SecurityHeadersMiddleware())

	health := NewHealthController(cfg.Store, cfg.Rotation, cfg.Version)
	slokas := NewSlokasController(cfg.Slokas, cfg.Tracker)
	favourites := NewFavouritesController(cfg.Slokas, cfg.Tracker)
	profile := NewProfileController(cfg.Slokas, cfg.Tracker, cfg.Profile)

	router.GET("/health", health.Status)

	api := router.Group("/api")
	{
		api.GET("/chapters", slokas.ListChapters)
		api.GET("/chapters/:number", slokas.GetChapter)

		// Static segments take precedence over :id in gin's tree
		api.GET("/slokas/daily", slokas.Daily)
		api.GET("/slokas/random", slokas.Random)
		api.GET("/slokas/:id", slokas.GetSloka)
		api.POST("/slokas/:id/read", slokas.MarkRead)
		api.POST("/slokas/:id/favourite/toggle", favourites.ToggleFavourite)

		api.GET("/favourites", favourites.ListFavourites)
		api.DELETE("/favourites/:id", favourites.RemoveFavourite)

		api.GET("/stats", profile.Stats)
		api.GET("/profile", profile.GetProfile)
		api.PUT("/profile/username", profile.UpdateUsername)
		api.DELETE("/profile/username", profile.ClearUsername)

		api.GET("/rotation", health.Rotation)

		if cfg.Signal != nil {
			lc := NewLifecycleController(cfg.Signal)
			api.POST("/lifecycle", lc.Publish)
		}
	}

	return router
}
