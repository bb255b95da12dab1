package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/ArgyPorgy/stx-names-indexer/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig, webhookSecret string) {
	// Health check endpoint (no auth, no prefix)
	router.GET("/health", handler.HealthCheck)

	api := router.Group("/api")
	{
		// Read endpoints (public)
		api.GET("/usernames", handler.ListUsernames)
		api.GET("/usernames/owner/:owner", handler.GetUsernameByOwner)
		api.GET("/usernames/:username", handler.GetUsername)
		api.GET("/events/recent", handler.ListRecentEvents)
		api.GET("/stats", handler.GetStats)

		// Debug insert (requires authentication)
		api.POST("/test/insert-username", middleware.Auth(authCfg), handler.InsertUsername)

		// Chainhook webhook endpoints, one per registry function, all served
		// by the same envelope handler (optionally guarded by shared secret)
		hooks := api.Group("/chainhooks", middleware.ChainhookAuth(webhookSecret))
		{
			hooks.POST("/register-username", handler.HandleWebhook)
			hooks.POST("/transfer-username", handler.HandleWebhook)
			hooks.POST("/release-username", handler.HandleWebhook)
		}
	}
}
