package main

import (
	"github.com/gin-gonic/gin"

	"analytics-gate.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	authHandler          *handlers.AuthHandler
	analyticsHandler     *handlers.AnalyticsHandler
	loginHandler         *handlers.GoogleLoginHandler
	googleAuthMiddleware gin.HandlerFunc
	apiKeyMiddleware     gin.HandlerFunc
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	// Browser OAuth helper (public)
	authFlow := r.Group("/auth")
	{
		authFlow.GET("/google", d.loginHandler.Login)
		authFlow.GET("/google/callback", d.loginHandler.Callback)
		authFlow.GET("/logout", d.loginHandler.Logout)
	}

	api := r.Group("/api")
	{
		// Management plane (Google identity)
		auth := api.Group("/auth")
		auth.Use(d.googleAuthMiddleware)
		{
			auth.POST("/register", d.authHandler.Register)
			auth.GET("/api-key", d.authHandler.GetAPIKeys)
			auth.POST("/revoke-api-key", d.authHandler.RevokeAPIKey)
			auth.POST("/regenerate-api-key", d.authHandler.RegenerateAPIKey)
		}

		// Data plane (API key)
		analytics := api.Group("/analytics")
		analytics.Use(d.apiKeyMiddleware)
		{
			analytics.POST("/collect", d.analyticsHandler.CollectEvent)
			analytics.GET("/event-summary", d.analyticsHandler.GetEventSummary)
			analytics.GET("/user-stats", d.analyticsHandler.GetUserStats)
		}
	}
}
