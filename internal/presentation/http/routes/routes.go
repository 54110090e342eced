// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/embedworks/embedvideo-go/internal/application/container"
	"github.com/embedworks/embedvideo-go/internal/presentation/http/handlers"
	"github.com/embedworks/embedvideo-go/internal/presentation/http/middleware"
	"github.com/embedworks/embedvideo-go/pkg/config"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(c *container.Container) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestIDMiddleware())

	// Thumbnails and other media assets are served straight from disk.
	r.Static("/media", config.MediaPath)

	embedHandlers := handlers.NewEmbedHandlers(c.EmbedService, c.Logger, c.PerfTracker)
	providerHandlers := handlers.NewProviderHandlers(c.ProviderService, c.Logger, c.PerfTracker)
	authHandlers := handlers.NewAuthHandlers(c.AuthService, c.Logger, c.PerfTracker)
	systemHandlers := handlers.NewSystemHandlers(c)

	api := r.Group("/api/v1")
	{
		api.GET("/health", systemHandlers.GetHealth)

		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandlers.PostLogin)
			auth.GET("/status", authHandlers.GetAuthStatus)
		}

		api.GET("/embed", embedHandlers.GetEmbed)
		api.POST("/embed", embedHandlers.PostEmbed)

		api.GET("/providers", providerHandlers.GetProviders)
		api.GET("/providers/:name", providerHandlers.GetProvider)

		admin := api.Group("")
		admin.Use(middleware.AdminAuthMiddleware())
		{
			admin.PUT("/providers/:name", providerHandlers.PutProvider)
			admin.DELETE("/providers/:name", providerHandlers.DeleteProvider)
			admin.POST("/providers/:name/thumbnail", providerHandlers.PostProviderThumbnail)
			admin.GET("/perf", systemHandlers.GetPerformance)
		}
	}

	return r
}
