// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/socialpulse/socialpulse-go/internal/application/container"
	"github.com/socialpulse/socialpulse-go/internal/domain/user"
	"github.com/socialpulse/socialpulse-go/internal/presentation/http/handlers"
	"github.com/socialpulse/socialpulse-go/internal/presentation/http/middleware"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SlowRequestMiddleware(container.Logger))

	// Initialize handlers
	systemHandlers := handlers.NewSystemHandlers(container.PerfTracker)
	csrfHandlers := handlers.NewCsrfHandlers(container.CsrfService, container.Logger, container.PerfTracker)
	metricHandlers := handlers.NewMetricHandlers(container.MetricService, container.Logger, container.PerfTracker)
	analyticsHandlers := handlers.NewAnalyticsHandlers(container.AnalyticsService, container.Logger, container.PerfTracker)
	authHandlers := handlers.NewAuthHandlers(container.AuthService, container.CsrfService, container.Logger, container.PerfTracker)
	syncHandlers := handlers.NewSyncHandlers(container.SyncService, container.Logger, container.PerfTracker)
	liveHandlers := handlers.NewLiveHandlers(container.Broadcaster, container.Logger)

	r.GET("/", systemHandlers.GetRoot)

	api := r.Group("/api")
	// Mutating routes pass the CSRF check first, then identity resolution,
	// then the per-route permission gate.
	api.Use(middleware.CSRFMiddleware(container.CsrfService, container.Logger))
	api.Use(middleware.IdentityMiddleware(container.AuthService))
	{
		api.GET("/health", systemHandlers.GetHealth)
		api.GET("/csrf-token", csrfHandlers.GetToken)

		api.POST("/auth/login", authHandlers.PostLogin)
		api.POST("/auth/logout", authHandlers.PostLogout)
		api.GET("/auth/status", authHandlers.GetStatus)

		api.GET("/followers", metricHandlers.GetFollowers)
		api.GET("/overview", metricHandlers.GetOverview)
		api.GET("/total-followers", metricHandlers.GetTotalFollowers)
		api.GET("/analytics", analyticsHandlers.GetSeries)

		api.PATCH("/followers/:id",
			middleware.RequirePermission(user.PermissionEdit), metricHandlers.PatchFollower)
		api.PATCH("/overview/:id",
			middleware.RequirePermission(user.PermissionEdit), metricHandlers.PatchOverview)

		api.POST("/followers/:id/sync",
			middleware.RequirePermission(user.PermissionManageUsers), syncHandlers.PostSyncFollower)

		api.GET("/live", liveHandlers.GetLive)
	}

	return r
}
