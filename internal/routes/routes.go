package routes

import (
	_ "auditionhub_backend/docs"
	"auditionhub_backend/internal/handlers"
	"auditionhub_backend/internal/logger"
	"auditionhub_backend/internal/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes mounts every HTTP route. authMW protects the per-user endpoints;
// each handler decides which of its routes need it.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	authMW gin.HandlerFunc,
) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	ginRouter.GET("/metrics", metrics.Handler())
	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api, authMW)
		appHandlers.ProfileHandler.RegisterRoutes(api, authMW)
		appHandlers.ActorHandler.RegisterRoutes(api, authMW)
		appHandlers.AuditionHandler.RegisterRoutes(api, authMW)
		appHandlers.ExpenseHandler.RegisterRoutes(api, authMW)
		appHandlers.ContactHandler.RegisterRoutes(api, authMW)
		appHandlers.BookingHandler.RegisterRoutes(api, authMW)
		appHandlers.SubscriptionHandler.RegisterRoutes(api, authMW)
		appHandlers.EmailHandler.RegisterRoutes(api, authMW)
		appHandlers.ImportHandler.RegisterRoutes(api, authMW)
		appHandlers.AnalyticsHandler.RegisterRoutes(api, authMW)
		appHandlers.UploadHandler.RegisterRoutes(api, authMW)
		appHandlers.AdminHandler.RegisterRoutes(api, authMW)
		appHandlers.FileHandler.RegisterRoutes(api)
	}
	logger.Debug("HTTP routes registered", "count", len(ginRouter.Routes()))
}
