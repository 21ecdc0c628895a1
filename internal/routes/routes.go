package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rapidjobs_backend/internal/handlers"
	"rapidjobs_backend/internal/logger"
	"rapidjobs_backend/internal/middleware"
)

// RegisterRoutes wires every HTTP and WebSocket route.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.Auth.RegisterRoutes(api)
		appHandlers.Jobs.RegisterRoutes(api)
		appHandlers.Requests.RegisterRoutes(api)
		appHandlers.Reviews.RegisterRoutes(api)
		appHandlers.Chat.RegisterRoutes(api)
		appHandlers.Notifications.RegisterRoutes(api)
	}

	wsGroup := ginRouter.Group("/ws")
	wsGroup.Use(middleware.AuthMiddleware())
	{
		wsGroup.GET("", appHandlers.WebSocket.ServeWS)
	}
	logger.Info("WebSocket route /ws registered")
}
