package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rapidjobs_backend/database"
	"rapidjobs_backend/internal/config"
	"rapidjobs_backend/internal/handlers"
	"rapidjobs_backend/internal/logger"
	"rapidjobs_backend/internal/middleware"
	"rapidjobs_backend/internal/push"
	"rapidjobs_backend/internal/routes"
	"rapidjobs_backend/internal/services"
	"rapidjobs_backend/internal/validator"
	"rapidjobs_backend/internal/verify"
	"rapidjobs_backend/ws"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.Connect()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}
	logger.Info("Schema migrated")

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	wsManager := ws.NewManager()
	go wsManager.Run()

	container := services.NewServiceContainer(
		gormDB,
		buildVerifier(cfg),
		buildPushGateway(cfg),
		wsManager,
	)

	appHandlers := handlers.NewAppHandlers(container, validator.New(), wsManager)

	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	ginRouter := gin.New()
	ginRouter.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.CORSMiddleware(),
	)

	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}

func buildVerifier(cfg *config.Config) verify.Provider {
	if cfg.Verify.Provider == "twilio" {
		return verify.NewTwilioProvider(cfg.Verify.AccountSID, cfg.Verify.AuthToken, cfg.Verify.ServiceSID)
	}
	logger.Warn("Using mock phone verification, codes are not sent")
	return verify.NewMockProvider()
}

func buildPushGateway(cfg *config.Config) push.Gateway {
	if cfg.Push.Provider == "expo" {
		return push.NewExpoGateway(cfg.Push.Endpoint)
	}
	logger.Warn("Push delivery disabled, notifications are feed-only")
	return push.Noop{}
}
