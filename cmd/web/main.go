package main

import (
	"github.com/joho/godotenv"

	"rapidjobs_backend/internal/app"
	"rapidjobs_backend/internal/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, relying on environment")
	}
	app.Run()
}
