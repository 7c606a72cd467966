package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mvogel/agentur-crm/internal/config"
	"github.com/mvogel/agentur-crm/internal/database"
	"github.com/mvogel/agentur-crm/internal/logging"
	"github.com/mvogel/agentur-crm/internal/routes"
)

func main() {
	// .env is optional; real deployments use the environment directly
	godotenv.Load()

	logging.Init()
	defer logging.Logger.Sync()

	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		logging.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(); err != nil {
		logging.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName: "agentur-crm",
	})
	app.Use(recover.New())
	app.Use(cors.New())

	routes.Setup(app)

	logging.Logger.Info("Starting server", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logging.Logger.Fatal("Server stopped", zap.Error(err))
	}
}
