package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"taskmaster/interfaces/api/handlers"
	"taskmaster/interfaces/api/routes"
	"taskmaster/pkg/di"
	"taskmaster/pkg/logger"
)

func main() {
	// Initialize DI container
	container := di.NewContainer()

	// Initialize all dependencies (including logger)
	if err := container.Initialize(); err != nil {
		panic("Failed to initialize container: " + err.Error())
	}

	cfg := container.GetConfig()

	// Create handlers from services
	h := handlers.NewHandlers(container.GetHandlerServices())

	app := routes.NewApp(routes.AppOptions{
		Name:         cfg.App.Name,
		AllowOrigins: cfg.App.AllowOrigins,
	}, h)

	// Setup graceful shutdown
	setupGracefulShutdown(app, container)

	port := cfg.App.Port
	logger.Info("Server starting",
		"port", port,
		"env", cfg.App.Env,
		"app", cfg.App.Name,
		"store", cfg.Store.Type,
	)
	logger.Info("Endpoints available",
		"health", "http://localhost:"+port+"/health",
		"api", "http://localhost:"+port+"/api",
	)

	if err := app.Listen(":" + port); err != nil {
		logger.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}

func setupGracefulShutdown(app *fiber.App, container *di.Container) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("Gracefully shutting down...")

		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("Error stopping HTTP server", "error", err)
		}

		if err := container.Cleanup(); err != nil {
			logger.Error("Error during cleanup", "error", err)
		}

		logger.Info("Shutdown complete")
		os.Exit(0)
	}()
}
