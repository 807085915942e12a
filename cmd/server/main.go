// Package main is the entry point for the application.
// It initializes all dependencies, sets up the HTTP server, starts the
// recurring payment scheduler and handles graceful shutdown.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"digiwallet/internal/config"
	"digiwallet/internal/repositories"
	"digiwallet/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	db, err := repositories.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb := repositories.NewRedisClient()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "digiwallet",
		DisableStartupMessage: config.IsProduction(),
	})
	app.Use(recover.New())
	app.Use(logger.New())

	recurringService := routes.SetupRoutes(app, db, rdb, cfg)

	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	go recurringService.Run(schedulerCtx)

	go func() {
		port := config.GetEnv("PORT", "8080")
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	stopScheduler()
	if err := app.Shutdown(); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := rdb.Close(); err != nil {
		log.Printf("Redis close error: %v", err)
	}
	log.Println("Shutdown complete")
}
