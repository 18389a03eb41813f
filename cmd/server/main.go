package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/freshmarket/internal/bootstrap"
	"github.com/example/freshmarket/internal/config"
	"github.com/example/freshmarket/internal/metrics"
	"github.com/example/freshmarket/internal/routes"
)

func main() {
	cfg := config.Load()

	rt, err := bootstrap.Boot(context.Background(), cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer rt.Close()

	app := fiber.New(fiber.Config{
		AppName: "FreshMarket Backend",
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(metrics.Middleware())

	routes.Register(app, rt.Repos, cfg)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
