package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/freshmarket/internal/config"
	"github.com/example/freshmarket/internal/handlers"
	"github.com/example/freshmarket/internal/metrics"
	"github.com/example/freshmarket/internal/middleware"
	"github.com/example/freshmarket/internal/repository"
	"github.com/example/freshmarket/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, repos *repository.Repositories, cfg *config.Config) {
	telegramService := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat)
	chefService := services.NewChefService(cfg.AssistantURL, cfg.AssistantAPIKey, cfg.AssistantModel)

	authHandler := handlers.NewAuthHandler(repos, cfg)
	productHandler := handlers.NewProductHandler(repos)
	orderHandler := handlers.NewOrderHandler(repos, telegramService)
	profileHandler := handlers.NewProfileHandler(repos)
	adminHandler := handlers.NewAdminHandler(repos)
	settingsHandler := handlers.NewSettingsHandler(repos)
	chefHandler := handlers.NewChefHandler(chefService)

	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")
	requireAuth := middleware.AuthMiddleware(cfg.JWTSecret, repos.Users)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", requireAuth, authHandler.Logout)
	auth.Get("/session", requireAuth, authHandler.Session)

	// Catalog
	api.Get("/categories", productHandler.ListCategories)
	products := api.Group("/products")
	products.Get("/", productHandler.ListProducts)
	products.Get("/:id", productHandler.GetProduct)
	products.Post("/", requireAuth, productHandler.CreateProduct)
	products.Put("/:id", requireAuth, productHandler.UpdateProduct)
	products.Delete("/:id", requireAuth, productHandler.DeleteProduct)

	api.Get("/settings/bank", settingsHandler.GetBankDetails)
	api.Post("/chef", chefHandler.Ask)

	// Protected routes
	api.Post("/orders", requireAuth, orderHandler.CreateOrder)
	api.Get("/orders", requireAuth, orderHandler.ListOrders)
	api.Get("/users/:id/orders", requireAuth, orderHandler.ListUserOrders)

	api.Delete("/profile", requireAuth, profileHandler.DeleteAccount)

	admin := api.Group("/admin", requireAuth)
	admin.Get("/stats", adminHandler.DashboardStats)
	admin.Get("/orders", adminHandler.ListAllOrders)
	admin.Get("/users", adminHandler.ListAllUsers)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
	admin.Put("/settings/bank", settingsHandler.SaveBankDetails)
	admin.Delete("/settings/bank", settingsHandler.UnlinkBankDetails)
	admin.Post("/reset", settingsHandler.ResetDatabase)
}
