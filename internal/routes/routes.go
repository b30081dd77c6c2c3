package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/robparra/chatbot/internal/config"
	"github.com/robparra/chatbot/internal/handlers"
	"github.com/robparra/chatbot/internal/middleware"
	"github.com/robparra/chatbot/internal/models"
	"github.com/robparra/chatbot/internal/responder"
	"github.com/robparra/chatbot/internal/services"
	"github.com/robparra/chatbot/internal/store"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	accountStore := store.NewAccountStore(db)
	responseStore := store.NewResponseStore(db)

	completionService := services.NewCompletionService(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.CompletionTimeout)
	router := responder.New(completionService)

	authHandler := handlers.NewAuthHandler(accountStore, cfg)
	accountHandler := handlers.NewAccountHandler(accountStore)
	responsesHandler := handlers.NewResponsesHandler(responseStore)
	aiHandler := handlers.NewAIHandler(responseStore, completionService)
	adminHandler := handlers.NewAdminHandler(accountStore)
	webhookHandler := handlers.NewWebhookHandler(accountStore, responseStore, router, cfg.WebhookAuthToken)

	// Messaging-provider callback
	app.Post("/webhook", webhookHandler.Receive)

	api := app.Group("/api")

	// Auth routes
	users := api.Group("/users")
	users.Post("/register", authHandler.Register)
	users.Post("/login", authHandler.Login)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Get("/account", accountHandler.GetAccount)
	protected.Get("/responses", responsesHandler.GetResponses)
	protected.Post("/responses", responsesHandler.SetResponses)

	// AI features require an explicit plan set; premium alone does not
	// imply pro capabilities.
	ai := protected.Group("/ai", middleware.RequirePlans(models.PlanPro, models.PlanPremium))
	ai.Post("/preview", aiHandler.Preview)

	// Operator routes
	admin := api.Group("/admin", middleware.AdminAuthMiddleware(cfg.AdminToken))
	admin.Put("/accounts/:id/plan", adminHandler.UpdatePlan)
}
