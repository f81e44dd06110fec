package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/curalink/curalink-server/controllers"
	"github.com/curalink/curalink-server/middleware"
)

// SetupAIRoutes configures the AI assistance routes
func SetupAIRoutes(app *fiber.App) {
	ai := app.Group("/api/ai", middleware.Protected())
	ai.Post("/summarize", controllers.Summarize)
	ai.Post("/smart-search", controllers.SmartSearch)
}
