package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/curalink/curalink-server/controllers/researcher"
	"github.com/curalink/curalink-server/middleware"
)

// SetupResearcherRoutes configures all researcher related routes
func SetupResearcherRoutes(app *fiber.App) {
	researchers := app.Group("/api/researchers")

	// Public listing
	researchers.Get("/collaborators", researcher.GetCollaborators)

	// Protected routes
	researchers.Post("/profile", middleware.Protected(), researcher.CreateProfile)
	researchers.Get("/dashboard", middleware.Protected(), researcher.GetDashboard)
	researchers.Post("/clinical-trials", middleware.Protected(), researcher.CreateTrial)
	researchers.Get("/clinical-trials", middleware.Protected(), researcher.ListOwnTrials)
	researchers.Put("/clinical-trials/:id", middleware.Protected(), researcher.UpdateTrial)
}
