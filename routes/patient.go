package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/curalink/curalink-server/controllers/patient"
	"github.com/curalink/curalink-server/middleware"
)

// SetupPatientRoutes configures all patient related routes
func SetupPatientRoutes(app *fiber.App) {
	patients := app.Group("/api/patients")

	// Public search/listing routes
	patients.Get("/experts", patient.GetHealthExperts)
	patients.Get("/clinical-trials", patient.SearchClinicalTrials)
	patients.Get("/publications", patient.SearchPublications)

	// Protected routes
	patients.Post("/profile", middleware.Protected(), patient.CreateProfile)
	patients.Get("/profile", middleware.Protected(), patient.GetProfile)
	patients.Get("/dashboard", middleware.Protected(), patient.GetDashboard)
}
