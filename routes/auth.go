package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/curalink/curalink-server/controllers"
	"github.com/curalink/curalink-server/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")

	// Public routes
	auth.Post("/register", controllers.Register)
	auth.Post("/login", controllers.Login)
	auth.Post("/forgot-password", controllers.ForgotPassword)
	auth.Post("/reset-password", controllers.ResetPassword)

	// Protected routes
	auth.Get("/me", middleware.Protected(), controllers.Me)
	auth.Post("/logout", middleware.Protected(), controllers.Logout)

	app.Post("/api/profile/picture", middleware.Protected(), controllers.UpdateProfilePicture)
}
