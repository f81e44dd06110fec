package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/curalink/curalink-server/cron"
	"github.com/curalink/curalink-server/db"
	"github.com/curalink/curalink-server/redis"
	"github.com/curalink/curalink-server/routes"
	"github.com/curalink/curalink-server/utils"
)

func main() {
	app := fiber.New()
	db.Migrate()
	redis.InitRedis()

	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
	}))

	app.Get("/api/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "CuraLink API"})
	})

	routes.SetupAuthRoutes(app)
	routes.SetupPatientRoutes(app)
	routes.SetupResearcherRoutes(app)
	routes.SetupCommunityRoutes(app)
	routes.SetupAIRoutes(app)

	cron.StartCronJobs()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	if err := app.Listen(":" + port); err != nil {
		utils.Log.Fatalf("Server failed to start: %v", err)
	}
}
