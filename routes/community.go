package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/curalink/curalink-server/controllers/community"
	"github.com/curalink/curalink-server/middleware"
)

// SetupCommunityRoutes configures connections, forums, chat, favorites
// and meeting requests.
func SetupCommunityRoutes(app *fiber.App) {
	connections := app.Group("/api/connection-requests", middleware.Protected())
	connections.Post("/", community.CreateConnectionRequest)
	connections.Get("/", community.ListConnectionRequests)
	connections.Put("/:id", community.RespondConnectionRequest)

	forums := app.Group("/api/forums")
	forums.Post("/", middleware.Protected(), community.CreateForum)
	forums.Get("/", community.ListForums)
	forums.Post("/posts", middleware.Protected(), community.CreatePost)
	forums.Get("/:id/posts", community.ListPosts)

	chat := app.Group("/api/chat", middleware.Protected())
	chat.Post("/messages", community.SendMessage)
	chat.Get("/messages", community.ListConversations)
	chat.Get("/messages/:user_id", community.GetConversation)

	favorites := app.Group("/api/favorites", middleware.Protected())
	favorites.Post("/", community.ToggleFavorite)
	favorites.Get("/", community.ListFavorites)
	favorites.Get("/summary", community.FavoritesSummary)

	meetings := app.Group("/api/meeting-requests", middleware.Protected())
	meetings.Post("/", community.CreateMeetingRequest)
	meetings.Get("/", community.ListMeetingRequests)
	meetings.Put("/:id", community.RespondMeetingRequest)
}
