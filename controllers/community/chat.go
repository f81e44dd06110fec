package community

import (
	"github.com/gofiber/fiber/v2"

	"github.com/curalink/curalink-server/db"
	"github.com/curalink/curalink-server/models"
)

// SendMessage delivers a direct message to another user
func SendMessage(c *fiber.Ctx) error {
	fromUser := c.Locals("userID").(uint)

	type MessageInput struct {
		ToUser  uint   `json:"to_user"`
		Message string `json:"message"`
	}

	input := new(MessageInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.ToUser == 0 || input.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "to_user and message are required",
		})
	}

	message := models.Message{
		FromUser: fromUser,
		ToUser:   input.ToUser,
		Content:  input.Message,
	}
	if err := db.DB.Create(&message).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send message",
		})
	}

	return c.JSON(fiber.Map{"id": message.ID})
}

// GetConversation returns both directions of the chat between the
// caller and another user, oldest first.
func GetConversation(c *fiber.Ctx) error {
	currentUser := c.Locals("userID").(uint)
	otherUser := c.Params("user_id")

	var messages []models.Message
	if err := db.DB.Where(
		"(from_user = ? AND to_user = ?) OR (from_user = ? AND to_user = ?)",
		currentUser, otherUser, otherUser, currentUser,
	).Order("created_at").Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch messages",
		})
	}

	result := []fiber.Map{}
	for _, m := range messages {
		result = append(result, fiber.Map{
			"id":         m.ID,
			"from_user":  m.FromUser,
			"to_user":    m.ToUser,
			"message":    m.Content,
			"created_at": m.CreatedAt,
		})
	}

	return c.JSON(result)
}

// ListConversations returns the caller's chat partners with the most
// recent message for each, newest conversation first.
func ListConversations(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var messages []models.Message
	if err := db.DB.Where("from_user = ? OR to_user = ?", userID, userID).
		Order("created_at DESC").Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch messages",
		})
	}

	seen := map[uint]bool{}
	result := []fiber.Map{}
	for _, m := range messages {
		partner := m.FromUser
		if partner == userID {
			partner = m.ToUser
		}
		if seen[partner] {
			continue
		}
		seen[partner] = true
		result = append(result, fiber.Map{
			"user_id":      partner,
			"last_message": m.Content,
			"last_at":      m.CreatedAt,
		})
	}

	return c.JSON(result)
}
