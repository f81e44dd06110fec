package community

import (
	"github.com/gofiber/fiber/v2"

	"github.com/curalink/curalink-server/db"
	"github.com/curalink/curalink-server/models"
)

// CreateConnectionRequest sends a connection request to another user.
// An existing request for the exact same (from,to) pair is returned
// unchanged; the reverse direction is deliberately not checked, so
// both users can have a pending request towards each other.
func CreateConnectionRequest(c *fiber.Ctx) error {
	fromUser := c.Locals("userID").(uint)

	type RequestInput struct {
		ToUser uint `json:"to_user"`
	}

	input := new(RequestInput)
	if err := c.BodyParser(input); err != nil || input.ToUser == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "to_user is required",
		})
	}

	var existing models.ConnectionRequest
	if db.DB.Where("from_user = ? AND to_user = ?", fromUser, input.ToUser).
		First(&existing).RowsAffected > 0 {
		return c.JSON(fiber.Map{
			"id":     existing.ID,
			"status": existing.Status,
		})
	}

	request := models.ConnectionRequest{
		FromUser: fromUser,
		ToUser:   input.ToUser,
	}
	if err := db.DB.Create(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create connection request",
		})
	}

	return c.JSON(fiber.Map{
		"id":     request.ID,
		"status": request.Status,
	})
}

// ListConnectionRequests returns requests on either side of the caller
func ListConnectionRequests(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var requests []models.ConnectionRequest
	if err := db.DB.Where("from_user = ? OR to_user = ?", userID, userID).
		Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch connection requests",
		})
	}

	result := []fiber.Map{}
	for _, r := range requests {
		result = append(result, fiber.Map{
			"id":        r.ID,
			"from_user": r.FromUser,
			"to_user":   r.ToUser,
			"status":    r.Status,
		})
	}

	return c.JSON(result)
}

// RespondConnectionRequest lets the recipient accept or reject a
// pending request.
func RespondConnectionRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	requestID := c.Params("id")

	type RespondInput struct {
		Status models.RequestStatus `json:"status"`
	}

	input := new(RespondInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var request models.ConnectionRequest
	if db.DB.First(&request, requestID).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Connection request not found",
		})
	}

	if request.ToUser != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only the recipient can respond to a connection request",
		})
	}

	if err := request.UpdateStatus(db.DB, input.Status); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"id":     request.ID,
		"status": request.Status,
	})
}
