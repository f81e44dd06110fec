package community

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/curalink/curalink-server/db"
	"github.com/curalink/curalink-server/models"
	"github.com/curalink/curalink-server/utils"
)

// CreateMeetingRequest asks a health expert for a meeting. When the
// expert record carries a contact address a notification email goes
// out best-effort.
func CreateMeetingRequest(c *fiber.Ctx) error {
	patientID := c.Locals("userID").(uint)

	type MeetingInput struct {
		ExpertID uint   `json:"expert_id"`
		Notes    string `json:"notes"`
	}

	input := new(MeetingInput)
	if err := c.BodyParser(input); err != nil || input.ExpertID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "expert_id is required",
		})
	}

	request := models.MeetingRequest{
		PatientID: patientID,
		ExpertID:  input.ExpertID,
		Notes:     input.Notes,
	}
	if err := db.DB.Create(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create meeting request",
		})
	}

	var expert models.HealthExpert
	if db.DB.First(&expert, input.ExpertID).RowsAffected > 0 && expert.Contact != "" {
		body := fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>A patient has requested a meeting with you on CuraLink.</p>
			<p><strong>Notes:</strong> %s</p>
			<p>Log in to respond.</p>
		`, expert.Name, request.Notes)
		if err := utils.SendEmail(expert.Contact, "New meeting request", body); err != nil {
			utils.Log.Warnf("Failed to notify expert %d: %v", expert.ID, err)
		}
	}

	return c.JSON(fiber.Map{
		"id":     request.ID,
		"status": request.Status,
	})
}

// ListMeetingRequests returns requests the caller sent as a patient
// plus requests aimed at any expert record they own.
func ListMeetingRequests(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	expertIDs := []uint{}
	var experts []models.HealthExpert
	db.DB.Where("user_id = ?", userID).Find(&experts)
	for _, e := range experts {
		expertIDs = append(expertIDs, e.ID)
	}

	query := db.DB.Where("patient_id = ?", userID)
	if len(expertIDs) > 0 {
		query = db.DB.Where("patient_id = ? OR expert_id IN ?", userID, expertIDs)
	}

	var requests []models.MeetingRequest
	if err := query.Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch meeting requests",
		})
	}

	result := []fiber.Map{}
	for _, r := range requests {
		result = append(result, fiber.Map{
			"id":         r.ID,
			"patient_id": r.PatientID,
			"expert_id":  r.ExpertID,
			"status":     r.Status,
			"notes":      r.Notes,
		})
	}

	return c.JSON(result)
}

// RespondMeetingRequest lets the expert approve or reject a pending
// meeting request.
func RespondMeetingRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	requestID := c.Params("id")

	type RespondInput struct {
		Status models.MeetingStatus `json:"status"`
	}

	input := new(RespondInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var request models.MeetingRequest
	if db.DB.First(&request, requestID).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Meeting request not found",
		})
	}

	var expert models.HealthExpert
	if db.DB.First(&expert, request.ExpertID).RowsAffected == 0 ||
		expert.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only the expert can respond to a meeting request",
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
