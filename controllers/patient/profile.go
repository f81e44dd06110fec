package patient

import (
	"github.com/gofiber/fiber/v2"

	"github.com/curalink/curalink-server/db"
	"github.com/curalink/curalink-server/external"
	"github.com/curalink/curalink-server/models"
)

// CreateProfile upserts the caller's patient profile. The free-text
// input goes through AI condition extraction; when the adapter fails
// or returns garbage the raw input becomes the sole condition.
func CreateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	type ProfileInput struct {
		RawInput string `json:"raw_input"`
		Location string `json:"location"`
	}

	input := new(ProfileInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.RawInput == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "raw_input is required",
		})
	}

	conditions := external.ExtractConditions(input.RawInput)

	var existing models.PatientProfile
	if db.DB.Where("user_id = ?", userID).First(&existing).RowsAffected > 0 {
		existing.Conditions = conditions
		existing.Location = input.Location
		existing.RawInput = input.RawInput
		if err := db.DB.Save(&existing).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update profile",
			})
		}
		return c.JSON(fiber.Map{
			"id":         existing.ID,
			"conditions": conditions,
		})
	}

	profile := models.PatientProfile{
		UserID:     userID,
		Conditions: conditions,
		Location:   input.Location,
		RawInput:   input.RawInput,
	}
	if err := db.DB.Create(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create profile",
		})
	}

	return c.JSON(fiber.Map{
		"id":         profile.ID,
		"conditions": conditions,
	})
}

// GetProfile returns the caller's patient profile
func GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var profile models.PatientProfile
	if db.DB.Where("user_id = ?", userID).First(&profile).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Profile not found",
		})
	}

	return c.JSON(profile)
}
