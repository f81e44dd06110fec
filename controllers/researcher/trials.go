package researcher

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/curalink/curalink-server/db"
	"github.com/curalink/curalink-server/models"
)

type TrialInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Phase       string   `json:"phase"`
	Status      string   `json:"status"`
	Location    string   `json:"location"`
	Eligibility string   `json:"eligibility"`
	Contact     string   `json:"contact"`
	Conditions  []string `json:"conditions"`
}

// mintNCTID generates an identifier for researcher-created trials so
// they share the shape of externally sourced ones.
func mintNCTID() string {
	return "NCT" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// CreateTrial registers a new clinical trial owned by the caller
func CreateTrial(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := new(TrialInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title is required",
		})
	}

	trial := models.ClinicalTrial{
		NCTID:       mintNCTID(),
		Title:       input.Title,
		Description: input.Description,
		Phase:       input.Phase,
		Status:      input.Status,
		Location:    input.Location,
		Eligibility: input.Eligibility,
		Contact:     input.Contact,
		Conditions:  input.Conditions,
		CreatedBy:   userID,
	}
	if err := db.DB.Create(&trial).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create clinical trial",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":     trial.ID,
		"nct_id": trial.NCTID,
	})
}

// ListOwnTrials returns the trials created by the caller
func ListOwnTrials(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var trials []models.ClinicalTrial
	if err := db.DB.Where("created_by = ?", userID).Find(&trials).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch clinical trials",
		})
	}

	return c.JSON(trials)
}

// UpdateTrial replaces every editable field of an existing trial
func UpdateTrial(c *fiber.Ctx) error {
	trialID := c.Params("id")

	input := new(TrialInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var trial models.ClinicalTrial
	if db.DB.First(&trial, trialID).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Trial not found",
		})
	}

	trial.Title = input.Title
	trial.Description = input.Description
	trial.Phase = input.Phase
	trial.Status = input.Status
	trial.Location = input.Location
	trial.Eligibility = input.Eligibility
	trial.Contact = input.Contact
	trial.Conditions = input.Conditions

	if err := db.DB.Save(&trial).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update clinical trial",
		})
	}

	return c.JSON(fiber.Map{"id": trial.ID})
}
