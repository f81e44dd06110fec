package patient

import (
	"github.com/gofiber/fiber/v2"

	"github.com/curalink/curalink-server/db"
	"github.com/curalink/curalink-server/models"
)

// GetDashboard returns the caller's profile plus a small sample of
// trials, publications and experts from the store.
func GetDashboard(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var profile models.PatientProfile
	if db.DB.Where("user_id = ?", userID).First(&profile).RowsAffected == 0 {
		return c.JSON(fiber.Map{
			"profile":         nil,
			"recommendations": []fiber.Map{},
		})
	}

	var trials []models.ClinicalTrial
	db.DB.Limit(5).Find(&trials)
	var publications []models.Publication
	db.DB.Limit(5).Find(&publications)
	var experts []models.HealthExpert
	db.DB.Limit(5).Find(&experts)

	trialList := []fiber.Map{}
	for _, t := range trials {
		trialList = append(trialList, fiber.Map{
			"id":       t.ID,
			"title":    t.Title,
			"status":   t.Status,
			"location": t.Location,
		})
	}

	publicationList := []fiber.Map{}
	for _, p := range publications {
		publicationList = append(publicationList, fiber.Map{
			"id":      p.ID,
			"title":   p.Title,
			"authors": p.Authors,
		})
	}

	expertList := []fiber.Map{}
	for _, e := range experts {
		expertList = append(expertList, fiber.Map{
			"id":        e.ID,
			"name":      e.Name,
			"specialty": e.Specialty,
		})
	}

	return c.JSON(fiber.Map{
		"profile": fiber.Map{
			"conditions": profile.Conditions,
			"location":   profile.Location,
		},
		"trials":       trialList,
		"publications": publicationList,
		"experts":      expertList,
	})
}
