package researcher

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/curalink/curalink-server/db"
	"github.com/curalink/curalink-server/models"
	"github.com/curalink/curalink-server/utils"
)

type ProfileInput struct {
	Specialties       []string `json:"specialties"`
	ResearchInterests []string `json:"research_interests"`
	ORCID             string   `json:"orcid"`
	ResearchGate      string   `json:"researchgate"`
	Availability      bool     `json:"availability"`
	Bio               string   `json:"bio"`
}

// CreateProfile upserts the caller's researcher profile. The first
// create also materializes a registered HealthExpert so the researcher
// shows up in the same listing as externally sourced experts; updates
// never create a second one.
func CreateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := new(ProfileInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var existing models.ResearcherProfile
	if db.DB.Where("user_id = ?", userID).First(&existing).RowsAffected > 0 {
		existing.Specialties = input.Specialties
		existing.ResearchInterests = input.ResearchInterests
		existing.ORCID = input.ORCID
		existing.ResearchGate = input.ResearchGate
		existing.Availability = input.Availability
		existing.Bio = input.Bio
		if err := db.DB.Save(&existing).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update profile",
			})
		}
		return c.JSON(fiber.Map{"id": existing.ID})
	}

	profile := models.ResearcherProfile{
		UserID:            userID,
		Specialties:       input.Specialties,
		ResearchInterests: input.ResearchInterests,
		ORCID:             input.ORCID,
		ResearchGate:      input.ResearchGate,
		Availability:      input.Availability,
		Bio:               input.Bio,
	}
	if err := db.DB.Create(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create profile",
		})
	}

	var user models.User
	if db.DB.First(&user, userID).RowsAffected > 0 {
		expert := models.HealthExpert{
			UserID:            userID,
			Name:              strings.Split(user.Email, "@")[0],
			Specialty:         input.Specialties,
			ResearchInterests: input.ResearchInterests,
			Contact:           user.Email,
			IsRegistered:      true,
			Bio:               input.Bio,
		}
		if err := db.DB.Create(&expert).Error; err != nil {
			utils.Log.Errorf("Failed to create health expert for user %d: %v", userID, err)
		}
	}

	return c.JSON(fiber.Map{"id": profile.ID})
}

// GetDashboard returns the researcher's profile, trials and forums
func GetDashboard(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var profile models.ResearcherProfile
	hasProfile := db.DB.Where("user_id = ?", userID).First(&profile).RowsAffected > 0

	specialties := []string{}
	interests := []string{}
	if hasProfile {
		specialties = profile.Specialties
		interests = profile.ResearchInterests
	}

	var trials []models.ClinicalTrial
	db.DB.Where("created_by = ?", userID).Find(&trials)
	var forums []models.Forum
	db.DB.Where("created_by = ?", userID).Find(&forums)

	trialList := []fiber.Map{}
	for _, t := range trials {
		trialList = append(trialList, fiber.Map{
			"id":     t.ID,
			"title":  t.Title,
			"status": t.Status,
		})
	}

	forumList := []fiber.Map{}
	for _, f := range forums {
		forumList = append(forumList, fiber.Map{
			"id":       f.ID,
			"title":    f.Title,
			"category": f.Category,
		})
	}

	return c.JSON(fiber.Map{
		"profile": fiber.Map{
			"specialties":        specialties,
			"research_interests": interests,
		},
		"trials": trialList,
		"forums": forumList,
	})
}

// GetCollaborators lists researchers that have built a profile
func GetCollaborators(c *fiber.Ctx) error {
	var researchers []models.User
	if err := db.DB.Where("user_type = ?", models.TypeResearcher).
		Limit(20).Find(&researchers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch collaborators",
		})
	}

	result := []fiber.Map{}
	for _, r := range researchers {
		var profile models.ResearcherProfile
		if db.DB.Where("user_id = ?", r.ID).First(&profile).RowsAffected == 0 {
			continue
		}
		result = append(result, fiber.Map{
			"id":                 r.ID,
			"name":               strings.Split(r.Email, "@")[0],
			"specialties":        profile.Specialties,
			"research_interests": profile.ResearchInterests,
		})
	}

	return c.JSON(result)
}
