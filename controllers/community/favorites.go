package community

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/curalink/curalink-server/db"
	"github.com/curalink/curalink-server/external"
	"github.com/curalink/curalink-server/models"
)

// ToggleFavorite saves an item, or removes it when it was already
// saved. The item id is not validated against the referenced table.
func ToggleFavorite(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	type FavoriteInput struct {
		ItemType string `json:"item_type"`
		ItemID   uint   `json:"item_id"`
	}

	input := new(FavoriteInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	switch input.ItemType {
	case models.FavoriteTrial, models.FavoritePublication, models.FavoriteExpert:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "item_type must be trial, publication or expert",
		})
	}

	var existing models.Favorite
	if db.DB.Where("user_id = ? AND item_type = ? AND item_id = ?",
		userID, input.ItemType, input.ItemID).First(&existing).RowsAffected > 0 {
		if err := db.DB.Unscoped().Delete(&existing).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to remove favorite",
			})
		}
		return c.JSON(fiber.Map{"removed": true})
	}

	favorite := models.Favorite{
		UserID:   userID,
		ItemType: input.ItemType,
		ItemID:   input.ItemID,
	}
	if err := db.DB.Create(&favorite).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add favorite",
		})
	}

	return c.JSON(fiber.Map{
		"id":    favorite.ID,
		"added": true,
	})
}

// favoriteGroups joins the caller's favorites against their source
// tables. Favorites whose item no longer exists are silently skipped.
func favoriteGroups(userID uint) (trials, publications, experts []fiber.Map) {
	trials = []fiber.Map{}
	publications = []fiber.Map{}
	experts = []fiber.Map{}

	var favorites []models.Favorite
	db.DB.Where("user_id = ?", userID).Find(&favorites)

	for _, f := range favorites {
		switch f.ItemType {
		case models.FavoriteTrial:
			var trial models.ClinicalTrial
			if db.DB.First(&trial, f.ItemID).RowsAffected > 0 {
				trials = append(trials, fiber.Map{
					"id":     trial.ID,
					"title":  trial.Title,
					"status": trial.Status,
				})
			}
		case models.FavoritePublication:
			var pub models.Publication
			if db.DB.First(&pub, f.ItemID).RowsAffected > 0 {
				publications = append(publications, fiber.Map{
					"id":      pub.ID,
					"title":   pub.Title,
					"authors": pub.Authors,
				})
			}
		case models.FavoriteExpert:
			var expert models.HealthExpert
			if db.DB.First(&expert, f.ItemID).RowsAffected > 0 {
				experts = append(experts, fiber.Map{
					"id":        expert.ID,
					"name":      expert.Name,
					"specialty": expert.Specialty,
				})
			}
		}
	}

	return trials, publications, experts
}

// ListFavorites returns the caller's favorites grouped by item type
func ListFavorites(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	trials, publications, experts := favoriteGroups(userID)

	return c.JSON(fiber.Map{
		"trials":       trials,
		"publications": publications,
		"experts":      experts,
	})
}

// FavoritesSummary builds a doctor-shareable summary of the caller's
// saved items via the LLM adapter.
func FavoritesSummary(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	trials, publications, experts := favoriteGroups(userID)

	parts := []string{}
	if section := summarySection("Clinical Trials", trials, "title"); section != "" {
		parts = append(parts, section)
	}
	if section := summarySection("Publications", publications, "title"); section != "" {
		parts = append(parts, section)
	}
	if section := summarySection("Experts", experts, "name"); section != "" {
		parts = append(parts, section)
	}

	if len(parts) == 0 {
		return c.JSON(fiber.Map{"summary": "No saved items to summarize."})
	}

	return c.JSON(fiber.Map{
		"summary": external.FavoritesSummary(strings.Join(parts, "\n\n")),
	})
}

func summarySection(heading string, items []fiber.Map, field string) string {
	if len(items) == 0 {
		return ""
	}
	lines := []string{}
	for i, item := range items {
		if i == 3 {
			break
		}
		lines = append(lines, fmt.Sprintf("- %v", item[field]))
	}
	return heading + ":\n" + strings.Join(lines, "\n")
}
