package patient

import (
	"github.com/gofiber/fiber/v2"

	"github.com/curalink/curalink-server/db"
	"github.com/curalink/curalink-server/external"
	"github.com/curalink/curalink-server/models"
)

// GetHealthExperts lists discoverable experts, registered and external
func GetHealthExperts(c *fiber.Ctx) error {
	var experts []models.HealthExpert
	if err := db.DB.Limit(20).Find(&experts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch experts",
		})
	}

	result := []fiber.Map{}
	for _, e := range experts {
		result = append(result, fiber.Map{
			"id":                 e.ID,
			"name":               e.Name,
			"specialty":          e.Specialty,
			"research_interests": e.ResearchInterests,
			"is_registered":      e.IsRegistered,
		})
	}

	return c.JSON(result)
}

// SearchClinicalTrials lists stored trials, optionally filtered by
// status. When a query is given, live results from ClinicalTrials.gov
// are merged ahead of the stored rows; an upstream failure just means
// no live rows.
func SearchClinicalTrials(c *fiber.Ctx) error {
	query := c.Query("query")
	status := c.Query("status")
	location := c.Query("location")

	result := []fiber.Map{}

	if query != "" {
		for _, t := range external.SearchClinicalTrials(query, location, 10) {
			result = append(result, fiber.Map{
				"id":          0,
				"nct_id":      t.NCTID,
				"title":       t.Title,
				"description": t.Description,
				"status":      t.Status,
				"phase":       t.Phase,
				"location":    t.Location,
			})
		}
	}

	trialsQuery := db.DB.Model(&models.ClinicalTrial{})
	if status != "" {
		trialsQuery = trialsQuery.Where("status = ?", status)
	}
	var trials []models.ClinicalTrial
	if err := trialsQuery.Limit(20).Find(&trials).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch clinical trials",
		})
	}

	for _, t := range trials {
		result = append(result, fiber.Map{
			"id":          t.ID,
			"nct_id":      t.NCTID,
			"title":       t.Title,
			"description": t.Description,
			"status":      t.Status,
			"phase":       t.Phase,
			"location":    t.Location,
		})
	}

	return c.JSON(result)
}

// SearchPublications lists stored publications; a query adds live
// PubMed results ahead of the stored rows.
func SearchPublications(c *fiber.Ctx) error {
	query := c.Query("query")

	result := []fiber.Map{}

	if query != "" {
		for _, p := range external.SearchPubMed(query, 10) {
			result = append(result, fiber.Map{
				"id":             0,
				"title":          p.Title,
				"authors":        p.Authors,
				"abstract":       p.Abstract,
				"url":            p.URL,
				"published_date": p.PublishedDate,
			})
		}
	}

	var publications []models.Publication
	if err := db.DB.Limit(20).Find(&publications).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch publications",
		})
	}

	for _, p := range publications {
		result = append(result, fiber.Map{
			"id":             p.ID,
			"title":          p.Title,
			"authors":        p.Authors,
			"abstract":       p.Abstract,
			"url":            p.URL,
			"published_date": p.PublishedDate,
		})
	}

	return c.JSON(result)
}
