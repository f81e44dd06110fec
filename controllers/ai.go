package controllers

import (
	"fmt"
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/curalink/curalink-server/db"
	"github.com/curalink/curalink-server/external"
	"github.com/curalink/curalink-server/models"
)

// Summarize condenses arbitrary medical text into 2-3 sentences
func Summarize(c *fiber.Ctx) error {
	type SummarizeInput struct {
		Text string `json:"text"`
	}

	input := new(SummarizeInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	return c.JSON(fiber.Map{
		"summary": external.Summarize(input.Text),
	})
}

// scoredResult pairs a search hit with its LLM relevance score.
type scoredResult struct {
	Type  string      `json:"type"`
	Score float64     `json:"score"`
	Item  interface{} `json:"item"`
}

// SmartSearch extracts intent from a free-text query, searches the
// matching buckets, and ranks the combined results by LLM relevance.
func SmartSearch(c *fiber.Ctx) error {
	userType := c.Locals("userType").(string)

	type SearchInput struct {
		Query string `json:"query"`
	}

	input := new(SearchInput)
	if err := c.BodyParser(input); err != nil || input.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Search query is required",
		})
	}

	intent := external.SmartSearch(input.Query, userType)
	query := intent.OptimizedQuery
	if query == "" {
		query = input.Query
	}

	results := []scoredResult{}

	if intent.SearchType == "expert" || intent.SearchType == "general" {
		var experts []models.HealthExpert
		db.DB.Limit(10).Find(&experts)
		for _, e := range experts {
			context := fmt.Sprintf("Expert: %s, Specialties: %v, Interests: %v",
				e.Name, e.Specialty, e.ResearchInterests)
			results = append(results, scoredResult{
				Type:  "expert",
				Score: external.RelevanceScore(query, "expert", context),
				Item:  e,
			})
		}
	}

	if intent.SearchType == "trial" || intent.SearchType == "general" {
		trials := external.SearchClinicalTrials(query, "", 5)
		var local []models.ClinicalTrial
		db.DB.Limit(5).Find(&local)
		trials = append(trials, local...)
		for _, t := range trials {
			desc := t.Description
			if len(desc) > 200 {
				desc = desc[:200]
			}
			context := fmt.Sprintf("Trial: %s, Conditions: %v, Description: %s",
				t.Title, t.Conditions, desc)
			results = append(results, scoredResult{
				Type:  "trial",
				Score: external.RelevanceScore(query, "trial", context),
				Item:  t,
			})
		}
	}

	if intent.SearchType == "publication" || intent.SearchType == "general" {
		for _, p := range external.SearchPubMed(query, 5) {
			abstract := p.Abstract
			if len(abstract) > 200 {
				abstract = abstract[:200]
			}
			context := fmt.Sprintf("Publication: %s, Abstract: %s", p.Title, abstract)
			results = append(results, scoredResult{
				Type:  "publication",
				Score: external.RelevanceScore(query, "publication", context),
				Item:  p,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return c.JSON(fiber.Map{
		"intent":  intent,
		"results": results,
	})
}
