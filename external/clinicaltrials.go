package external

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/curalink/curalink-server/models"
	"github.com/curalink/curalink-server/utils"
)

// ClinicalTrialsBaseURL points at the ClinicalTrials.gov v2 studies
// endpoint. Tests substitute an httptest server.
var ClinicalTrialsBaseURL = "https://clinicaltrials.gov/api/v2/studies"

type ctgovStudy struct {
	ProtocolSection struct {
		IdentificationModule struct {
			NCTID         string `json:"nctId"`
			BriefTitle    string `json:"briefTitle"`
			OfficialTitle string `json:"officialTitle"`
		} `json:"identificationModule"`
		StatusModule struct {
			OverallStatus string `json:"overallStatus"`
		} `json:"statusModule"`
		DescriptionModule struct {
			BriefSummary string `json:"briefSummary"`
		} `json:"descriptionModule"`
		DesignModule struct {
			Phases []string `json:"phases"`
		} `json:"designModule"`
		ConditionsModule struct {
			Conditions []string `json:"conditions"`
		} `json:"conditionsModule"`
		EligibilityModule struct {
			EligibilityCriteria string `json:"eligibilityCriteria"`
		} `json:"eligibilityModule"`
		ContactsModule struct {
			CentralContacts []struct {
				Email string `json:"email"`
			} `json:"centralContacts"`
		} `json:"contactsModule"`
		LocationsModule struct {
			Locations []struct {
				City    string `json:"city"`
				Country string `json:"country"`
			} `json:"locations"`
		} `json:"locationsModule"`
	} `json:"protocolSection"`
}

// SearchClinicalTrials queries ClinicalTrials.gov for studies matching
// a condition and maps them onto the local trial shape. Any failure
// yields an empty slice.
func SearchClinicalTrials(condition, location string, maxResults int) []models.ClinicalTrial {
	cacheKey := fmt.Sprintf("ctgov:%d:%s:%s", maxResults, condition, location)
	var cached []models.ClinicalTrial
	if cacheGet(cacheKey, &cached) {
		return cached
	}

	params := url.Values{}
	params.Set("query.cond", condition)
	params.Set("pageSize", fmt.Sprint(maxResults))
	params.Set("format", "json")
	if location != "" {
		params.Set("query.locn", location)
	}

	resp, err := httpClient.Get(ClinicalTrialsBaseURL + "?" + params.Encode())
	if err != nil {
		utils.Log.Warnf("ClinicalTrials.gov API Error: %v", err)
		return []models.ClinicalTrial{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		utils.Log.Warnf("ClinicalTrials.gov API Error: status %d", resp.StatusCode)
		return []models.ClinicalTrial{}
	}

	var parsed struct {
		Studies []ctgovStudy `json:"studies"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		utils.Log.Warnf("ClinicalTrials.gov API Error: %v", err)
		return []models.ClinicalTrial{}
	}

	trials := []models.ClinicalTrial{}
	for _, study := range parsed.Studies {
		protocol := study.ProtocolSection

		title := protocol.IdentificationModule.OfficialTitle
		if title == "" {
			title = protocol.IdentificationModule.BriefTitle
		}

		phase := "N/A"
		if len(protocol.DesignModule.Phases) > 0 {
			phase = protocol.DesignModule.Phases[0]
		}

		locationStr := "Not specified"
		if len(protocol.LocationsModule.Locations) > 0 {
			loc := protocol.LocationsModule.Locations[0]
			if loc.City != "" {
				locationStr = loc.City + ", " + loc.Country
			} else {
				locationStr = loc.Country
			}
		}

		contact := ""
		if len(protocol.ContactsModule.CentralContacts) > 0 {
			contact = protocol.ContactsModule.CentralContacts[0].Email
		}

		trials = append(trials, models.ClinicalTrial{
			NCTID:       protocol.IdentificationModule.NCTID,
			Title:       title,
			Description: protocol.DescriptionModule.BriefSummary,
			Status:      protocol.StatusModule.OverallStatus,
			Phase:       phase,
			Conditions:  protocol.ConditionsModule.Conditions,
			Location:    locationStr,
			Eligibility: protocol.EligibilityModule.EligibilityCriteria,
			Contact:     contact,
		})
	}

	cacheSet(cacheKey, trials)
	return trials
}
