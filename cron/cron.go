package cron

import (
	"github.com/robfig/cron/v3"
	"gorm.io/gorm/clause"

	"github.com/curalink/curalink-server/db"
	"github.com/curalink/curalink-server/external"
	"github.com/curalink/curalink-server/models"
	"github.com/curalink/curalink-server/utils"
)

// conditionCap bounds how many distinct patient conditions each run
// refreshes, to keep the number of outbound calls small.
const conditionCap = 10

// StartCronJobs initializes and starts the scheduler that keeps the
// local trial and publication tables topped up from the external
// sources.
func StartCronJobs() {
	c := cron.New()
	_, err := c.AddFunc("@hourly", RefreshExternalContent)
	if err != nil {
		utils.Log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	utils.Log.Info("Cron job scheduler started for external content refresh")
}

// RefreshExternalContent pulls trials and publications for the
// conditions seen across patient profiles into the local store, so
// dashboards and searches have rows even before any live query runs.
func RefreshExternalContent() {
	conditions := distinctConditions()
	if len(conditions) == 0 {
		return
	}

	for _, condition := range conditions {
		for _, trial := range external.SearchClinicalTrials(condition, "", 5) {
			if trial.NCTID == "" {
				continue
			}
			err := db.DB.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "nct_id"}},
				UpdateAll: true,
			}).Create(&trial).Error
			if err != nil {
				utils.Log.Warnf("Failed to upsert trial %s: %v", trial.NCTID, err)
			}
		}

		for _, pub := range external.SearchPubMed(condition, 5) {
			var existing models.Publication
			if db.DB.Where("pubmed_id = ?", pub.PubmedID).First(&existing).RowsAffected > 0 {
				continue
			}
			if err := db.DB.Create(&pub).Error; err != nil {
				utils.Log.Warnf("Failed to store publication %s: %v", pub.PubmedID, err)
			}
		}
	}

	utils.Log.Infof("Refreshed external content for %d conditions", len(conditions))
}

func distinctConditions() []string {
	var profiles []models.PatientProfile
	if err := db.DB.Find(&profiles).Error; err != nil {
		utils.Log.Warnf("Failed to load patient profiles: %v", err)
		return nil
	}

	seen := map[string]bool{}
	conditions := []string{}
	for _, profile := range profiles {
		for _, condition := range profile.Conditions {
			if condition == "" || seen[condition] {
				continue
			}
			seen[condition] = true
			conditions = append(conditions, condition)
			if len(conditions) == conditionCap {
				return conditions
			}
		}
	}
	return conditions
}
