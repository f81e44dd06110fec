package db

import (
	"gorm.io/gorm"

	"github.com/curalink/curalink-server/models"
	"github.com/curalink/curalink-server/utils"
)

// AutoMigrate applies the schema for every entity to the given handle.
// Split out from Migrate so tests can run it against their own DB.
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.PatientProfile{},
		&models.ResearcherProfile{},
		&models.ClinicalTrial{},
		&models.Publication{},
		&models.HealthExpert{},
		&models.Favorite{},
		&models.Forum{},
		&models.ForumPost{},
		&models.Message{},
		&models.ConnectionRequest{},
		&models.MeetingRequest{},
		&models.PasswordReset{},
	)
}

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	if err := AutoMigrate(DB); err != nil {
		utils.Log.Fatal("Failed to run migrations: ", err)
	}

	utils.Log.Info("✅ Migrations applied successfully!")
}
