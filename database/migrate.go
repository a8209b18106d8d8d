package database

import (
	"servihub_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate прогоняет AutoMigrate по всем моделям приложения.
func Migrate(db *gorm.DB) error {
	// Расширение для uuid_generate_v4()
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.User{},
		&models.UserBan{},
		&models.Profile{},
		&models.ProfileVerification{},
		&models.SubscriptionPlan{},
		&models.UserSubscription{},
		&models.Demand{},
		&models.Proposal{},
	)
}
