package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the primary-store schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&accountModel{},
		&bookingModel{},
		&reviewModel{},
	)
}
