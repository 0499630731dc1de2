package database

import (
	"github.com/sirupsen/logrus"
	"github.com/travelxplore/travelxplore-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string, log *logrus.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Surfaces unique violations as gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Destination{},
		&models.Package{},
		&models.Booking{},
		&models.ContactMessage{},
		&models.NewsletterSubscriber{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Case-insensitive uniqueness for registration emails; the column-level
	// unique index only catches exact duplicates
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower
		ON users (LOWER(email))
	`)

	return db
}
