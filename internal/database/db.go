package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"jobtrail/internal/models"
)

func Connect(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}
	return db
}

// Migrate creates/updates the tables. Split out so tests can run it
// against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Profile{},
		&models.Company{},
		&models.Job{},
		&models.Application{},
		&models.StageEvent{},
	)
}
