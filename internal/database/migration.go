package database

import (
	"fmt"
	"log"

	"back_yamdb/internal/models"

	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	// The genre<->title relation goes through an explicit join model so the
	// cascade rules on both foreign keys are part of the schema.
	if err := db.SetupJoinTable(&models.Title{}, "Genres", &models.GenreTitle{}); err != nil {
		return fmt.Errorf("failed to set up genre_titles join table: %w", err)
	}

	tables := []interface{}{
		&models.User{},
		&models.Category{},
		&models.Genre{},
		&models.Title{},
		&models.GenreTitle{},
		&models.Review{},
		&models.Comment{},
	}

	for _, table := range tables {
		if err := db.AutoMigrate(table); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", table, err)
		}
	}

	log.Println("✅ Database migration completed")
	return nil
}

func RunMigrations() {
	if err := AutoMigrate(DB); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}
