package database

import (
	"fmt"
	"log"

	"github.com/justsurfingit/job-apply-assistant/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the local sqlite job store and runs migrations.
// The caller owns the handle; there is no package-level connection.
func Connect(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established")

	// Migration: creates the jobs table if it doesn't exist
	log.Println("Running Migrations...")
	if err := db.AutoMigrate(&models.JobPosting{}); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}
