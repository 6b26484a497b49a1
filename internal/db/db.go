package db

import (
	"log"
	"os"

	"github.com/brandonsaldan/ninerwatch-sub000/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=ninerwatch port=5432 sslmode=disable TimeZone=America/New_York"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	// Incidents are inserted by the police-log ingestion job, but the schema
	// is migrated here so a fresh database comes up ready.
	err = DB.AutoMigrate(
		&models.Incident{},
		&models.Comment{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")
}
