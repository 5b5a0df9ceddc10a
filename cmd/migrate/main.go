package main

import (
	"log"
	"os"

	"travelorbit-be/internal/model"
	"travelorbit-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// Extensions first, AutoMigrate cannot create them.
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	models := []interface{}{
		&model.User{},
		&model.OtpCode{},
		&model.Trip{},
		&model.TripMessage{},
		&model.TripFeedback{},
		&model.TravelGroup{},
		&model.GroupMember{},
		&model.GroupVote{},
		&model.Deal{},
		&model.Payment{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// Conditional uniqueness AutoMigrate cannot express: one open planning
	// session per user, and one converted trip per group.
	postMigrationSQL := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_trips_one_open_per_user
		 ON trips (user_id) WHERE status IN ('draft', 'planned') AND is_deal_booking = false AND source_group_id IS NULL;`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_groups_code ON travel_groups (code);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_group_votes_voter ON group_votes (group_id, voter_email);`,
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
