package main

import (
	"log"
	"os"
	"time"

	"travelorbit-be/internal/model"
	"travelorbit-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
)

type seedDeal struct {
	destination     string
	country         string
	title           string
	description     string
	originalPrice   float64
	discountedPrice float64
	durationDays    int
	inclusions      []string
	international   bool
}

// Demo deals for a fresh environment. Production batches come from the
// daily generator instead.
var catalogue = []seedDeal{
	{"Goa", "India", "Goa Beach Escape", "Four days of beaches, shacks and sunsets in North Goa. Stay near Baga with breakfast included.", 14000, 9999, 4, []string{"hotel", "breakfast", "airport transfer"}, false},
	{"Manali", "India", "Manali Mountain Retreat", "Five days in the Kullu valley with Solang adventure sports and Old Manali cafes.", 18000, 12500, 5, []string{"hotel", "breakfast", "sightseeing"}, false},
	{"Kerala", "India", "Kerala Backwaters Cruise", "Houseboat stay in Alleppey plus Munnar tea gardens over six relaxed days.", 24000, 17999, 6, []string{"houseboat", "all meals", "transfers"}, false},
	{"Bali", "Indonesia", "Bali Island Getaway", "Seven days across Ubud rice terraces, Uluwatu cliffs and Seminyak beach clubs.", 55000, 42000, 7, []string{"villa", "breakfast", "airport transfer", "day tours"}, true},
	{"Dubai", "United Arab Emirates", "Dubai City Lights", "Five days of desert safari, Burj Khalifa views and old town souks.", 62000, 48500, 5, []string{"hotel", "breakfast", "desert safari", "city tour"}, true},
}

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

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for _, d := range catalogue {
		country := d.country
		row := model.Deal{
			Id:              uuid.New(),
			Destination:     d.destination,
			Country:         &country,
			Title:           d.title,
			Description:     d.description,
			OriginalPrice:   d.originalPrice,
			DiscountedPrice: d.discountedPrice,
			Currency:        "INR",
			ValidUntil:      today.AddDate(0, 0, 7),
			MinPeople:       1,
			MaxPeople:       8,
			DurationDays:    d.durationDays,
			Inclusions:      datatypes.NewJSONSlice(d.inclusions),
			International:   d.international,
			IsActive:        true,
			GeneratedOn:     today,
		}
		if err := db.Create(&row).Error; err != nil {
			log.Printf("Warn: failed to seed deal %q: %v", d.title, err)
			continue
		}
		log.Printf("Seeded deal: %s (%s)", d.title, d.destination)
	}

	log.Println("✅ Seeding complete")
}
