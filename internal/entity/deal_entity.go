package entity

import (
	"time"

	"github.com/google/uuid"
)

// Deal is a generated daily offer. Rows are read-only after generation
// except for the IsActive flag.
type Deal struct {
	Id              uuid.UUID
	Destination     string
	Country         *string
	Title           string
	Description     string
	OriginalPrice   float64
	DiscountedPrice float64
	Currency        string
	ValidUntil      time.Time
	MinPeople       int
	MaxPeople       int
	DurationDays    int
	StartDate       *time.Time
	EndDate         *time.Time
	Inclusions      []string
	Itinerary       *Itinerary
	International   bool
	IsActive        bool
	GeneratedOn     time.Time
	Embedding       []float32
	CreatedAt       time.Time
}
