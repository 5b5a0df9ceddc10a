package entity

import (
	"time"

	"github.com/google/uuid"
)

type TripStatus string
type PartyType string
type BudgetLevel string

const (
	TripStatusDraft     TripStatus = "draft"
	TripStatusPlanned   TripStatus = "planned"
	TripStatusPaid      TripStatus = "paid"
	TripStatusCancelled TripStatus = "cancelled"

	PartyTypeSolo    PartyType = "solo"
	PartyTypeCouple  PartyType = "couple"
	PartyTypeFriends PartyType = "friends"
	PartyTypeFamily  PartyType = "family"

	BudgetCheap    BudgetLevel = "cheap"
	BudgetModerate BudgetLevel = "moderate"
	BudgetLuxury   BudgetLevel = "luxury"
)

// Passenger is one traveller on a booked trip.
type Passenger struct {
	Name string `json:"name"`
	Age  *int   `json:"age,omitempty"`
	Role string `json:"role"`
}

// Activity is a single itinerary item inside a day plan.
type Activity struct {
	Name        string `json:"name"`
	Time        string `json:"time,omitempty"`
	Category    string `json:"category,omitempty"`
	MapURL      string `json:"map_url,omitempty"`
	ImageSearch string `json:"image_search,omitempty"`
}

type DayPlan struct {
	Day        int        `json:"day"`
	Title      string     `json:"title"`
	Activities []Activity `json:"activities"`
}

type HotelBlock struct {
	Name  string `json:"name"`
	Area  string `json:"area,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// Itinerary is the structured plan the AI finalizes for a trip.
type Itinerary struct {
	Title string      `json:"title"`
	Hotel *HotelBlock `json:"hotel,omitempty"`
	Days  []DayPlan   `json:"days"`
}

// Trip holds everything known about one planning session.
// Nullable columns stay nil until the planner (or a group vote) fills them.
type Trip struct {
	Id     uuid.UUID
	UserId uuid.UUID
	Email  string

	FromCity            *string
	ToCity              *string
	PartyType           *PartyType
	AdultsCount         *int
	ChildrenCount       *int
	SeniorsCount        *int
	BudgetLevel         *BudgetLevel
	DurationDays        *int
	StartDate           *time.Time
	EndDate             *time.Time
	Interests           []string
	SpecialRequirements *string
	ContactPhone        *string
	Passengers          []Passenger

	Title         *string
	AiSummaryText *string
	Itinerary     *Itinerary

	Status                TripStatus
	TotalPrice            *float64
	Currency              string
	BookingNumber         *string
	IsDealBooking         bool
	SourceDealId          *uuid.UUID
	SourceGroupId         *uuid.UUID
	GoogleCalendarEventId *string
	FeedbackEmailSent     bool

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// PeopleCount derives the traveller count for pricing.
func (t *Trip) PeopleCount() int {
	if t.PartyType != nil {
		switch *t.PartyType {
		case PartyTypeSolo:
			return 1
		case PartyTypeCouple:
			return 2
		}
	}
	total := 0
	for _, c := range []*int{t.AdultsCount, t.ChildrenCount, t.SeniorsCount} {
		if c != nil {
			total += *c
		}
	}
	if total == 0 {
		return 2
	}
	return total
}

// IsOpen reports whether the planner may still mutate this trip.
func (t *Trip) IsOpen() bool {
	return t.Status == TripStatusDraft || t.Status == TripStatusPlanned
}
