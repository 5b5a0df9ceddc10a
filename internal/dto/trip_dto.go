package dto

import (
	"time"

	"github.com/google/uuid"

	"travelorbit-be/internal/entity"
)

// --- Trip DTOs ---

type TripResponse struct {
	Id                  uuid.UUID          `json:"id"`
	FromCity            *string            `json:"from_city"`
	ToCity              *string            `json:"to_city"`
	PartyType           *string            `json:"party_type"`
	AdultsCount         *int               `json:"adults_count"`
	ChildrenCount       *int               `json:"children_count"`
	SeniorsCount        *int               `json:"seniors_count"`
	BudgetLevel         *string            `json:"budget_level"`
	DurationDays        *int               `json:"duration_days"`
	StartDate           *string            `json:"start_date"`
	EndDate             *string            `json:"end_date"`
	Interests           []string           `json:"interests"`
	SpecialRequirements *string            `json:"special_requirements"`
	ContactPhone        *string            `json:"contact_phone"`
	Passengers          []entity.Passenger `json:"passengers"`
	Title               *string            `json:"title"`
	AiSummary           *string            `json:"ai_summary"`
	Itinerary           *entity.Itinerary  `json:"itinerary"`
	Status              string             `json:"status"`
	TotalPrice          *float64           `json:"total_price"`
	Currency            string             `json:"currency"`
	BookingNumber       *string            `json:"booking_number"`
	IsDealBooking       bool               `json:"is_deal_booking"`
	SourceGroupId       *uuid.UUID         `json:"source_group_id,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
}

type TripListResponse struct {
	Trips []TripResponse `json:"trips"`
	Total int64          `json:"total"`
}

type PricingResponse struct {
	TripId     uuid.UUID `json:"trip_id"`
	People     int       `json:"people"`
	Days       int       `json:"days"`
	PerDayRate float64   `json:"per_day_rate"`
	Multiplier float64   `json:"multiplier"`
	Total      float64   `json:"total"`
	Currency   string    `json:"currency"`
}

func NewTripResponse(t *entity.Trip) TripResponse {
	res := TripResponse{
		Id:                  t.Id,
		FromCity:            t.FromCity,
		ToCity:              t.ToCity,
		AdultsCount:         t.AdultsCount,
		ChildrenCount:       t.ChildrenCount,
		SeniorsCount:        t.SeniorsCount,
		DurationDays:        t.DurationDays,
		Interests:           t.Interests,
		SpecialRequirements: t.SpecialRequirements,
		ContactPhone:        t.ContactPhone,
		Passengers:          t.Passengers,
		Title:               t.Title,
		AiSummary:           t.AiSummaryText,
		Itinerary:           t.Itinerary,
		Status:              string(t.Status),
		TotalPrice:          t.TotalPrice,
		Currency:            t.Currency,
		BookingNumber:       t.BookingNumber,
		IsDealBooking:       t.IsDealBooking,
		SourceGroupId:       t.SourceGroupId,
		CreatedAt:           t.CreatedAt,
	}
	if t.PartyType != nil {
		v := string(*t.PartyType)
		res.PartyType = &v
	}
	if t.BudgetLevel != nil {
		v := string(*t.BudgetLevel)
		res.BudgetLevel = &v
	}
	if t.StartDate != nil {
		v := t.StartDate.Format("2006-01-02")
		res.StartDate = &v
	}
	if t.EndDate != nil {
		v := t.EndDate.Format("2006-01-02")
		res.EndDate = &v
	}
	return res
}

// UpdateTripContactRequest corrects traveller details. Allowed on any
// non-cancelled trip, including after payment; itinerary fields are not.
type UpdateTripContactRequest struct {
	ContactPhone string             `json:"contact_phone" validate:"omitempty,e164"`
	Passengers   []entity.Passenger `json:"passengers" validate:"omitempty,dive"`
}

type SubmitFeedbackRequest struct {
	Rating   int     `json:"rating" validate:"required,min=1,max=5"`
	Comments *string `json:"comments" validate:"omitempty,max=2000"`
}

type FeedbackResponse struct {
	Id        uuid.UUID `json:"id"`
	TripId    uuid.UUID `json:"trip_id"`
	Rating    int       `json:"rating"`
	Comments  *string   `json:"comments,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
