package dto

import (
	"time"

	"github.com/google/uuid"

	"travelorbit-be/internal/entity"
)

// --- Deal DTOs ---

type DealResponse struct {
	Id              uuid.UUID         `json:"id"`
	Destination     string            `json:"destination"`
	Country         *string           `json:"country,omitempty"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	OriginalPrice   float64           `json:"original_price"`
	DiscountedPrice float64           `json:"discounted_price"`
	DiscountPct     int               `json:"discount_pct"`
	Currency        string            `json:"currency"`
	ValidUntil      time.Time         `json:"valid_until"`
	MinPeople       int               `json:"min_people"`
	MaxPeople       int               `json:"max_people"`
	DurationDays    int               `json:"duration_days"`
	StartDate       *string           `json:"start_date,omitempty"`
	EndDate         *string           `json:"end_date,omitempty"`
	Inclusions      []string          `json:"inclusions"`
	Itinerary       *entity.Itinerary `json:"itinerary,omitempty"`
	International   bool              `json:"international"`
}

type DealListResponse struct {
	Deals       []DealResponse `json:"deals"`
	GeneratedOn string         `json:"generated_on"`
}

type BookDealRequest struct {
	PeopleCount  int                `json:"people_count" validate:"required,min=1"`
	StartDate    string             `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	ContactPhone string             `json:"contact_phone" validate:"omitempty,e164"`
	Passengers   []entity.Passenger `json:"passengers" validate:"omitempty,dive"`
}

type DealRecommendationRequest struct {
	Query string `json:"query" validate:"required,min=3"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=20"`
}

func NewDealResponse(d *entity.Deal) DealResponse {
	res := DealResponse{
		Id:              d.Id,
		Destination:     d.Destination,
		Country:         d.Country,
		Title:           d.Title,
		Description:     d.Description,
		OriginalPrice:   d.OriginalPrice,
		DiscountedPrice: d.DiscountedPrice,
		Currency:        d.Currency,
		ValidUntil:      d.ValidUntil,
		MinPeople:       d.MinPeople,
		MaxPeople:       d.MaxPeople,
		DurationDays:    d.DurationDays,
		Inclusions:      d.Inclusions,
		Itinerary:       d.Itinerary,
		International:   d.International,
	}
	if d.OriginalPrice > 0 {
		res.DiscountPct = int((1 - d.DiscountedPrice/d.OriginalPrice) * 100)
	}
	if d.StartDate != nil {
		v := d.StartDate.Format("2006-01-02")
		res.StartDate = &v
	}
	if d.EndDate != nil {
		v := d.EndDate.Format("2006-01-02")
		res.EndDate = &v
	}
	return res
}
