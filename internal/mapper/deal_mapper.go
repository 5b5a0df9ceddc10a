package mapper

import (
	"encoding/json"

	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type DealMapper struct{}

func NewDealMapper() *DealMapper {
	return &DealMapper{}
}

func (m *DealMapper) ToEntity(d *model.Deal) *entity.Deal {
	if d == nil {
		return nil
	}

	var itinerary *entity.Itinerary
	if len(d.ItineraryJson) > 0 {
		var it entity.Itinerary
		if err := json.Unmarshal(d.ItineraryJson, &it); err == nil {
			itinerary = &it
		}
	}

	return &entity.Deal{
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
		StartDate:       d.StartDate,
		EndDate:         d.EndDate,
		Inclusions:      d.Inclusions,
		Itinerary:       itinerary,
		International:   d.International,
		IsActive:        d.IsActive,
		GeneratedOn:     d.GeneratedOn,
		Embedding:       d.Embedding.Slice(),
		CreatedAt:       d.CreatedAt,
	}
}

func (m *DealMapper) ToModel(d *entity.Deal) *model.Deal {
	if d == nil {
		return nil
	}

	var itineraryJson datatypes.JSON
	if d.Itinerary != nil {
		if raw, err := json.Marshal(d.Itinerary); err == nil {
			itineraryJson = raw
		}
	}

	return &model.Deal{
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
		StartDate:       d.StartDate,
		EndDate:         d.EndDate,
		Inclusions:      datatypes.JSONSlice[string](d.Inclusions),
		ItineraryJson:   itineraryJson,
		International:   d.International,
		IsActive:        d.IsActive,
		GeneratedOn:     d.GeneratedOn,
		Embedding:       pgvector.NewVector(d.Embedding),
		CreatedAt:       d.CreatedAt,
	}
}

func (m *DealMapper) ToEntities(deals []*model.Deal) []*entity.Deal {
	entities := make([]*entity.Deal, len(deals))
	for i, d := range deals {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
