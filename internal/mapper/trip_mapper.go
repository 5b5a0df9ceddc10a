package mapper

import (
	"encoding/json"
	"time"

	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/model"

	"gorm.io/datatypes"
)

type TripMapper struct{}

func NewTripMapper() *TripMapper {
	return &TripMapper{}
}

func (m *TripMapper) ToEntity(t *model.Trip) *entity.Trip {
	if t == nil {
		return nil
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		at := t.UpdatedAt
		updatedAt = &at
	}

	var partyType *entity.PartyType
	if t.PartyType != nil {
		pt := entity.PartyType(*t.PartyType)
		partyType = &pt
	}
	var budget *entity.BudgetLevel
	if t.BudgetLevel != nil {
		b := entity.BudgetLevel(*t.BudgetLevel)
		budget = &b
	}

	var passengers []entity.Passenger
	if len(t.Passengers) > 0 {
		// Best effort: a malformed blob maps to an empty list, not a failure.
		_ = json.Unmarshal(t.Passengers, &passengers)
	}

	var itinerary *entity.Itinerary
	if len(t.AiSummaryJson) > 0 {
		var it entity.Itinerary
		if err := json.Unmarshal(t.AiSummaryJson, &it); err == nil {
			itinerary = &it
		}
	}

	return &entity.Trip{
		Id:                    t.Id,
		UserId:                t.UserId,
		Email:                 t.Email,
		FromCity:              t.FromCity,
		ToCity:                t.ToCity,
		PartyType:             partyType,
		AdultsCount:           t.AdultsCount,
		ChildrenCount:         t.ChildrenCount,
		SeniorsCount:          t.SeniorsCount,
		BudgetLevel:           budget,
		DurationDays:          t.DurationDays,
		StartDate:             t.StartDate,
		EndDate:               t.EndDate,
		Interests:             t.Interests,
		SpecialRequirements:   t.SpecialRequirements,
		ContactPhone:          t.ContactPhone,
		Passengers:            passengers,
		Title:                 t.Title,
		AiSummaryText:         t.AiSummaryText,
		Itinerary:             itinerary,
		Status:                entity.TripStatus(t.Status),
		TotalPrice:            t.TotalPrice,
		Currency:              t.Currency,
		BookingNumber:         t.BookingNumber,
		IsDealBooking:         t.IsDealBooking,
		SourceDealId:          t.SourceDealId,
		SourceGroupId:         t.SourceGroupId,
		GoogleCalendarEventId: t.GoogleCalendarEventId,
		FeedbackEmailSent:     t.FeedbackEmailSent,
		CreatedAt:             t.CreatedAt,
		UpdatedAt:             updatedAt,
	}
}

func (m *TripMapper) ToModel(t *entity.Trip) *model.Trip {
	if t == nil {
		return nil
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	var partyType *string
	if t.PartyType != nil {
		s := string(*t.PartyType)
		partyType = &s
	}
	var budget *string
	if t.BudgetLevel != nil {
		s := string(*t.BudgetLevel)
		budget = &s
	}

	var passengers datatypes.JSON
	if t.Passengers != nil {
		if raw, err := json.Marshal(t.Passengers); err == nil {
			passengers = raw
		}
	}

	var itineraryJson datatypes.JSON
	if t.Itinerary != nil {
		if raw, err := json.Marshal(t.Itinerary); err == nil {
			itineraryJson = raw
		}
	}

	return &model.Trip{
		Id:                    t.Id,
		UserId:                t.UserId,
		Email:                 t.Email,
		FromCity:              t.FromCity,
		ToCity:                t.ToCity,
		PartyType:             partyType,
		AdultsCount:           t.AdultsCount,
		ChildrenCount:         t.ChildrenCount,
		SeniorsCount:          t.SeniorsCount,
		BudgetLevel:           budget,
		DurationDays:          t.DurationDays,
		StartDate:             t.StartDate,
		EndDate:               t.EndDate,
		Interests:             datatypes.JSONSlice[string](t.Interests),
		SpecialRequirements:   t.SpecialRequirements,
		ContactPhone:          t.ContactPhone,
		Passengers:            passengers,
		Title:                 t.Title,
		AiSummaryText:         t.AiSummaryText,
		AiSummaryJson:         itineraryJson,
		Status:                string(t.Status),
		TotalPrice:            t.TotalPrice,
		Currency:              t.Currency,
		BookingNumber:         t.BookingNumber,
		IsDealBooking:         t.IsDealBooking,
		SourceDealId:          t.SourceDealId,
		SourceGroupId:         t.SourceGroupId,
		GoogleCalendarEventId: t.GoogleCalendarEventId,
		FeedbackEmailSent:     t.FeedbackEmailSent,
		CreatedAt:             t.CreatedAt,
		UpdatedAt:             updatedAt,
	}
}

func (m *TripMapper) ToEntities(trips []*model.Trip) []*entity.Trip {
	entities := make([]*entity.Trip, len(trips))
	for i, t := range trips {
		entities[i] = m.ToEntity(t)
	}
	return entities
}

// Message mappers

func (m *TripMapper) MessageToEntity(msg *model.TripMessage) *entity.TripMessage {
	if msg == nil {
		return nil
	}
	return &entity.TripMessage{
		Id:        msg.Id,
		TripId:    msg.TripId,
		Role:      msg.Role,
		Text:      msg.Text,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *TripMapper) MessageToModel(msg *entity.TripMessage) *model.TripMessage {
	if msg == nil {
		return nil
	}
	return &model.TripMessage{
		Id:        msg.Id,
		TripId:    msg.TripId,
		Role:      msg.Role,
		Text:      msg.Text,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *TripMapper) MessagesToEntities(msgs []*model.TripMessage) []*entity.TripMessage {
	entities := make([]*entity.TripMessage, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.MessageToEntity(msg)
	}
	return entities
}

// Feedback mappers

func (m *TripMapper) FeedbackToEntity(fb *model.TripFeedback) *entity.TripFeedback {
	if fb == nil {
		return nil
	}
	return &entity.TripFeedback{
		Id:        fb.Id,
		TripId:    fb.TripId,
		UserId:    fb.UserId,
		Email:     fb.Email,
		Rating:    fb.Rating,
		Comments:  fb.Comments,
		CreatedAt: fb.CreatedAt,
	}
}

func (m *TripMapper) FeedbackToModel(fb *entity.TripFeedback) *model.TripFeedback {
	if fb == nil {
		return nil
	}
	return &model.TripFeedback{
		Id:        fb.Id,
		TripId:    fb.TripId,
		UserId:    fb.UserId,
		Email:     fb.Email,
		Rating:    fb.Rating,
		Comments:  fb.Comments,
		CreatedAt: fb.CreatedAt,
	}
}

func (m *TripMapper) FeedbacksToEntities(fbs []*model.TripFeedback) []*entity.TripFeedback {
	entities := make([]*entity.TripFeedback, len(fbs))
	for i, fb := range fbs {
		entities[i] = m.FeedbackToEntity(fb)
	}
	return entities
}
