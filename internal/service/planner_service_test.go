package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"travelorbit-be/internal/config"
	"travelorbit-be/internal/constant"
	"travelorbit-be/internal/dto"
	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/repository/memory"
	"travelorbit-be/pkg/planner"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlannerForTest(store *memStore, provider *scriptedLLM) IPlannerService {
	cfg := &config.Config{Ai: config.AIConfig{PlannerTimeoutSec: 5}}
	return NewPlannerService(&fakeFactory{store: store}, provider, nil, memory.NewSessionRepository(), nopLogger{}, cfg)
}

func TestHandleMessageEmptyInboundWelcomesWithoutModelCall(t *testing.T) {
	store := newMemStore()
	provider := &scriptedLLM{}
	svc := newPlannerForTest(store, provider)

	userId := uuid.New()
	resp, err := svc.HandleMessage(context.Background(), userId, "ana@example.com", "   ")
	require.NoError(t, err)

	assert.Equal(t, constant.PlannerWelcomeReply, resp.Reply)
	assert.False(t, resp.IsFinal)
	assert.Equal(t, 0, provider.callCount())

	// A draft session opens, but the blank inbound is not stored as a turn.
	require.Len(t, store.trips, 1)
	assert.Equal(t, entity.TripStatusDraft, store.trips[0].Status)
	assert.Empty(t, store.messages)
}

func TestHandleWebhookMessageEmptyInboundCreatesGuestAndWelcomes(t *testing.T) {
	store := newMemStore()
	provider := &scriptedLLM{}
	svc := newPlannerForTest(store, provider)

	resp, err := svc.HandleWebhookMessage(context.Background(), &dto.WebhookChatRequest{
		Email:   "stranger@example.com",
		Message: "",
		Channel: "whatsapp",
	})
	require.NoError(t, err)

	assert.Equal(t, constant.PlannerWelcomeReply, resp.Reply)
	assert.Equal(t, 0, provider.callCount())
	require.Len(t, store.users, 1)
	assert.Equal(t, "stranger@example.com", store.users[0].Email)
	assert.Empty(t, store.messages)
}

func TestHandleMessageKeepsUserTurnWhenModelFails(t *testing.T) {
	store := newMemStore()
	provider := &scriptedLLM{err: errors.New("provider down")}
	svc := newPlannerForTest(store, provider)

	userId := uuid.New()
	resp, err := svc.HandleMessage(context.Background(), userId, "ana@example.com", "Plan me a trip to Goa")
	require.NoError(t, err)

	// One retry, then the deterministic fallback.
	assert.Equal(t, 2, provider.callCount())
	assert.NotEmpty(t, resp.Reply)
	assert.NotEqual(t, constant.PlannerWelcomeReply, resp.Reply)

	require.Len(t, store.messages, 2)
	assert.Equal(t, constant.TripMessageRoleUser, store.messages[0].Role)
	assert.Equal(t, "Plan me a trip to Goa", store.messages[0].Text)
	assert.Equal(t, constant.TripMessageRoleAssistant, store.messages[1].Role)
	assert.Equal(t, resp.Reply, store.messages[1].Text)
}

func TestHandleMessageDoesNotOverwriteConcurrentFieldUpdates(t *testing.T) {
	store := newMemStore()
	userId := uuid.New()
	tripId := uuid.New()
	store.setTrip(entity.Trip{
		Id:        tripId,
		UserId:    userId,
		Email:     "ana@example.com",
		Status:    entity.TripStatusDraft,
		Currency:  "INR",
		CreatedAt: time.Now(),
	})

	provider := &scriptedLLM{
		replies: []string{
			"Goa it is!\n" + planner.Marker + "\n" +
				`{"is_final_itinerary": false, "updated_fields": {"to_city": "Goa"}}`,
		},
	}
	// While this turn waits on the model, another turn lands a from_city.
	provider.onChat = func(call int) {
		trip := store.tripByID(tripId)
		from := "Delhi"
		trip.FromCity = &from
		store.setTrip(*trip)
	}
	svc := newPlannerForTest(store, provider)

	resp, err := svc.HandleMessage(context.Background(), userId, "ana@example.com", "Goa please")
	require.NoError(t, err)
	assert.Equal(t, "Goa it is!", resp.Reply)

	stored := store.tripByID(tripId)
	require.NotNil(t, stored)
	require.NotNil(t, stored.ToCity, "this turn's merge must be applied")
	assert.Equal(t, "Goa", *stored.ToCity)
	require.NotNil(t, stored.FromCity, "the concurrent turn's merge must survive")
	assert.Equal(t, "Delhi", *stored.FromCity)
}

func TestHandleMessageFinalItineraryPlansTrip(t *testing.T) {
	store := newMemStore()
	provider := &scriptedLLM{
		replies: []string{
			"Here is your plan!\n" + planner.Marker + "\n" +
				`{"is_final_itinerary": true,
				  "updated_fields": {"to_city": "Goa", "duration_days": 2},
				  "itinerary": {"title": "Goa Getaway", "days": [
				    {"day": 1, "title": "Beaches", "activities": [{"name": "Baga Beach"}]},
				    {"day": 2, "title": "Old Goa", "activities": [{"name": "Basilica"}]}
				  ]}}`,
		},
	}
	svc := newPlannerForTest(store, provider)

	userId := uuid.New()
	resp, err := svc.HandleMessage(context.Background(), userId, "ana@example.com", "two days in Goa, surprise me")
	require.NoError(t, err)

	assert.True(t, resp.IsFinal)
	require.Len(t, store.trips, 1)
	trip := store.trips[0]
	assert.Equal(t, entity.TripStatusPlanned, trip.Status)
	require.NotNil(t, trip.Title)
	assert.Equal(t, "Goa Getaway", *trip.Title)
	require.NotNil(t, trip.TotalPrice)
	require.NotNil(t, trip.Itinerary)
	assert.Len(t, trip.Itinerary.Days, 2)
}

func TestFinalizeTripAlwaysSetsATitle(t *testing.T) {
	s := &plannerService{}
	itinerary := &entity.Itinerary{Days: []entity.DayPlan{{Day: 1}}}

	// No itinerary title and no destination captured at all.
	trip := &entity.Trip{Status: entity.TripStatusDraft}
	s.finalizeTrip(trip, itinerary, "summary line")
	require.NotNil(t, trip.Title)
	assert.Equal(t, "Your Trip", *trip.Title)
	assert.Equal(t, entity.TripStatusPlanned, trip.Status)
	require.NotNil(t, trip.AiSummaryText)
	assert.Equal(t, "summary line", *trip.AiSummaryText)

	// A known destination beats the generic fallback.
	goa := "Goa"
	trip = &entity.Trip{Status: entity.TripStatusDraft, ToCity: &goa}
	s.finalizeTrip(trip, itinerary, "")
	require.NotNil(t, trip.Title)
	assert.Equal(t, "Trip to Goa", *trip.Title)
}
