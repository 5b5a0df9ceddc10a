package dto

import (
	"time"

	"github.com/google/uuid"

	"travelorbit-be/internal/entity"
)

// --- Chat / Planner DTOs ---

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	TripId  uuid.UUID    `json:"trip_id"`
	Reply   string       `json:"reply"`
	IsFinal bool         `json:"is_final"`
	Trip    TripResponse `json:"trip"`
}

// WebhookChatRequest is the inbound shape for channel integrations. The
// sender's email binds the message to their open planning session.
type WebhookChatRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message"`
	Channel string `json:"channel"`
}

type WebhookChatResponse struct {
	TripId uuid.UUID `json:"trip_id"`
	Reply  string    `json:"reply"`
}

type TripMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatHistoryResponse struct {
	TripId   uuid.UUID             `json:"trip_id"`
	Messages []TripMessageResponse `json:"messages"`
}

func NewTripMessageResponse(m *entity.TripMessage) TripMessageResponse {
	return TripMessageResponse{
		Id:        m.Id,
		Role:      m.Role,
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
}
