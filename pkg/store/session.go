package store

import "github.com/google/uuid"

// Session binds an inbound chat identity (webhook email or phone) to the
// trip currently being planned, plus counters the restart policy needs
// without a round trip to the database.
type Session struct {
	ID        string    `json:"id"` // Email or channel-scoped sender id
	TripID    uuid.UUID `json:"trip_id"`
	UserTurns int       `json:"user_turns"`

	// Channel the session arrived on ("web", "webhook")
	Channel string `json:"channel"`

	// Last planner exchange, used for duplicate-delivery suppression
	LastInbound string `json:"last_inbound"`
	LastReply   string `json:"last_reply"`
}

const (
	ChannelWeb     = "web"
	ChannelWebhook = "webhook"
)
