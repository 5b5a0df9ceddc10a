package entity

import (
	"time"

	"github.com/google/uuid"
)

// TripFeedback is a traveller's post-trip rating, collected after the
// feedback-request email goes out.
type TripFeedback struct {
	Id       uuid.UUID
	TripId   uuid.UUID
	UserId   uuid.UUID
	Email    string
	Rating   int
	Comments *string

	CreatedAt time.Time
}
