package entity

import (
	"time"

	"github.com/google/uuid"
)

type TripMessage struct {
	Id        uuid.UUID
	TripId    uuid.UUID
	Role      string
	Text      string
	CreatedAt time.Time
}
