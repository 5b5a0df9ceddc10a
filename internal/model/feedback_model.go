package model

import (
	"time"

	"github.com/google/uuid"
)

type TripFeedback struct {
	Id     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TripId uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId uuid.UUID `gorm:"type:uuid;not null;index"`
	Email  string    `gorm:"type:varchar(255);not null;index"`

	Rating   int     `gorm:"type:int;not null"`
	Comments *string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (TripFeedback) TableName() string {
	return "trip_feedback"
}
