package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type Deal struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Destination     string     `gorm:"type:varchar(120);not null"`
	Country         *string    `gorm:"type:varchar(120)"`
	Title           string     `gorm:"type:varchar(255);not null"`
	Description     string     `gorm:"type:text;not null"`
	OriginalPrice   float64    `gorm:"type:numeric(12,2);not null"`
	DiscountedPrice float64    `gorm:"type:numeric(12,2);not null"`
	Currency        string     `gorm:"type:varchar(8);not null;default:'INR'"`
	ValidUntil      time.Time  `gorm:"type:date;not null"`
	MinPeople       int        `gorm:"default:1"`
	MaxPeople       int        `gorm:"default:10"`
	DurationDays    int        `gorm:"not null"`
	StartDate       *time.Time `gorm:"type:date"`
	EndDate         *time.Time `gorm:"type:date"`
	Inclusions      datatypes.JSONSlice[string]
	ItineraryJson   datatypes.JSON  `gorm:"type:jsonb"`
	International   bool            `gorm:"default:false"`
	IsActive        bool            `gorm:"default:true;index"`
	GeneratedOn     time.Time       `gorm:"type:date;not null;index"`
	Embedding       pgvector.Vector `gorm:"type:vector(768)"` // interest text embedding for recommendations
	CreatedAt       time.Time       `gorm:"autoCreateTime"`
}

func (Deal) TableName() string {
	return "deals"
}
