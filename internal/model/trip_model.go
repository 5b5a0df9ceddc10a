package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Trip struct {
	Id     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId uuid.UUID `gorm:"type:uuid;not null;index"`
	Email  string    `gorm:"type:varchar(255);not null;index"`

	FromCity            *string    `gorm:"type:varchar(120)"`
	ToCity              *string    `gorm:"type:varchar(120)"`
	PartyType           *string    `gorm:"type:varchar(20)"`
	AdultsCount         *int       `gorm:"type:int"`
	ChildrenCount       *int       `gorm:"type:int"`
	SeniorsCount        *int       `gorm:"type:int"`
	BudgetLevel         *string    `gorm:"type:varchar(20)"`
	DurationDays        *int       `gorm:"type:int"`
	StartDate           *time.Time `gorm:"type:date"`
	EndDate             *time.Time `gorm:"type:date"`
	Interests           datatypes.JSONSlice[string]
	SpecialRequirements *string `gorm:"type:text"`
	ContactPhone        *string `gorm:"type:varchar(32)"`
	Passengers          datatypes.JSON

	Title         *string        `gorm:"type:varchar(255)"`
	AiSummaryText *string        `gorm:"type:text"`
	AiSummaryJson datatypes.JSON `gorm:"type:jsonb"`

	Status                string     `gorm:"type:varchar(20);not null;default:'draft';index"`
	TotalPrice            *float64   `gorm:"type:numeric(12,2)"`
	Currency              string     `gorm:"type:varchar(8);not null;default:'INR'"`
	BookingNumber         *string    `gorm:"type:varchar(20);uniqueIndex"`
	IsDealBooking         bool       `gorm:"default:false"`
	SourceDealId          *uuid.UUID `gorm:"type:uuid"`
	SourceGroupId         *uuid.UUID `gorm:"type:uuid;index"`
	GoogleCalendarEventId *string    `gorm:"type:varchar(255)"`
	FeedbackEmailSent     bool       `gorm:"default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Trip) TableName() string {
	return "trips"
}
