package model

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TripId    uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Provider  string    `gorm:"type:varchar(20);not null"`
	OrderRef  string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Amount    float64   `gorm:"type:numeric(12,2);not null"`
	Currency  string    `gorm:"type:varchar(8);not null;default:'INR'"`
	Status    string    `gorm:"type:varchar(20);not null;default:'created'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Payment) TableName() string {
	return "payments"
}
