package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RegisterId    string    `gorm:"type:varchar(16);uniqueIndex;not null"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Phone         *string   `gorm:"type:varchar(32);uniqueIndex"`
	PasswordHash  *string   `gorm:"type:varchar(255)"`
	FullName      string    `gorm:"type:varchar(255);not null"`
	EmailVerified bool      `gorm:"default:false"`
	PhoneVerified bool      `gorm:"default:false"`
	GoogleId      *string   `gorm:"type:varchar(64);index"`
	AvatarURL     *string   `gorm:"type:varchar(512)"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

type OtpCode struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Identifier string    `gorm:"type:varchar(255);not null;index"`
	CodeHash   string    `gorm:"type:varchar(255);not null"`
	Purpose    string    `gorm:"type:varchar(20);not null"`
	ExpiresAt  time.Time `gorm:"not null"`
	Used       bool      `gorm:"default:false"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (OtpCode) TableName() string {
	return "otp_codes"
}
