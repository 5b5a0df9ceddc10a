package entity

import (
	"time"

	"github.com/google/uuid"
)

type OtpPurpose string

const (
	OtpPurposeSignup      OtpPurpose = "signup"
	OtpPurposeLogin       OtpPurpose = "login"
	OtpPurposePhoneVerify OtpPurpose = "phone_verify"
)

type User struct {
	Id            uuid.UUID
	RegisterId    string
	Email         string
	Phone         *string
	PasswordHash  *string
	FullName      string
	EmailVerified bool
	PhoneVerified bool
	GoogleId      *string
	AvatarURL     *string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// OtpCode is a pending one-time code. The code itself is stored hashed;
// Identifier is the phone number or email it was sent to.
type OtpCode struct {
	Id         uuid.UUID
	Identifier string
	CodeHash   string
	Purpose    OtpPurpose
	ExpiresAt  time.Time
	Used       bool
	CreatedAt  time.Time
}

// Expired reports whether the code can no longer be redeemed.
func (o *OtpCode) Expired(now time.Time) bool {
	return o.Used || now.After(o.ExpiresAt)
}
