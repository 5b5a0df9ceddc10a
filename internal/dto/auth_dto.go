package dto

import (
	"github.com/google/uuid"
)

// --- Auth DTOs ---

type SignupRequest struct {
	FullName string `json:"full_name" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,e164"`
	Password string `json:"password" validate:"omitempty,min=8"`
}

type SignupResponse struct {
	Id         uuid.UUID `json:"id"`
	RegisterId string    `json:"register_id"`
	Email      string    `json:"email"`
	OtpSentTo  string    `json:"otp_sent_to"`
}

type VerifyOtpRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Code       string `json:"code" validate:"required,len=6"`
	Purpose    string `json:"purpose" validate:"required,oneof=signup login phone_verify"`
}

type RequestOtpRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Purpose    string `json:"purpose" validate:"required,oneof=signup login phone_verify"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty"`
}

type LoginResponse struct {
	AccessToken string  `json:"access_token"`
	OtpRequired bool    `json:"otp_required"`
	User        UserDTO `json:"user"`
}

type UserDTO struct {
	Id            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name"`
	Phone         string    `json:"phone,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	PhoneVerified bool      `json:"phone_verified"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
}

// --- OAuth DTOs ---

type OAuthURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

type OAuthCallbackRequest struct {
	Code  string `json:"code" validate:"required"`
	State string `json:"state" validate:"required"`
}
