package mapper

import (
	"time"

	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}

	var updatedAt *time.Time
	if !u.UpdatedAt.IsZero() {
		at := u.UpdatedAt
		updatedAt = &at
	}

	return &entity.User{
		Id:            u.Id,
		RegisterId:    u.RegisterId,
		Email:         u.Email,
		Phone:         u.Phone,
		PasswordHash:  u.PasswordHash,
		FullName:      u.FullName,
		EmailVerified: u.EmailVerified,
		PhoneVerified: u.PhoneVerified,
		GoogleId:      u.GoogleId,
		AvatarURL:     u.AvatarURL,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}

	var updatedAt time.Time
	if u.UpdatedAt != nil {
		updatedAt = *u.UpdatedAt
	}

	return &model.User{
		Id:            u.Id,
		RegisterId:    u.RegisterId,
		Email:         u.Email,
		Phone:         u.Phone,
		PasswordHash:  u.PasswordHash,
		FullName:      u.FullName,
		EmailVerified: u.EmailVerified,
		PhoneVerified: u.PhoneVerified,
		GoogleId:      u.GoogleId,
		AvatarURL:     u.AvatarURL,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *UserMapper) OtpToEntity(o *model.OtpCode) *entity.OtpCode {
	if o == nil {
		return nil
	}
	return &entity.OtpCode{
		Id:         o.Id,
		Identifier: o.Identifier,
		CodeHash:   o.CodeHash,
		Purpose:    entity.OtpPurpose(o.Purpose),
		ExpiresAt:  o.ExpiresAt,
		Used:       o.Used,
		CreatedAt:  o.CreatedAt,
	}
}

func (m *UserMapper) OtpToModel(o *entity.OtpCode) *model.OtpCode {
	if o == nil {
		return nil
	}
	return &model.OtpCode{
		Id:         o.Id,
		Identifier: o.Identifier,
		CodeHash:   o.CodeHash,
		Purpose:    string(o.Purpose),
		ExpiresAt:  o.ExpiresAt,
		Used:       o.Used,
		CreatedAt:  o.CreatedAt,
	}
}
