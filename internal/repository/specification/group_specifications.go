package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByGroupID struct {
	GroupID uuid.UUID
}

func (s ByGroupID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("group_id = ?", s.GroupID)
}

type ByCode struct {
	Code string
}

func (s ByCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("code = ?", s.Code)
}

type ByVoterEmail struct {
	Email string
}

func (s ByVoterEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("voter_email = ?", s.Email)
}

type ByMemberEmail struct {
	Email string
}

func (s ByMemberEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}
