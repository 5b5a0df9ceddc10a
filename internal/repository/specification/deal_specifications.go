package specification

import (
	"time"

	"gorm.io/gorm"
)

type ActiveDeals struct{}

func (s ActiveDeals) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

type GeneratedOn struct {
	Date time.Time
}

func (s GeneratedOn) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("generated_on = ?", s.Date.Format("2006-01-02"))
}

type ValidAfter struct {
	Date time.Time
}

func (s ValidAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("valid_until >= ?", s.Date.Format("2006-01-02"))
}
