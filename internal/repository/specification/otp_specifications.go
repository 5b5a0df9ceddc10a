package specification

import "gorm.io/gorm"

type ByIdentifier struct {
	Identifier string
}

func (s ByIdentifier) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("identifier = ?", s.Identifier)
}

type ByPurpose struct {
	Purpose string
}

func (s ByPurpose) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("purpose = ?", s.Purpose)
}

type Unused struct{}

func (s Unused) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("used = ?", false)
}
