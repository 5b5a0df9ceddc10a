package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByUserID struct {
	UserID uuid.UUID
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type ByOwnerEmail struct {
	Email string
}

func (s ByOwnerEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

type ByTripID struct {
	TripID uuid.UUID
}

func (s ByTripID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("trip_id = ?", s.TripID)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// OpenTrips keeps sessions the planner may still mutate.
type OpenTrips struct{}

func (s OpenTrips) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ?", []string{"draft", "planned"})
}

// EndedOn matches trips whose travel window closed on the given date.
type EndedOn struct {
	Date time.Time
}

func (s EndedOn) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("end_date = ?", s.Date.Format("2006-01-02"))
}

// FeedbackEmailPending keeps completed bookings that have not been asked
// for a rating yet.
type FeedbackEmailPending struct{}

func (s FeedbackEmailPending) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("feedback_email_sent = ?", false).
		Where("status IN ?", []string{"planned", "paid"})
}
