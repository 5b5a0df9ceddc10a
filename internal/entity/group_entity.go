package entity

import (
	"time"

	"github.com/google/uuid"
)

// TravelGroup collects destination votes from several people and resolves
// them into a single planned trip once quorum is reached.
type TravelGroup struct {
	Id                 uuid.UUID
	Code               string
	LeaderUserId       uuid.UUID
	LeaderEmail        string
	Name               string
	ExpectedCount      int
	DestinationOptions []string
	ConvertedTripId    *uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          *time.Time
}

// Converted reports whether this group already produced a trip.
func (g *TravelGroup) Converted() bool {
	return g.ConvertedTripId != nil
}

type GroupMember struct {
	Id        uuid.UUID
	GroupId   uuid.UUID
	Email     string
	Joined    bool
	CreatedAt time.Time
}

// GroupVote is one member's preference submission. At most one row lives
// per (group, voter email); resubmitting overwrites it.
type GroupVote struct {
	Id          uuid.UUID
	GroupId     uuid.UUID
	VoterEmail  string
	VoterName   *string
	Destination string
	BudgetLevel *BudgetLevel
	StartDate   *time.Time
	EndDate     *time.Time
	Activities  []string
	Phone       *string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
