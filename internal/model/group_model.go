package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TravelGroup struct {
	Id                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code               string    `gorm:"type:varchar(8);uniqueIndex;not null"`
	LeaderUserId       uuid.UUID `gorm:"type:uuid;not null;index"`
	LeaderEmail        string    `gorm:"type:varchar(255);not null"`
	Name               string    `gorm:"type:varchar(255);not null"`
	ExpectedCount      int       `gorm:"not null"`
	DestinationOptions datatypes.JSONSlice[string]
	ConvertedTripId    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt          time.Time  `gorm:"autoCreateTime"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime"`
}

func (TravelGroup) TableName() string {
	return "travel_groups"
}

type GroupMember struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GroupId   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_group_member_email,priority:1"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_group_member_email,priority:2"`
	Joined    bool      `gorm:"default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (GroupMember) TableName() string {
	return "group_members"
}

type GroupVote struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GroupId     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_group_vote_voter,priority:1"`
	VoterEmail  string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_group_vote_voter,priority:2"`
	VoterName   *string    `gorm:"type:varchar(255)"`
	Destination string     `gorm:"type:varchar(120);not null"`
	BudgetLevel *string    `gorm:"type:varchar(20)"`
	StartDate   *time.Time `gorm:"type:date"`
	EndDate     *time.Time `gorm:"type:date"`
	Activities  datatypes.JSONSlice[string]
	Phone       *string   `gorm:"type:varchar(32)"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (GroupVote) TableName() string {
	return "group_votes"
}
