package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Group Voting DTOs ---

type CreateGroupRequest struct {
	Name               string   `json:"name" validate:"required,min=2"`
	ExpectedCount      int      `json:"expected_count" validate:"required,min=2,max=50"`
	DestinationOptions []string `json:"destination_options" validate:"omitempty,dive,min=2"`
	MemberEmails       []string `json:"member_emails" validate:"omitempty,dive,email"`
}

type GroupResponse struct {
	Id                 uuid.UUID  `json:"id"`
	Code               string     `json:"code"`
	Name               string     `json:"name"`
	LeaderEmail        string     `json:"leader_email"`
	ExpectedCount      int        `json:"expected_count"`
	DestinationOptions []string   `json:"destination_options"`
	VoteCount          int        `json:"vote_count"`
	Converted          bool       `json:"converted"`
	ConvertedTripId    *uuid.UUID `json:"converted_trip_id,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

type JoinGroupRequest struct {
	Code  string `json:"code" validate:"required,len=6"`
	Email string `json:"email" validate:"required,email"`
}

type SubmitVoteRequest struct {
	Email       string   `json:"email" validate:"required,email"`
	Name        string   `json:"name" validate:"omitempty,min=2"`
	Destination string   `json:"destination" validate:"required,min=2"`
	BudgetLevel string   `json:"budget_level" validate:"omitempty,oneof=cheap moderate luxury"`
	StartDate   string   `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string   `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Activities  []string `json:"activities"`
	Phone       string   `json:"phone" validate:"omitempty,e164"`
}

type SubmitVoteResponse struct {
	GroupId   uuid.UUID     `json:"group_id"`
	VoteCount int           `json:"vote_count"`
	Expected  int           `json:"expected_count"`
	Converted bool          `json:"converted"`
	Trip      *TripResponse `json:"trip,omitempty"`
}

type VoteSummary struct {
	VoterEmail  string   `json:"voter_email"`
	VoterName   *string  `json:"voter_name,omitempty"`
	Destination string   `json:"destination"`
	BudgetLevel *string  `json:"budget_level,omitempty"`
	Activities  []string `json:"activities,omitempty"`
}

type GroupStatusResponse struct {
	Group GroupResponse `json:"group"`
	Votes []VoteSummary `json:"votes"`
	Trip  *TripResponse `json:"trip,omitempty"`
}
