package contract

import (
	"context"
	"errors"

	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TravelGroupRepository interface {
	Create(ctx context.Context, group *entity.TravelGroup) error
	Update(ctx context.Context, group *entity.TravelGroup) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TravelGroup, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TravelGroup, error)

	// MarkConverted stamps the produced trip onto the group. It only
	// succeeds while converted_trip_id is still NULL, so concurrent quorum
	// hits resolve to exactly one conversion; the loser gets false back.
	MarkConverted(ctx context.Context, groupId uuid.UUID, tripId uuid.UUID) (bool, error)
}

type GroupMemberRepository interface {
	Create(ctx context.Context, member *entity.GroupMember) error
	Update(ctx context.Context, member *entity.GroupMember) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GroupMember, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GroupMember, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type GroupVoteRepository interface {
	Create(ctx context.Context, vote *entity.GroupVote) error
	Update(ctx context.Context, vote *entity.GroupVote) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GroupVote, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GroupVote, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

// ErrDuplicateVote reports a unique-index hit on (group, voter email),
// which happens when the same voter submits twice concurrently.
var ErrDuplicateVote = errors.New("vote already recorded for this voter")

// ErrDuplicateGroupCode reports a unique-index hit on the invite code.
// Codes are random, so the caller regenerates and retries the insert.
var ErrDuplicateGroupCode = errors.New("group code already taken")
