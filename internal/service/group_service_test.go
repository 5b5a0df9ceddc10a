package service

import (
	"context"
	"testing"
	"time"

	"travelorbit-be/internal/dto"
	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGroupForTest(store *memStore) IGroupService {
	return NewGroupService(&fakeFactory{store: store}, nil, nopLogger{})
}

func seedGroup(store *memStore, leaderId uuid.UUID, expected int) entity.TravelGroup {
	group := entity.TravelGroup{
		Id:            uuid.New(),
		Code:          "ABC234",
		LeaderUserId:  leaderId,
		LeaderEmail:   "lead@example.com",
		Name:          "Goa gang",
		ExpectedCount: expected,
		CreatedAt:     time.Now(),
	}
	store.groups = append(store.groups, group)
	return group
}

func TestCreateGroupRetriesOnInviteCodeCollision(t *testing.T) {
	store := newMemStore()
	attempts := 0
	store.groupCreateErr = func(code string) error {
		attempts++
		if attempts == 1 {
			return contract.ErrDuplicateGroupCode
		}
		return nil
	}
	svc := newGroupForTest(store)

	res, err := svc.Create(context.Background(), uuid.New(), "lead@example.com", &dto.CreateGroupRequest{
		Name:          "Goa gang",
		ExpectedCount: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, attempts, "a collision should trigger a second insert with a fresh code")
	require.Len(t, store.groups, 1)
	assert.Equal(t, store.groups[0].Code, res.Code)

	// The leader membership belongs to the attempt that stuck.
	require.Len(t, store.members, 1)
	assert.Equal(t, "lead@example.com", store.members[0].Email)
	assert.True(t, store.members[0].Joined)
	assert.Equal(t, store.groups[0].Id, store.members[0].GroupId)
}

func TestCreateGroupGivesUpAfterRepeatedCollisions(t *testing.T) {
	store := newMemStore()
	store.groupCreateErr = func(code string) error {
		return contract.ErrDuplicateGroupCode
	}
	svc := newGroupForTest(store)

	_, err := svc.Create(context.Background(), uuid.New(), "lead@example.com", &dto.CreateGroupRequest{
		Name:          "Goa gang",
		ExpectedCount: 3,
	})
	require.ErrorIs(t, err, contract.ErrDuplicateGroupCode)
	assert.Empty(t, store.groups)
}

func TestSubmitVoteQuorumProducesExactlyOnePlannedTrip(t *testing.T) {
	store := newMemStore()
	group := seedGroup(store, uuid.New(), 2)
	svc := newGroupForTest(store)

	first, err := svc.SubmitVote(context.Background(), group.Code, &dto.SubmitVoteRequest{
		Email:       "maya@example.com",
		Destination: "Goa",
	})
	require.NoError(t, err)
	assert.False(t, first.Converted)
	assert.Equal(t, 1, first.VoteCount)

	second, err := svc.SubmitVote(context.Background(), group.Code, &dto.SubmitVoteRequest{
		Email:       "ravi@example.com",
		Destination: "Goa",
	})
	require.NoError(t, err)
	assert.True(t, second.Converted)
	require.NotNil(t, second.Trip)

	require.Len(t, store.trips, 1)
	trip := store.trips[0]
	assert.Equal(t, entity.TripStatusPlanned, trip.Status)
	require.NotNil(t, trip.SourceGroupId)
	assert.Equal(t, group.Id, *trip.SourceGroupId)

	converted := store.groupByID(group.Id)
	require.NotNil(t, converted.ConvertedTripId)
	assert.Equal(t, trip.Id, *converted.ConvertedTripId)

	// The group is closed; a late vote is rejected.
	_, err = svc.SubmitVote(context.Background(), group.Code, &dto.SubmitVoteRequest{
		Email:       "late@example.com",
		Destination: "Goa",
	})
	require.ErrorIs(t, err, ErrGroupConverted)
}

func TestConvertLosingRaceServesWinnerTrip(t *testing.T) {
	store := newMemStore()
	leaderId := uuid.New()
	group := seedGroup(store, leaderId, 3)
	store.votes = append(store.votes, entity.GroupVote{
		Id:          uuid.New(),
		GroupId:     group.Id,
		VoterEmail:  "maya@example.com",
		Destination: "Goa",
		CreatedAt:   time.Now(),
	})

	winnerId := uuid.New()
	store.setTrip(entity.Trip{
		Id:            winnerId,
		UserId:        leaderId,
		Email:         group.LeaderEmail,
		Status:        entity.TripStatusPlanned,
		SourceGroupId: &group.Id,
		CreatedAt:     time.Now(),
	})

	// A concurrent converter stamps the group while this request is mid-flight.
	store.beforeMarkConverted = func(s *memStore) {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.groups {
			if s.groups[i].Id == group.Id {
				id := winnerId
				s.groups[i].ConvertedTripId = &id
			}
		}
	}
	svc := newGroupForTest(store)

	res, err := svc.Convert(context.Background(), leaderId, group.Code)
	require.NoError(t, err)
	assert.True(t, res.Converted)
	require.NotNil(t, res.Trip)
	assert.Equal(t, winnerId, res.Trip.Id)

	// The losing conversion's trip is discarded; only the winner remains.
	require.Len(t, store.trips, 1)
	assert.Equal(t, winnerId, store.trips[0].Id)
}
