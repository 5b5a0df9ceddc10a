package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"travelorbit-be/internal/dto"
	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/pkg/logger"
	"travelorbit-be/internal/repository/contract"
	"travelorbit-be/internal/repository/specification"
	"travelorbit-be/internal/repository/unitofwork"
	"travelorbit-be/pkg/consensus"
	"travelorbit-be/pkg/events"
	pktNats "travelorbit-be/pkg/nats"
	"travelorbit-be/pkg/utils"

	"github.com/google/uuid"
)

var (
	ErrGroupNotFound    = errors.New("group not found")
	ErrGroupConverted   = errors.New("group has already been converted")
	ErrInvalidGroupVote = errors.New("vote destination is not one of the group options")
	ErrNotGroupLeader   = errors.New("only the group leader can do that")
)

type IGroupService interface {
	Create(ctx context.Context, userId uuid.UUID, email string, req *dto.CreateGroupRequest) (*dto.GroupResponse, error)
	Join(ctx context.Context, req *dto.JoinGroupRequest) (*dto.GroupResponse, error)
	Status(ctx context.Context, code string) (*dto.GroupStatusResponse, error)
	SubmitVote(ctx context.Context, code string, req *dto.SubmitVoteRequest) (*dto.SubmitVoteResponse, error)

	// Convert lets the leader close voting early, below quorum. At least
	// one vote must exist.
	Convert(ctx context.Context, userId uuid.UUID, code string) (*dto.SubmitVoteResponse, error)
}

type groupService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewGroupService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, log logger.ILogger) IGroupService {
	return &groupService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

// groupCodeAttempts bounds how often Create regenerates a colliding
// invite code before giving up. Codes span 32^6 values, so a second
// collision in a row is already vanishingly rare.
const groupCodeAttempts = 5

func (s *groupService) Create(ctx context.Context, userId uuid.UUID, email string, req *dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var group *entity.TravelGroup
	for attempt := 0; attempt < groupCodeAttempts; attempt++ {
		code, err := utils.GenerateGroupCode()
		if err != nil {
			return nil, err
		}

		group = &entity.TravelGroup{
			Id:                 uuid.New(),
			Code:               code,
			LeaderUserId:       userId,
			LeaderEmail:        email,
			Name:               req.Name,
			ExpectedCount:      req.ExpectedCount,
			DestinationOptions: req.DestinationOptions,
			CreatedAt:          time.Now(),
		}

		err = s.createGroup(ctx, uow, group, email, req.MemberEmails)
		if errors.Is(err, contract.ErrDuplicateGroupCode) {
			s.log.Warn("group", "invite code collision, regenerating", map[string]interface{}{
				"code": code,
			})
			continue
		}
		if err != nil {
			return nil, err
		}

		res := toGroupResponse(group, 0)
		return &res, nil
	}
	return nil, contract.ErrDuplicateGroupCode
}

// createGroup runs one insert attempt in its own transaction. A code
// collision aborts the transaction on the Postgres side, so the retry in
// Create has to start a fresh one anyway.
func (s *groupService) createGroup(ctx context.Context, uow unitofwork.UnitOfWork, group *entity.TravelGroup, leaderEmail string, memberEmails []string) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.TravelGroupRepository().Create(ctx, group); err != nil {
		return err
	}

	// The leader is a member from the start; invited emails join pending.
	members := append([]string{leaderEmail}, memberEmails...)
	seen := map[string]bool{}
	for _, m := range members {
		normalized := strings.ToLower(strings.TrimSpace(m))
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		member := &entity.GroupMember{
			Id:        uuid.New(),
			GroupId:   group.Id,
			Email:     normalized,
			Joined:    normalized == strings.ToLower(leaderEmail),
			CreatedAt: time.Now(),
		}
		if err := uow.GroupMemberRepository().Create(ctx, member); err != nil {
			return err
		}
	}

	return uow.Commit()
}

func (s *groupService) Join(ctx context.Context, req *dto.JoinGroupRequest) (*dto.GroupResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	group, err := s.findByCode(ctx, uow, req.Code)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	member, err := uow.GroupMemberRepository().FindOne(ctx,
		specification.ByGroupID{GroupID: group.Id},
		specification.ByMemberEmail{Email: email},
	)
	if err != nil {
		return nil, err
	}

	if member == nil {
		member = &entity.GroupMember{
			Id:        uuid.New(),
			GroupId:   group.Id,
			Email:     email,
			Joined:    true,
			CreatedAt: time.Now(),
		}
		if err := uow.GroupMemberRepository().Create(ctx, member); err != nil {
			return nil, err
		}
	} else if !member.Joined {
		member.Joined = true
		if err := uow.GroupMemberRepository().Update(ctx, member); err != nil {
			return nil, err
		}
	}

	votes, err := uow.GroupVoteRepository().Count(ctx, specification.ByGroupID{GroupID: group.Id})
	if err != nil {
		return nil, err
	}

	res := toGroupResponse(group, int(votes))
	return &res, nil
}

func (s *groupService) Status(ctx context.Context, code string) (*dto.GroupStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	group, err := s.findByCode(ctx, uow, code)
	if err != nil {
		return nil, err
	}

	votes, err := uow.GroupVoteRepository().FindAll(ctx,
		specification.ByGroupID{GroupID: group.Id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.GroupStatusResponse{
		Group: toGroupResponse(group, len(votes)),
		Votes: []dto.VoteSummary{},
	}
	for _, v := range votes {
		summary := dto.VoteSummary{
			VoterEmail:  v.VoterEmail,
			VoterName:   v.VoterName,
			Destination: v.Destination,
			Activities:  v.Activities,
		}
		if v.BudgetLevel != nil {
			level := string(*v.BudgetLevel)
			summary.BudgetLevel = &level
		}
		res.Votes = append(res.Votes, summary)
	}

	if group.ConvertedTripId != nil {
		trip, err := uow.TripRepository().FindOne(ctx, specification.ByID{ID: *group.ConvertedTripId})
		if err != nil {
			return nil, err
		}
		if trip != nil {
			tr := dto.NewTripResponse(trip)
			res.Trip = &tr
		}
	}
	return res, nil
}

// SubmitVote records or overwrites one member's preference. When the vote
// count reaches the expected quorum the group collapses into a trip; the
// conditional conversion stamp guarantees concurrent quorum hits produce
// exactly one trip.
func (s *groupService) SubmitVote(ctx context.Context, code string, req *dto.SubmitVoteRequest) (*dto.SubmitVoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	group, err := s.findByCode(ctx, uow, code)
	if err != nil {
		return nil, err
	}
	if group.Converted() {
		return nil, ErrGroupConverted
	}
	if len(group.DestinationOptions) > 0 && !containsFold(group.DestinationOptions, req.Destination) {
		return nil, ErrInvalidGroupVote
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.enrollVoter(ctx, uow, group.Id, email); err != nil {
		return nil, err
	}

	vote, err := uow.GroupVoteRepository().FindOne(ctx,
		specification.ByGroupID{GroupID: group.Id},
		specification.ByVoterEmail{Email: email},
	)
	if err != nil {
		return nil, err
	}

	fresh := vote == nil
	if fresh {
		vote = &entity.GroupVote{
			Id:         uuid.New(),
			GroupId:    group.Id,
			VoterEmail: email,
			CreatedAt:  time.Now(),
		}
	} else {
		now := time.Now()
		vote.UpdatedAt = &now
	}

	vote.Destination = req.Destination
	vote.Activities = req.Activities
	if req.Name != "" {
		name := req.Name
		vote.VoterName = &name
	}
	if req.BudgetLevel != "" {
		level := entity.BudgetLevel(req.BudgetLevel)
		vote.BudgetLevel = &level
	}
	if req.Phone != "" {
		phone := req.Phone
		vote.Phone = &phone
	}
	if req.StartDate != "" {
		if start, err := time.Parse("2006-01-02", req.StartDate); err == nil {
			vote.StartDate = &start
		}
	}
	if req.EndDate != "" {
		if end, err := time.Parse("2006-01-02", req.EndDate); err == nil {
			vote.EndDate = &end
		}
	}

	if fresh {
		err = uow.GroupVoteRepository().Create(ctx, vote)
		if errors.Is(err, contract.ErrDuplicateVote) {
			// Lost a concurrent first-vote race; fold into the winner row.
			existing, findErr := uow.GroupVoteRepository().FindOne(ctx,
				specification.ByGroupID{GroupID: group.Id},
				specification.ByVoterEmail{Email: email},
			)
			if findErr != nil {
				return nil, findErr
			}
			if existing != nil {
				vote.Id = existing.Id
				vote.CreatedAt = existing.CreatedAt
				err = uow.GroupVoteRepository().Update(ctx, vote)
			}
		}
	} else {
		err = uow.GroupVoteRepository().Update(ctx, vote)
	}
	if err != nil {
		return nil, err
	}

	votes, err := uow.GroupVoteRepository().FindAll(ctx,
		specification.ByGroupID{GroupID: group.Id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.SubmitVoteResponse{
		GroupId:   group.Id,
		VoteCount: len(votes),
		Expected:  group.ExpectedCount,
	}

	if evt := events.NewGroupVoteRecorded(group.Id, group.Code, len(votes), group.ExpectedCount); s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("group", "failed to publish vote progress", map[string]interface{}{
				"group_id": group.Id.String(),
				"error":    err.Error(),
			})
		}
	}

	if len(votes) < group.ExpectedCount {
		return res, nil
	}

	trip, err := s.convert(ctx, uow, group, votes)
	if err != nil {
		return nil, err
	}
	res.Converted = true
	if trip != nil {
		tr := dto.NewTripResponse(trip)
		res.Trip = &tr
	}
	return res, nil
}

func (s *groupService) Convert(ctx context.Context, userId uuid.UUID, code string) (*dto.SubmitVoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	group, err := s.findByCode(ctx, uow, code)
	if err != nil {
		return nil, err
	}
	if group.LeaderUserId != userId {
		return nil, ErrNotGroupLeader
	}
	if group.Converted() {
		return nil, ErrGroupConverted
	}

	votes, err := uow.GroupVoteRepository().FindAll(ctx,
		specification.ByGroupID{GroupID: group.Id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	trip, err := s.convert(ctx, uow, group, votes)
	if err != nil {
		return nil, err
	}

	res := &dto.SubmitVoteResponse{
		GroupId:   group.Id,
		VoteCount: len(votes),
		Expected:  group.ExpectedCount,
		Converted: true,
	}
	if trip != nil {
		tr := dto.NewTripResponse(trip)
		res.Trip = &tr
	}
	return res, nil
}

// enrollVoter makes sure a voter shows up on the member list. Votes arrive
// from people the leader never explicitly invited.
func (s *groupService) enrollVoter(ctx context.Context, uow unitofwork.UnitOfWork, groupId uuid.UUID, email string) error {
	member, err := uow.GroupMemberRepository().FindOne(ctx,
		specification.ByGroupID{GroupID: groupId},
		specification.ByMemberEmail{Email: email},
	)
	if err != nil {
		return err
	}
	if member == nil {
		return uow.GroupMemberRepository().Create(ctx, &entity.GroupMember{
			Id:        uuid.New(),
			GroupId:   groupId,
			Email:     email,
			Joined:    true,
			CreatedAt: time.Now(),
		})
	}
	if !member.Joined {
		member.Joined = true
		return uow.GroupMemberRepository().Update(ctx, member)
	}
	return nil
}

// convert aggregates the votes and stamps the result onto the group. If
// another request already converted it, the existing trip is returned.
func (s *groupService) convert(ctx context.Context, uow unitofwork.UnitOfWork, group *entity.TravelGroup, votes []*entity.GroupVote) (*entity.Trip, error) {
	trip, err := consensus.Convert(group, votes)
	if err != nil {
		return nil, err
	}

	if err := uow.TripRepository().Create(ctx, trip); err != nil {
		return nil, err
	}

	won, err := uow.TravelGroupRepository().MarkConverted(ctx, group.Id, trip.Id)
	if err != nil {
		return nil, err
	}
	if !won {
		// Someone else got there first: discard our trip, serve theirs.
		if err := uow.TripRepository().Delete(ctx, trip.Id); err != nil {
			s.log.Warn("group", "failed to remove losing conversion trip", map[string]interface{}{
				"trip_id": trip.Id.String(),
				"error":   err.Error(),
			})
		}
		refreshed, err := uow.TravelGroupRepository().FindOne(ctx, specification.ByID{ID: group.Id})
		if err != nil {
			return nil, err
		}
		if refreshed == nil || refreshed.ConvertedTripId == nil {
			return nil, ErrGroupConverted
		}
		return uow.TripRepository().FindOne(ctx, specification.ByID{ID: *refreshed.ConvertedTripId})
	}

	s.log.Info("group", "group converted to trip", map[string]interface{}{
		"group_id": group.Id.String(),
		"trip_id":  trip.Id.String(),
		"votes":    len(votes),
	})

	if s.eventPublisher != nil {
		evt := events.NewGroupConverted(group.Id, trip.Id, group.Code, len(votes))
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("group", "failed to publish group converted event", map[string]interface{}{
				"group_id": group.Id.String(),
				"error":    err.Error(),
			})
		}
	}
	return trip, nil
}

func (s *groupService) findByCode(ctx context.Context, uow unitofwork.UnitOfWork, code string) (*entity.TravelGroup, error) {
	group, err := uow.TravelGroupRepository().FindOne(ctx, specification.ByCode{Code: strings.ToUpper(strings.TrimSpace(code))})
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

func toGroupResponse(group *entity.TravelGroup, voteCount int) dto.GroupResponse {
	return dto.GroupResponse{
		Id:                 group.Id,
		Code:               group.Code,
		Name:               group.Name,
		LeaderEmail:        group.LeaderEmail,
		ExpectedCount:      group.ExpectedCount,
		DestinationOptions: group.DestinationOptions,
		VoteCount:          voteCount,
		Converted:          group.Converted(),
		ConvertedTripId:    group.ConvertedTripId,
		CreatedAt:          group.CreatedAt,
	}
}

func containsFold(options []string, value string) bool {
	for _, opt := range options {
		if strings.EqualFold(strings.TrimSpace(opt), strings.TrimSpace(value)) {
			return true
		}
	}
	return false
}
