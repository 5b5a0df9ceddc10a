package mapper

import (
	"time"

	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/model"

	"gorm.io/datatypes"
)

type GroupMapper struct{}

func NewGroupMapper() *GroupMapper {
	return &GroupMapper{}
}

func (m *GroupMapper) GroupToEntity(g *model.TravelGroup) *entity.TravelGroup {
	if g == nil {
		return nil
	}

	var updatedAt *time.Time
	if !g.UpdatedAt.IsZero() {
		at := g.UpdatedAt
		updatedAt = &at
	}

	return &entity.TravelGroup{
		Id:                 g.Id,
		Code:               g.Code,
		LeaderUserId:       g.LeaderUserId,
		LeaderEmail:        g.LeaderEmail,
		Name:               g.Name,
		ExpectedCount:      g.ExpectedCount,
		DestinationOptions: g.DestinationOptions,
		ConvertedTripId:    g.ConvertedTripId,
		CreatedAt:          g.CreatedAt,
		UpdatedAt:          updatedAt,
	}
}

func (m *GroupMapper) GroupToModel(g *entity.TravelGroup) *model.TravelGroup {
	if g == nil {
		return nil
	}

	var updatedAt time.Time
	if g.UpdatedAt != nil {
		updatedAt = *g.UpdatedAt
	}

	return &model.TravelGroup{
		Id:                 g.Id,
		Code:               g.Code,
		LeaderUserId:       g.LeaderUserId,
		LeaderEmail:        g.LeaderEmail,
		Name:               g.Name,
		ExpectedCount:      g.ExpectedCount,
		DestinationOptions: datatypes.JSONSlice[string](g.DestinationOptions),
		ConvertedTripId:    g.ConvertedTripId,
		CreatedAt:          g.CreatedAt,
		UpdatedAt:          updatedAt,
	}
}

func (m *GroupMapper) MemberToEntity(gm *model.GroupMember) *entity.GroupMember {
	if gm == nil {
		return nil
	}
	return &entity.GroupMember{
		Id:        gm.Id,
		GroupId:   gm.GroupId,
		Email:     gm.Email,
		Joined:    gm.Joined,
		CreatedAt: gm.CreatedAt,
	}
}

func (m *GroupMapper) MemberToModel(gm *entity.GroupMember) *model.GroupMember {
	if gm == nil {
		return nil
	}
	return &model.GroupMember{
		Id:        gm.Id,
		GroupId:   gm.GroupId,
		Email:     gm.Email,
		Joined:    gm.Joined,
		CreatedAt: gm.CreatedAt,
	}
}

func (m *GroupMapper) MembersToEntities(members []*model.GroupMember) []*entity.GroupMember {
	entities := make([]*entity.GroupMember, len(members))
	for i, gm := range members {
		entities[i] = m.MemberToEntity(gm)
	}
	return entities
}

func (m *GroupMapper) VoteToEntity(v *model.GroupVote) *entity.GroupVote {
	if v == nil {
		return nil
	}

	var updatedAt *time.Time
	if !v.UpdatedAt.IsZero() {
		at := v.UpdatedAt
		updatedAt = &at
	}

	var budget *entity.BudgetLevel
	if v.BudgetLevel != nil {
		b := entity.BudgetLevel(*v.BudgetLevel)
		budget = &b
	}

	return &entity.GroupVote{
		Id:          v.Id,
		GroupId:     v.GroupId,
		VoterEmail:  v.VoterEmail,
		VoterName:   v.VoterName,
		Destination: v.Destination,
		BudgetLevel: budget,
		StartDate:   v.StartDate,
		EndDate:     v.EndDate,
		Activities:  v.Activities,
		Phone:       v.Phone,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *GroupMapper) VoteToModel(v *entity.GroupVote) *model.GroupVote {
	if v == nil {
		return nil
	}

	var updatedAt time.Time
	if v.UpdatedAt != nil {
		updatedAt = *v.UpdatedAt
	}

	var budget *string
	if v.BudgetLevel != nil {
		s := string(*v.BudgetLevel)
		budget = &s
	}

	return &model.GroupVote{
		Id:          v.Id,
		GroupId:     v.GroupId,
		VoterEmail:  v.VoterEmail,
		VoterName:   v.VoterName,
		Destination: v.Destination,
		BudgetLevel: budget,
		StartDate:   v.StartDate,
		EndDate:     v.EndDate,
		Activities:  datatypes.JSONSlice[string](v.Activities),
		Phone:       v.Phone,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *GroupMapper) VotesToEntities(votes []*model.GroupVote) []*entity.GroupVote {
	entities := make([]*entity.GroupVote, len(votes))
	for i, v := range votes {
		entities[i] = m.VoteToEntity(v)
	}
	return entities
}
