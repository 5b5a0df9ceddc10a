package implementation

import (
	"context"
	"errors"

	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/mapper"
	"travelorbit-be/internal/model"
	"travelorbit-be/internal/repository/contract"
	"travelorbit-be/internal/repository/specification"

	"gorm.io/gorm"
)

type GroupMemberRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GroupMapper
}

func NewGroupMemberRepository(db *gorm.DB) contract.GroupMemberRepository {
	return &GroupMemberRepositoryImpl{
		db:     db,
		mapper: mapper.NewGroupMapper(),
	}
}

func (r *GroupMemberRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GroupMemberRepositoryImpl) Create(ctx context.Context, member *entity.GroupMember) error {
	m := r.mapper.MemberToModel(member)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*member = *r.mapper.MemberToEntity(m)
	return nil
}

func (r *GroupMemberRepositoryImpl) Update(ctx context.Context, member *entity.GroupMember) error {
	m := r.mapper.MemberToModel(member)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*member = *r.mapper.MemberToEntity(m)
	return nil
}

func (r *GroupMemberRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GroupMember, error) {
	var m model.GroupMember
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.MemberToEntity(&m), nil
}

func (r *GroupMemberRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GroupMember, error) {
	var models []*model.GroupMember
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.MembersToEntities(models), nil
}

func (r *GroupMemberRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.GroupMember{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
