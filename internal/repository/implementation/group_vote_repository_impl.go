package implementation

import (
	"context"
	"errors"

	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/mapper"
	"travelorbit-be/internal/model"
	"travelorbit-be/internal/repository/contract"
	"travelorbit-be/internal/repository/specification"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type GroupVoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GroupMapper
}

func NewGroupVoteRepository(db *gorm.DB) contract.GroupVoteRepository {
	return &GroupVoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewGroupMapper(),
	}
}

func (r *GroupVoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GroupVoteRepositoryImpl) Create(ctx context.Context, vote *entity.GroupVote) error {
	m := r.mapper.VoteToModel(vote)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return contract.ErrDuplicateVote
		}
		return err
	}
	*vote = *r.mapper.VoteToEntity(m)
	return nil
}

func (r *GroupVoteRepositoryImpl) Update(ctx context.Context, vote *entity.GroupVote) error {
	m := r.mapper.VoteToModel(vote)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*vote = *r.mapper.VoteToEntity(m)
	return nil
}

func (r *GroupVoteRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GroupVote, error) {
	var m model.GroupVote
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.VoteToEntity(&m), nil
}

func (r *GroupVoteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GroupVote, error) {
	var models []*model.GroupVote
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.VotesToEntities(models), nil
}

func (r *GroupVoteRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.GroupVote{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
