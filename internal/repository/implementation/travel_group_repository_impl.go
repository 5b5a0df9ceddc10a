package implementation

import (
	"context"
	"errors"

	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/mapper"
	"travelorbit-be/internal/model"
	"travelorbit-be/internal/repository/contract"
	"travelorbit-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type TravelGroupRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GroupMapper
}

func NewTravelGroupRepository(db *gorm.DB) contract.TravelGroupRepository {
	return &TravelGroupRepositoryImpl{
		db:     db,
		mapper: mapper.NewGroupMapper(),
	}
}

func (r *TravelGroupRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TravelGroupRepositoryImpl) Create(ctx context.Context, group *entity.TravelGroup) error {
	m := r.mapper.GroupToModel(group)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return contract.ErrDuplicateGroupCode
		}
		return err
	}
	*group = *r.mapper.GroupToEntity(m)
	return nil
}

func (r *TravelGroupRepositoryImpl) Update(ctx context.Context, group *entity.TravelGroup) error {
	m := r.mapper.GroupToModel(group)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*group = *r.mapper.GroupToEntity(m)
	return nil
}

func (r *TravelGroupRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TravelGroup, error) {
	var m model.TravelGroup
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.GroupToEntity(&m), nil
}

func (r *TravelGroupRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TravelGroup, error) {
	var models []*model.TravelGroup
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.TravelGroup, len(models))
	for i, m := range models {
		entities[i] = r.mapper.GroupToEntity(m)
	}
	return entities, nil
}

func (r *TravelGroupRepositoryImpl) MarkConverted(ctx context.Context, groupId uuid.UUID, tripId uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.TravelGroup{}).
		Where("id = ? AND converted_trip_id IS NULL", groupId).
		Update("converted_trip_id", tripId)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
