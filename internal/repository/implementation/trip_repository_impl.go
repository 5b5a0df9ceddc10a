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
	"gorm.io/gorm"
)

type TripRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TripMapper
}

func NewTripRepository(db *gorm.DB) contract.TripRepository {
	return &TripRepositoryImpl{
		db:     db,
		mapper: mapper.NewTripMapper(),
	}
}

func (r *TripRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TripRepositoryImpl) Create(ctx context.Context, trip *entity.Trip) error {
	m := r.mapper.ToModel(trip)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*trip = *r.mapper.ToEntity(m)
	return nil
}

func (r *TripRepositoryImpl) Update(ctx context.Context, trip *entity.Trip) error {
	m := r.mapper.ToModel(trip)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*trip = *r.mapper.ToEntity(m)
	return nil
}

func (r *TripRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Trip{}, id).Error
}

func (r *TripRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Trip, error) {
	var m model.Trip
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TripRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Trip, error) {
	var models []*model.Trip
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *TripRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Trip{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
