package implementation

import (
	"context"

	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/mapper"
	"travelorbit-be/internal/model"
	"travelorbit-be/internal/repository/contract"
	"travelorbit-be/internal/repository/specification"

	"gorm.io/gorm"
)

type TripFeedbackRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TripMapper
}

func NewTripFeedbackRepository(db *gorm.DB) contract.TripFeedbackRepository {
	return &TripFeedbackRepositoryImpl{
		db:     db,
		mapper: mapper.NewTripMapper(),
	}
}

func (r *TripFeedbackRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TripFeedbackRepositoryImpl) Create(ctx context.Context, feedback *entity.TripFeedback) error {
	m := r.mapper.FeedbackToModel(feedback)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*feedback = *r.mapper.FeedbackToEntity(m)
	return nil
}

func (r *TripFeedbackRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TripFeedback, error) {
	var models []*model.TripFeedback
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.FeedbacksToEntities(models), nil
}

func (r *TripFeedbackRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.TripFeedback{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
