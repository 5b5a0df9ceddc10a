package implementation

import (
	"context"

	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/mapper"
	"travelorbit-be/internal/model"
	"travelorbit-be/internal/repository/contract"
	"travelorbit-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TripMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TripMapper
}

func NewTripMessageRepository(db *gorm.DB) contract.TripMessageRepository {
	return &TripMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewTripMapper(),
	}
}

func (r *TripMessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TripMessageRepositoryImpl) Create(ctx context.Context, message *entity.TripMessage) error {
	m := r.mapper.MessageToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.MessageToEntity(m)
	return nil
}

func (r *TripMessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TripMessage, error) {
	var models []*model.TripMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.MessagesToEntities(models), nil
}

func (r *TripMessageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.TripMessage{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *TripMessageRepositoryImpl) DeleteByTripId(ctx context.Context, tripId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("trip_id = ?", tripId).Delete(&model.TripMessage{}).Error
}
