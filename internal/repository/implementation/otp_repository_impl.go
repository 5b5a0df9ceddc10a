package implementation

import (
	"context"
	"errors"
	"time"

	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/mapper"
	"travelorbit-be/internal/model"
	"travelorbit-be/internal/repository/contract"
	"travelorbit-be/internal/repository/specification"

	"gorm.io/gorm"
)

type OtpRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewOtpRepository(db *gorm.DB) contract.OtpRepository {
	return &OtpRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *OtpRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *OtpRepositoryImpl) Create(ctx context.Context, code *entity.OtpCode) error {
	m := r.mapper.OtpToModel(code)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*code = *r.mapper.OtpToEntity(m)
	return nil
}

func (r *OtpRepositoryImpl) Update(ctx context.Context, code *entity.OtpCode) error {
	m := r.mapper.OtpToModel(code)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*code = *r.mapper.OtpToEntity(m)
	return nil
}

// FindLatest returns the newest matching code, or nil when none exists.
func (r *OtpRepositoryImpl) FindLatest(ctx context.Context, specs ...specification.Specification) (*entity.OtpCode, error) {
	var m model.OtpCode
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Order("created_at DESC").First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.OtpToEntity(&m), nil
}

func (r *OtpRepositoryImpl) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&model.OtpCode{}).Error
}
