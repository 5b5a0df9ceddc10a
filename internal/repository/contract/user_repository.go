package contract

import (
	"context"

	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/repository/specification"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
}

type OtpRepository interface {
	Create(ctx context.Context, code *entity.OtpCode) error
	Update(ctx context.Context, code *entity.OtpCode) error
	FindLatest(ctx context.Context, specs ...specification.Specification) (*entity.OtpCode, error)
	DeleteExpired(ctx context.Context) error
}
