package contract

import (
	"context"

	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TripRepository interface {
	Create(ctx context.Context, trip *entity.Trip) error
	Update(ctx context.Context, trip *entity.Trip) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Trip, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Trip, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
