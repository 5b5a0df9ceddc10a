package contract

import (
	"context"

	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TripMessageRepository interface {
	Create(ctx context.Context, message *entity.TripMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TripMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteByTripId(ctx context.Context, tripId uuid.UUID) error
}
