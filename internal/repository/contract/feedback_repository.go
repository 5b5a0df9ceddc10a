package contract

import (
	"context"

	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/repository/specification"
)

type TripFeedbackRepository interface {
	Create(ctx context.Context, feedback *entity.TripFeedback) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TripFeedback, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
