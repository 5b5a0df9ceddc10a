package contract

import (
	"context"

	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DealRepository interface {
	Create(ctx context.Context, deal *entity.Deal) error
	Update(ctx context.Context, deal *entity.Deal) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Deal, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Deal, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Deactivate(ctx context.Context, id uuid.UUID) error

	// SearchSimilar ranks active deals by cosine distance between their
	// interest embedding and the supplied query vector.
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*entity.Deal, error)
}
