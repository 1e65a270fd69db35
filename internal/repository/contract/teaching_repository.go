package contract

import (
	"context"

	"sermon-advisor-be/internal/entity"
	"sermon-advisor-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TeachingRepository interface {
	Create(ctx context.Context, teaching *entity.Teaching) error
	Update(ctx context.Context, teaching *entity.Teaching) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Teaching, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Teaching, error)
	// FindByIDs resolves identities returned by the vector index. Result order
	// follows the input order so ranking survives hydration.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Teaching, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
