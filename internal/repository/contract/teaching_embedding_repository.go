package contract

import (
	"context"

	"sermon-advisor-be/internal/entity"
	"sermon-advisor-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredTeachingEmbedding wraps an embedding row with its similarity score
type ScoredTeachingEmbedding struct {
	Embedding  *entity.TeachingEmbedding
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type TeachingEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.TeachingEmbedding) error
	// Upsert replaces the embedding row for a teaching, keeping one vector per
	// teaching when it gets re-embedded after a theme relabel.
	Upsert(ctx context.Context, embedding *entity.TeachingEmbedding) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByTeachingId(ctx context.Context, teachingId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TeachingEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore returns the limit nearest embeddings with cosine
	// similarity scores, ordered by similarity descending.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*ScoredTeachingEmbedding, error)
}
