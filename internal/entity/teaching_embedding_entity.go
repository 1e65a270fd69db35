package entity

import (
	"time"

	"github.com/google/uuid"
)

// TeachingEmbedding is the vector-index row for a teaching. Document holds the
// text that was embedded (title + description + themes) so re-embedding after a
// model change does not need a join.
type TeachingEmbedding struct {
	Id             uuid.UUID
	Document       string
	EmbeddingValue []float32
	TeachingId     uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
