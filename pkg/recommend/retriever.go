package recommend

import (
	"context"

	"sermon-advisor-be/internal/entity"
	"sermon-advisor-be/internal/pkg/logger"
	"sermon-advisor-be/internal/repository/unitofwork"
	"sermon-advisor-be/pkg/embedding"

	"github.com/google/uuid"
)

// Retriever runs semantic candidate retrieval against the vector index.
// It always over-fetches (TopK, independent of the requested count) so the
// ranker has a real choice, and it degrades to an empty candidate list rather
// than surfacing index/embedding failures.
type Retriever struct {
	embeddingProvider embedding.EmbeddingProvider
	uowFactory        unitofwork.RepositoryFactory
	logger            logger.ILogger
	topK              int
}

func NewRetriever(
	embeddingProvider embedding.EmbeddingProvider,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
	topK int,
) *Retriever {
	if topK <= 0 {
		topK = 20
	}
	return &Retriever{
		embeddingProvider: embeddingProvider,
		uowFactory:        uowFactory,
		logger:            log,
		topK:              topK,
	}
}

// Retrieve returns candidates ordered by descending similarity. Ties keep the
// index-returned order. An unreachable index or failed embedding yields an
// empty slice, never an error.
func (r *Retriever) Retrieve(ctx context.Context, topic string) []Candidate {
	vector, err := r.embeddingProvider.Generate(ctx, topic)
	if err != nil {
		r.logger.Warn("retriever", "embedding generation failed, returning no candidates", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)

	scored, err := uow.TeachingEmbeddingRepository().SearchSimilarWithScore(ctx, vector, r.topK)
	if err != nil {
		r.logger.Warn("retriever", "vector search failed, returning no candidates", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	if len(scored) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(scored))
	similarityById := make(map[uuid.UUID]float64, len(scored))
	for i, s := range scored {
		ids[i] = s.Embedding.TeachingId
		similarityById[s.Embedding.TeachingId] = s.Similarity
	}

	teachings, err := uow.TeachingRepository().FindByIDs(ctx, ids)
	if err != nil {
		r.logger.Warn("retriever", "candidate hydration failed, returning no candidates", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	candidates := make([]Candidate, 0, len(teachings))
	for _, t := range teachings {
		candidates = append(candidates, Candidate{
			Teaching:   t,
			Similarity: similarityById[t.Id],
		})
	}

	r.logger.Debug("retriever", "retrieved candidates", map[string]interface{}{
		"topic": topic,
		"count": len(candidates),
	})
	return candidates
}

// hydrate resolves an ordered identity list back to full teaching records,
// preserving order and silently skipping identities that no longer resolve.
func hydrate(ctx context.Context, uowFactory unitofwork.RepositoryFactory, ids []uuid.UUID) ([]*entity.Teaching, error) {
	uow := uowFactory.NewUnitOfWork(ctx)
	return uow.TeachingRepository().FindByIDs(ctx, ids)
}
