package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"sermon-advisor-be/internal/entity"
	"sermon-advisor-be/internal/repository/contract"
	"sermon-advisor-be/internal/repository/specification"
	"sermon-advisor-be/internal/repository/unitofwork"
	"sermon-advisor-be/pkg/llm"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// shared test doubles
// ---------------------------------------------------------------------------

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

// fakeLLM replays canned responses; empty response string means error.
type fakeLLM struct {
	responses []string
	calls     atomic.Int32
}

func (f *fakeLLM) next() (string, error) {
	i := int(f.calls.Add(1)) - 1
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	if i < 0 || f.responses[i] == "" {
		return "", errors.New("llm unavailable")
	}
	return f.responses[i], nil
}

func (f *fakeLLM) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	return f.next()
}

func (f *fakeLLM) Generate(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	return f.next()
}

type fakeEmbedder struct {
	vector []float32
	err    error
	calls  atomic.Int32
}

func (f *fakeEmbedder) Generate(context.Context, string) ([]float32, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

// fakeTeachingRepo serves a fixed corpus keyed by identity.
type fakeTeachingRepo struct {
	teachings map[uuid.UUID]*entity.Teaching
}

func (f *fakeTeachingRepo) Create(context.Context, *entity.Teaching) error { return nil }
func (f *fakeTeachingRepo) Update(context.Context, *entity.Teaching) error { return nil }
func (f *fakeTeachingRepo) Delete(context.Context, uuid.UUID) error        { return nil }
func (f *fakeTeachingRepo) FindOne(context.Context, ...specification.Specification) (*entity.Teaching, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeTeachingRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Teaching, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeTeachingRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Teaching, error) {
	out := make([]*entity.Teaching, 0, len(ids))
	for _, id := range ids {
		if t, ok := f.teachings[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}
func (f *fakeTeachingRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(f.teachings)), nil
}

// fakeEmbeddingRepo returns a fixed similarity-ordered result set.
type fakeEmbeddingRepo struct {
	scored      []*contract.ScoredTeachingEmbedding
	searchErr   error
	searchCalls atomic.Int32
}

func (f *fakeEmbeddingRepo) Create(context.Context, *entity.TeachingEmbedding) error { return nil }
func (f *fakeEmbeddingRepo) Upsert(context.Context, *entity.TeachingEmbedding) error { return nil }
func (f *fakeEmbeddingRepo) Delete(context.Context, uuid.UUID) error                 { return nil }
func (f *fakeEmbeddingRepo) DeleteByTeachingId(context.Context, uuid.UUID) error     { return nil }
func (f *fakeEmbeddingRepo) FindOne(context.Context, ...specification.Specification) (*entity.TeachingEmbedding, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeEmbeddingRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(f.scored)), nil
}
func (f *fakeEmbeddingRepo) SearchSimilarWithScore(_ context.Context, _ []float32, limit int) ([]*contract.ScoredTeachingEmbedding, error) {
	f.searchCalls.Add(1)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if limit > len(f.scored) {
		limit = len(f.scored)
	}
	return f.scored[:limit], nil
}

type fakeUnitOfWork struct {
	teachings  *fakeTeachingRepo
	embeddings *fakeEmbeddingRepo
}

func (f *fakeUnitOfWork) Begin(context.Context) error { return nil }
func (f *fakeUnitOfWork) Commit() error               { return nil }
func (f *fakeUnitOfWork) Rollback() error             { return nil }
func (f *fakeUnitOfWork) TeachingRepository() contract.TeachingRepository {
	return f.teachings
}
func (f *fakeUnitOfWork) TeachingEmbeddingRepository() contract.TeachingEmbeddingRepository {
	return f.embeddings
}

type fakeRepoFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeRepoFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return f.uow
}

// corpus builds n teachings plus a similarity-descending scored result list.
func corpus(n int, topSimilarity float64) (*fakeTeachingRepo, *fakeEmbeddingRepo, []uuid.UUID) {
	teachings := make(map[uuid.UUID]*entity.Teaching, n)
	scored := make([]*contract.ScoredTeachingEmbedding, 0, n)
	ids := make([]uuid.UUID, 0, n)

	for i := 0; i < n; i++ {
		id := uuid.New()
		ids = append(ids, id)
		teachings[id] = &entity.Teaching{
			Id:          id,
			Title:       fmt.Sprintf("Teaching %d", i+1),
			Description: fmt.Sprintf("Description of teaching %d", i+1),
		}
		scored = append(scored, &contract.ScoredTeachingEmbedding{
			Embedding:  &entity.TeachingEmbedding{Id: uuid.New(), TeachingId: id},
			Similarity: topSimilarity - float64(i)*0.05,
		})
	}

	return &fakeTeachingRepo{teachings: teachings}, &fakeEmbeddingRepo{scored: scored}, ids
}
