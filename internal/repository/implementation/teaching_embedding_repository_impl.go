package implementation

import (
	"context"
	"errors"

	"sermon-advisor-be/internal/entity"
	"sermon-advisor-be/internal/mapper"
	"sermon-advisor-be/internal/model"
	"sermon-advisor-be/internal/repository/contract"
	"sermon-advisor-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TeachingEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TeachingEmbeddingMapper
}

func NewTeachingEmbeddingRepository(db *gorm.DB) contract.TeachingEmbeddingRepository {
	return &TeachingEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewTeachingEmbeddingMapper(),
	}
}

func (r *TeachingEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TeachingEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.TeachingEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *TeachingEmbeddingRepositoryImpl) Upsert(ctx context.Context, embedding *entity.TeachingEmbedding) error {
	m := r.mapper.ToModel(embedding)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "teaching_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"document", "embedding_value", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *TeachingEmbeddingRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.TeachingEmbedding{}, id).Error
}

func (r *TeachingEmbeddingRepositoryImpl) DeleteByTeachingId(ctx context.Context, teachingId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("teaching_id = ?", teachingId).Delete(&model.TeachingEmbedding{}).Error
}

func (r *TeachingEmbeddingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TeachingEmbedding, error) {
	var m model.TeachingEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TeachingEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.TeachingEmbedding{}).Count(&count).Error
	return count, err
}

// SearchSimilarWithScore returns the limit nearest embeddings with similarity scores.
// Cosine distance in pgvector is 1 - cosine_similarity, so the select inverts it.
func (r *TeachingEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*contract.ScoredTeachingEmbedding, error) {
	if limit <= 0 {
		limit = 20
	}

	type result struct {
		model.TeachingEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("teaching_embeddings").
		Select("teaching_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Joins("JOIN teachings ON teachings.id = teaching_embeddings.teaching_id").
		Where("teaching_embeddings.deleted_at IS NULL").
		Where("teachings.deleted_at IS NULL").
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredTeachingEmbedding, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredTeachingEmbedding{
			Embedding:  r.mapper.ToEntity(&res.TeachingEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
