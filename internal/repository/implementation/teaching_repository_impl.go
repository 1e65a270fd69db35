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
	"gorm.io/gorm"
)

type TeachingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TeachingMapper
}

func NewTeachingRepository(db *gorm.DB) contract.TeachingRepository {
	return &TeachingRepositoryImpl{
		db:     db,
		mapper: mapper.NewTeachingMapper(),
	}
}

func (r *TeachingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TeachingRepositoryImpl) Create(ctx context.Context, teaching *entity.Teaching) error {
	m := r.mapper.ToModel(teaching)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*teaching = *r.mapper.ToEntity(m)
	return nil
}

func (r *TeachingRepositoryImpl) Update(ctx context.Context, teaching *entity.Teaching) error {
	m := r.mapper.ToModel(teaching)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*teaching = *r.mapper.ToEntity(m)
	return nil
}

func (r *TeachingRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Teaching{}, id).Error
}

func (r *TeachingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Teaching, error) {
	var m model.Teaching
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TeachingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Teaching, error) {
	var models []*model.Teaching
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *TeachingRepositoryImpl) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Teaching, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var models []*model.Teaching
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, err
	}

	// Re-order to match the caller's id order
	byId := make(map[uuid.UUID]*model.Teaching, len(models))
	for _, m := range models {
		byId[m.Id] = m
	}

	ordered := make([]*entity.Teaching, 0, len(ids))
	for _, id := range ids {
		if m, ok := byId[id]; ok {
			ordered = append(ordered, r.mapper.ToEntity(m))
		}
	}
	return ordered, nil
}

func (r *TeachingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Teaching{}).Count(&count).Error
	return count, err
}
