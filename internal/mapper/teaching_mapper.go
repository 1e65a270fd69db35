package mapper

import (
	"encoding/json"
	"time"

	"sermon-advisor-be/internal/entity"
	"sermon-advisor-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TeachingMapper struct{}

func NewTeachingMapper() *TeachingMapper {
	return &TeachingMapper{}
}

func (m *TeachingMapper) ToEntity(e *model.Teaching) *entity.Teaching {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	var themes []string
	if len(e.Themes) > 0 {
		// a malformed themes column degrades to no labels, not a failure
		_ = json.Unmarshal(e.Themes, &themes)
	}

	return &entity.Teaching{
		Id:          e.Id,
		Title:       e.Title,
		Description: e.Description,
		Channel:     e.Channel,
		MessageLink: e.MessageLink,
		ImageURL:    e.ImageURL,
		Date:        e.Date,
		Themes:      themes,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   e.DeletedAt.Valid,
	}
}

func (m *TeachingMapper) ToModel(e *entity.Teaching) *model.Teaching {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	var themes datatypes.JSON
	if len(e.Themes) > 0 {
		raw, err := json.Marshal(e.Themes)
		if err == nil {
			themes = datatypes.JSON(raw)
		}
	}

	return &model.Teaching{
		Id:          e.Id,
		Title:       e.Title,
		Description: e.Description,
		Channel:     e.Channel,
		MessageLink: e.MessageLink,
		ImageURL:    e.ImageURL,
		Date:        e.Date,
		Themes:      themes,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *TeachingMapper) ToEntities(teachings []*model.Teaching) []*entity.Teaching {
	entities := make([]*entity.Teaching, len(teachings))
	for i, t := range teachings {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
