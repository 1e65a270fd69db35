package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByChannel filters teachings by their source channel label
type ByChannel struct {
	Channel string
}

func (s ByChannel) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("channel = ?", s.Channel)
}

// ByMessageLink filters by the unique external link
type ByMessageLink struct {
	MessageLink string
}

func (s ByMessageLink) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("message_link = ?", s.MessageLink)
}

// ByTeachingID filters embedding rows by their owning teaching
type ByTeachingID struct {
	TeachingID uuid.UUID
}

func (s ByTeachingID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("teaching_id = ?", s.TeachingID)
}
