package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Teaching struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string    `gorm:"not null;index"`
	Description string    `gorm:"type:text;not null"`
	Channel     string    `gorm:"not null;index"`
	MessageLink string    `gorm:"uniqueIndex;not null"`
	ImageURL    string
	Date        *time.Time     `gorm:"index"`
	Themes      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Teaching) TableName() string {
	return "teachings"
}
