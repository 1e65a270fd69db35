package entity

import (
	"time"

	"github.com/google/uuid"
)

// Teaching is one recommendable recorded teaching. Rows are immutable after
// ingestion except for theme re-labeling.
type Teaching struct {
	Id          uuid.UUID
	Title       string
	Description string
	Channel     string
	MessageLink string
	ImageURL    string
	Date        *time.Time
	Themes      []string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
