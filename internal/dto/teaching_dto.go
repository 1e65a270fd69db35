package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTeachingRequest struct {
	Title       string     `json:"title" validate:"required,max=300"`
	Description string     `json:"description" validate:"required"`
	Channel     string     `json:"channel,omitempty"`
	MessageLink string     `json:"message_link" validate:"required,url"`
	ImageURL    string     `json:"image_url,omitempty" validate:"omitempty,url"`
	Date        *time.Time `json:"date,omitempty"`
	Themes      []string   `json:"themes,omitempty"`
}

type UpdateTeachingThemesRequest struct {
	Themes []string `json:"themes" validate:"required,min=1"`
}

type TeachingResponse struct {
	Id          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Channel     string     `json:"channel,omitempty"`
	MessageLink string     `json:"message_link"`
	ImageURL    string     `json:"image_url,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Themes      []string   `json:"themes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// PublishEmbedTeachingMessage is the payload queued when a teaching needs its
// vector (re)built.
type PublishEmbedTeachingMessage struct {
	TeachingId uuid.UUID `json:"teaching_id"`
}
