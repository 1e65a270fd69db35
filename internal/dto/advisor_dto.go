package dto

import (
	"time"

	"github.com/google/uuid"
)

type AdvisorChatRequest struct {
	UserId  string `json:"user_id" validate:"required,max=128"`
	Message string `json:"message" validate:"required,max=500"`
}

type RecommendedTeachingDTO struct {
	Id          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Channel     string     `json:"channel,omitempty"`
	MessageLink string     `json:"message_link,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Themes      []string   `json:"themes,omitempty"`
	Relevance   float64    `json:"relevance,omitempty"`
	Rationale   string     `json:"rationale,omitempty"`
}

type AdvisorChatResponse struct {
	Status          string                   `json:"status"` // results | degraded | nothing_found | need_clarification | no_more_results | no_session | internal_error
	Reply           string                   `json:"reply"`
	Recommendations []RecommendedTeachingDTO `json:"recommendations,omitempty"`
	HasMore         bool                     `json:"has_more"`
}
