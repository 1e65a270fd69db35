package events

import (
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the advisor backend.
const (
	TypeTeachingCreated       = "TEACHING_CREATED"
	TypeTeachingThemesUpdated = "TEACHING_THEMES_UPDATED"
	TypeTeachingDeleted       = "TEACHING_DELETED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "TEACHING_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation used across the codebase.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewTeachingCreated builds the event published after a teaching is ingested.
func NewTeachingCreated(teachingId uuid.UUID, title, channel string) BaseEvent {
	return BaseEvent{
		Type: TypeTeachingCreated,
		Data: map[string]interface{}{
			"teaching_id": teachingId,
			"title":       title,
			"channel":     channel,
		},
		OccurredAt: time.Now(),
	}
}
