package models

import (
	"time"

	"github.com/google/uuid"
)

// Workspace is a team working area attached to an event. EventName and event
// dates are joined in by the store for report naming.
type Workspace struct {
	ID            uuid.UUID  `json:"id"`
	EventID       uuid.UUID  `json:"event_id"`
	Name          string     `json:"name"`
	EventName     string     `json:"event_name"`
	EventStartsAt time.Time  `json:"event_starts_at"`
	EventEndsAt   *time.Time `json:"event_ends_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
