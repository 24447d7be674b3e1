package models

import (
	"time"

	"github.com/google/uuid"
)

// RegistrationStatus is the lifecycle state of a registration.
type RegistrationStatus string

const (
	RegistrationPending    RegistrationStatus = "PENDING"
	RegistrationConfirmed  RegistrationStatus = "CONFIRMED"
	RegistrationCancelled  RegistrationStatus = "CANCELLED"
	RegistrationWaitlisted RegistrationStatus = "WAITLISTED"
)

// Registration is an attendee registration for an event (unique per event+user).
type Registration struct {
	ID           uuid.UUID          `json:"id"`
	EventID      uuid.UUID          `json:"event_id"`
	UserID       uuid.UUID          `json:"user_id"`
	Status       RegistrationStatus `json:"status"`
	RegisteredAt time.Time          `json:"registered_at"`
	Attendance   []Attendance       `json:"attendance,omitempty"`
}

// Attendance is one check-in record for a registration. SessionID is nil for
// the overall event check-in; SessionName is joined in by the store when a
// session is referenced.
type Attendance struct {
	ID             uuid.UUID  `json:"id"`
	RegistrationID uuid.UUID  `json:"registration_id"`
	SessionID      *uuid.UUID `json:"session_id,omitempty"`
	SessionName    string     `json:"session_name,omitempty"`
	CheckedInAt    time.Time  `json:"checked_in_at"`
	Method         string     `json:"method"`
}
