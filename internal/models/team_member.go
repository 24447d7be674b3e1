package models

import (
	"time"

	"github.com/google/uuid"
)

// MemberStatus is the membership state of a team member.
type MemberStatus string

const (
	MemberActive   MemberStatus = "ACTIVE"
	MemberInvited  MemberStatus = "INVITED"
	MemberInactive MemberStatus = "INACTIVE"
)

// TeamMember links a user to a workspace with a role. DisplayName is joined
// in by the store.
type TeamMember struct {
	ID          uuid.UUID    `json:"id"`
	WorkspaceID uuid.UUID    `json:"workspace_id"`
	UserID      uuid.UUID    `json:"user_id"`
	DisplayName string       `json:"display_name"`
	Role        string       `json:"role"`
	Status      MemberStatus `json:"status"`
	JoinedAt    time.Time    `json:"joined_at"`
}
