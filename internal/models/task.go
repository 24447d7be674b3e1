package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the workflow state of a workspace task.
type TaskStatus string

const (
	TaskNotStarted     TaskStatus = "NOT_STARTED"
	TaskInProgress     TaskStatus = "IN_PROGRESS"
	TaskReviewRequired TaskStatus = "REVIEW_REQUIRED"
	TaskCompleted      TaskStatus = "COMPLETED"
	TaskBlocked        TaskStatus = "BLOCKED"
)

// TaskPriority is the urgency tier of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
	PriorityUrgent TaskPriority = "URGENT"
)

// WorkspaceTask is a unit of work tracked inside a workspace.
type WorkspaceTask struct {
	ID          uuid.UUID    `json:"id"`
	WorkspaceID uuid.UUID    `json:"workspace_id"`
	Title       string       `json:"title"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	Category    string       `json:"category"`
	AssigneeID  *uuid.UUID   `json:"assignee_id,omitempty"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

// IsOverdue reports whether the task has a due date strictly before now and
// is not completed. A completed task is never overdue.
func (t *WorkspaceTask) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != TaskCompleted
}

// IsActive reports whether the task is in a state that consumes assignee
// capacity (not completed and not blocked-out of the board).
func (t *WorkspaceTask) IsActive() bool {
	switch t.Status {
	case TaskInProgress, TaskNotStarted, TaskReviewRequired:
		return true
	}
	return false
}
