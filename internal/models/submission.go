package models

import (
	"time"

	"github.com/google/uuid"
)

// Submission is a judged entry for an event.
type Submission struct {
	ID          uuid.UUID `json:"id"`
	EventID     uuid.UUID `json:"event_id"`
	Title       string    `json:"title"`
	TeamName    string    `json:"team_name,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
	Scores      []Score   `json:"scores,omitempty"`
}

// Score is one judge's scoring of a submission: a map of criterion id to the
// raw numeric score given for that criterion.
type Score struct {
	ID           uuid.UUID          `json:"id"`
	SubmissionID uuid.UUID          `json:"submission_id"`
	JudgeID      uuid.UUID          `json:"judge_id"`
	JudgeName    string             `json:"judge_name"`
	Criteria     map[string]float64 `json:"criteria"`
	SubmittedAt  time.Time          `json:"submitted_at"`
}
