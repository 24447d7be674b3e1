package eventanalytics

import (
	"time"

	"github.com/google/uuid"
)

// RegistrationPoint is one calendar day of registration activity.
type RegistrationPoint struct {
	Date            string `json:"date"` // YYYY-MM-DD (UTC)
	Count           int    `json:"count"`
	CumulativeCount int    `json:"cumulative_count"`
}

// SessionCheckInRate is the check-in summary for one session. SessionID is
// nil for the overall-event row. CheckedIn counts distinct registrations, not
// raw attendance rows.
type SessionCheckInRate struct {
	SessionID          *uuid.UUID `json:"session_id"`
	SessionName        string     `json:"session_name"`
	TotalRegistrations int        `json:"total_registrations"`
	CheckedIn          int        `json:"checked_in"`
	CheckInRate        float64    `json:"check_in_rate"`
}

// ScoreBucket is one fixed range of the final-score distribution.
type ScoreBucket struct {
	Range      string  `json:"range"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// JudgeParticipation summarizes one judge's scoring activity. Judges who
// scored nothing do not appear.
type JudgeParticipation struct {
	JudgeID             uuid.UUID `json:"judge_id"`
	JudgeName           string    `json:"judge_name"`
	AssignedSubmissions int       `json:"assigned_submissions"`
	ScoredSubmissions   int       `json:"scored_submissions"`
	CompletionRate      float64   `json:"completion_rate"`
}

// Summary is the headline block of the comprehensive report.
type Summary struct {
	TotalRegistrations     int     `json:"total_registrations"`
	ConfirmedRegistrations int     `json:"confirmed_registrations"`
	AttendedRegistrations  int     `json:"attended_registrations"`
	CheckInRate            float64 `json:"check_in_rate"`
	TotalSubmissions       int     `json:"total_submissions"`
	ScoredSubmissions      int     `json:"scored_submissions"`
	AverageScore           float64 `json:"average_score"`
}

// Report is the combined analytics report for one event.
type Report struct {
	EventID               uuid.UUID            `json:"event_id"`
	EventName             string               `json:"event_name"`
	GeneratedAt           time.Time            `json:"generated_at"`
	RegistrationsOverTime []RegistrationPoint  `json:"registrations_over_time"`
	SessionCheckInRates   []SessionCheckInRate `json:"session_check_in_rates"`
	ScoreDistributions    []ScoreBucket        `json:"score_distributions"`
	JudgeParticipation    []JudgeParticipation `json:"judge_participation"`
	Summary               Summary              `json:"summary"`
}
