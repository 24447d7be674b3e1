package workspaceanalytics

import (
	"time"

	"github.com/google/uuid"

	"github.com/eventlens/backend/internal/models"
)

// TaskStats breaks the workspace's tasks down by status. Overdue counts tasks
// due strictly before now that are not completed.
type TaskStats struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	InProgress     int     `json:"in_progress"`
	NotStarted     int     `json:"not_started"`
	ReviewRequired int     `json:"review_required"`
	Blocked        int     `json:"blocked"`
	Overdue        int     `json:"overdue"`
	CompletionRate float64 `json:"completion_rate"`
}

// MemberTaskSummary is one member's row in the task assignment distribution.
type MemberTaskSummary struct {
	UserID         uuid.UUID `json:"user_id"`
	DisplayName    string    `json:"display_name"`
	AssignedTasks  int       `json:"assigned_tasks"`
	CompletedTasks int       `json:"completed_tasks"`
	OverdueTasks   int       `json:"overdue_tasks"`
	CompletionRate float64   `json:"completion_rate"`
}

// TeamActivity summarizes the team roster and recent engagement.
// ActiveMembers counts distinct assignees whose tasks were touched within the
// activity window, a proxy for engagement rather than login activity.
type TeamActivity struct {
	TotalMembers               int                 `json:"total_members"`
	ActiveMembers              int                 `json:"active_members"`
	MembersByRole              map[string]int      `json:"members_by_role"`
	TaskAssignmentDistribution []MemberTaskSummary `json:"task_assignment_distribution"`
}

// BottleneckType classifies a detected structural risk.
type BottleneckType string

const (
	BottleneckMemberOverload  BottleneckType = "MEMBER_OVERLOAD"
	BottleneckBlockedCritical BottleneckType = "BLOCKED_CRITICAL"
)

// Severity is the risk tier of a bottleneck.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
)

// Bottleneck is one detected structural risk. MemberID is set for member
// overload; TaskIDs is set for blocked critical work.
type Bottleneck struct {
	Type        BottleneckType `json:"type"`
	Severity    Severity       `json:"severity"`
	Description string         `json:"description"`
	MemberID    *uuid.UUID     `json:"member_id,omitempty"`
	TaskIDs     []uuid.UUID    `json:"task_ids,omitempty"`
}

// HealthIndicators carries the raw risk counts, detected bottlenecks and the
// 0-100 composite health score.
type HealthIndicators struct {
	OverdueTasks      int          `json:"overdue_tasks"`
	BlockedTasks      int          `json:"blocked_tasks"`
	UnassignedTasks   int          `json:"unassigned_tasks"`
	CriticalDeadlines int          `json:"critical_deadlines"`
	Bottlenecks       []Bottleneck `json:"bottlenecks"`
	HealthScore       int          `json:"health_score"`
}

// CapacityStatus classifies a member's workload against the recommended
// task capacity.
type CapacityStatus string

const (
	CapacityUnderutilized CapacityStatus = "UNDERUTILIZED"
	CapacityOptimal       CapacityStatus = "OPTIMAL"
	CapacityOverloaded    CapacityStatus = "OVERLOADED"
)

// MemberWorkload is one member's workload row. WorkloadPercentage is capped
// for display; the capacity status is derived from the uncapped value.
type MemberWorkload struct {
	UserID             uuid.UUID      `json:"user_id"`
	DisplayName        string         `json:"display_name"`
	TotalTasks         int            `json:"total_tasks"`
	ActiveTasks        int            `json:"active_tasks"`
	WorkloadPercentage float64        `json:"workload_percentage"`
	CapacityStatus     CapacityStatus `json:"capacity_status"`
}

// CategoryWorkload groups tasks by category.
type CategoryWorkload struct {
	Category       string  `json:"category"`
	TaskCount      int     `json:"task_count"`
	CompletedCount int     `json:"completed_count"`
	CompletionRate float64 `json:"completion_rate"`
}

// PriorityWorkload groups tasks by priority.
type PriorityWorkload struct {
	Priority       models.TaskPriority `json:"priority"`
	TaskCount      int                 `json:"task_count"`
	CompletedCount int                 `json:"completed_count"`
	CompletionRate float64             `json:"completion_rate"`
}

// WorkloadDistribution is the workload view across members, categories and
// priorities.
type WorkloadDistribution struct {
	ByMember   []MemberWorkload   `json:"by_member"`
	ByCategory []CategoryWorkload `json:"by_category"`
	ByPriority []PriorityWorkload `json:"by_priority"`
}

// ProgressPoint is one calendar day of task activity. Days with no activity
// still appear as zero rows.
type ProgressPoint struct {
	Date                 string `json:"date"` // YYYY-MM-DD (UTC)
	TasksCompleted       int    `json:"tasks_completed"`
	TasksCreated         int    `json:"tasks_created"`
	CumulativeCompletion int    `json:"cumulative_completion"`
}

// DateRange bounds a report period, inclusive on both ends.
type DateRange struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// TaskHandoff records a task reassignment between members.
type TaskHandoff struct {
	TaskID     uuid.UUID `json:"task_id"`
	FromUserID uuid.UUID `json:"from_user_id"`
	ToUserID   uuid.UUID `json:"to_user_id"`
	At         time.Time `json:"at"`
}

// CollaborationPatterns carries collaboration sub-metrics. The data they need
// (message volume, reassignment history) has no upstream source today, so the
// default source returns this structure empty rather than fabricating values.
type CollaborationPatterns struct {
	MessageVolume int           `json:"message_volume"`
	ActiveThreads int           `json:"active_threads"`
	TaskHandoffs  []TaskHandoff `json:"task_handoffs"`
}

// RecommendationType classifies a generated recommendation.
type RecommendationType string

const (
	RecWorkloadBalance    RecommendationType = "WORKLOAD_BALANCE"
	RecDeadlineManagement RecommendationType = "DEADLINE_MANAGEMENT"
	RecCommunication      RecommendationType = "COMMUNICATION"
	RecProcessImprovement RecommendationType = "PROCESS_IMPROVEMENT"
)

// RecommendationPriority is the urgency of a recommendation.
type RecommendationPriority string

const (
	RecPriorityHigh   RecommendationPriority = "HIGH"
	RecPriorityMedium RecommendationPriority = "MEDIUM"
)

// Recommendation is one rule-engine output with fixed action items.
type Recommendation struct {
	Type        RecommendationType     `json:"type"`
	Priority    RecommendationPriority `json:"priority"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	ActionItems []string               `json:"action_items"`
}

// Report is the combined workspace analytics report.
type Report struct {
	WorkspaceID           uuid.UUID             `json:"workspace_id"`
	WorkspaceName         string                `json:"workspace_name"`
	EventName             string                `json:"event_name"`
	GeneratedAt           time.Time             `json:"generated_at"`
	ReportPeriod          DateRange             `json:"report_period"`
	TaskStats             TaskStats             `json:"task_stats"`
	TeamActivity          TeamActivity          `json:"team_activity"`
	HealthIndicators      HealthIndicators      `json:"health_indicators"`
	WorkloadDistribution  WorkloadDistribution  `json:"workload_distribution"`
	CollaborationPatterns CollaborationPatterns `json:"collaboration_patterns"`
	ProgressTrends        []ProgressPoint       `json:"progress_trends"`
	Recommendations       []Recommendation      `json:"recommendations"`
}
