// Package workspaceanalytics derives task, team and health statistics for a
// workspace from record-store reads, and generates rule-based
// recommendations. Every computation is a read-only projection recomputed on
// each call.
package workspaceanalytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eventlens/backend/internal/models"
	"github.com/eventlens/backend/pkg/metrics"
)

const dateLayout = "2006-01-02"

// Thresholds are the tunable constants of the health and workload formulas.
type Thresholds struct {
	// MemberOverload is the non-completed task count above which an assignee
	// is flagged as a bottleneck; MemberOverloadHigh raises it to HIGH.
	MemberOverload     int
	MemberOverloadHigh int
	// TaskCapacity is the assigned task count treated as 100% workload.
	TaskCapacity int
	// WorkloadDisplayCap caps the reported workload percentage.
	WorkloadDisplayCap float64
	// CriticalWindow is the forward window for critical deadlines.
	CriticalWindow time.Duration
	// ActivityWindow is the lookback window for active-member detection.
	ActivityWindow time.Duration
	// Health score penalty weights and the per-bottleneck penalty.
	WeightOverdue     float64
	WeightBlocked     float64
	WeightUnassigned  float64
	WeightCritical    float64
	BottleneckPenalty float64
}

// DefaultThresholds returns the documented defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MemberOverload:     8,
		MemberOverloadHigh: 12,
		TaskCapacity:       10,
		WorkloadDisplayCap: 200,
		CriticalWindow:     24 * time.Hour,
		ActivityWindow:     7 * 24 * time.Hour,
		WeightOverdue:      30,
		WeightBlocked:      25,
		WeightUnassigned:   20,
		WeightCritical:     15,
		BottleneckPenalty:  5,
	}
}

// WorkspaceStore is the record-store surface the engine reads from. GetByID
// returns (nil, nil) when the workspace id does not resolve.
type WorkspaceStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Workspace, error)
	ListTasks(ctx context.Context, workspaceID uuid.UUID) ([]models.WorkspaceTask, error)
	ListTeamMembers(ctx context.Context, workspaceID uuid.UUID, statusFilter models.MemberStatus) ([]models.TeamMember, error)
	IsMember(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error)
}

// CollaborationSource supplies collaboration sub-metrics. The default source
// returns deterministic empty structures because the underlying data
// (messages, reassignment history) has no upstream provider yet; a real
// source can be plugged in without touching the rest of the engine.
type CollaborationSource interface {
	Patterns(ctx context.Context, workspaceID uuid.UUID) (CollaborationPatterns, error)
}

// Option configures a Service.
type Option func(*Service)

// WithCollaborationSource replaces the no-op collaboration source.
func WithCollaborationSource(src CollaborationSource) Option {
	return func(s *Service) { s.collaboration = src }
}

// WithThresholds overrides the default formula constants.
func WithThresholds(t Thresholds) Option {
	return func(s *Service) { s.thresholds = t }
}

// WithNow overrides the clock, mainly for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service computes workspace health analytics from record-store reads.
type Service struct {
	store         WorkspaceStore
	collaboration CollaborationSource
	thresholds    Thresholds
	logger        *zap.Logger
	now           func() time.Time
}

// NewService creates a workspace analytics service with default thresholds
// and the no-op collaboration source.
func NewService(store WorkspaceStore, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		store:         store,
		collaboration: noopCollaborationSource{},
		thresholds:    DefaultThresholds(),
		logger:        logger,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TaskStats counts the workspace's tasks by status and computes the overdue
// count and completion rate.
func (s *Service) TaskStats(ctx context.Context, workspaceID uuid.UUID) (TaskStats, error) {
	tasks, err := s.store.ListTasks(ctx, workspaceID)
	if err != nil {
		return TaskStats{}, fmt.Errorf("list tasks: %w", err)
	}
	now := s.now()

	stats := TaskStats{Total: len(tasks)}
	for i := range tasks {
		t := &tasks[i]
		switch t.Status {
		case models.TaskCompleted:
			stats.Completed++
		case models.TaskInProgress:
			stats.InProgress++
		case models.TaskNotStarted:
			stats.NotStarted++
		case models.TaskReviewRequired:
			stats.ReviewRequired++
		case models.TaskBlocked:
			stats.Blocked++
		}
		if t.IsOverdue(now) {
			stats.Overdue++
		}
	}
	stats.CompletionRate = percent(stats.Completed, stats.Total)
	return stats, nil
}

// TeamActivity summarizes the ACTIVE roster, groups members by role and
// reports per-member task loads in roster order. Active members are distinct
// assignees of tasks updated within the activity window.
func (s *Service) TeamActivity(ctx context.Context, workspaceID uuid.UUID) (TeamActivity, error) {
	members, err := s.store.ListTeamMembers(ctx, workspaceID, models.MemberActive)
	if err != nil {
		return TeamActivity{}, fmt.Errorf("list team members: %w", err)
	}
	tasks, err := s.store.ListTasks(ctx, workspaceID)
	if err != nil {
		return TeamActivity{}, fmt.Errorf("list tasks: %w", err)
	}
	now := s.now()
	activeSince := now.Add(-s.thresholds.ActivityWindow)

	activity := TeamActivity{
		TotalMembers:               len(members),
		MembersByRole:              make(map[string]int),
		TaskAssignmentDistribution: make([]MemberTaskSummary, 0, len(members)),
	}
	recentAssignees := make(map[uuid.UUID]struct{})
	for i := range tasks {
		t := &tasks[i]
		if t.AssigneeID != nil && !t.UpdatedAt.Before(activeSince) {
			recentAssignees[*t.AssigneeID] = struct{}{}
		}
	}
	activity.ActiveMembers = len(recentAssignees)

	for _, m := range members {
		activity.MembersByRole[m.Role]++

		var assigned, completed, overdue int
		for i := range tasks {
			t := &tasks[i]
			if t.AssigneeID == nil || *t.AssigneeID != m.UserID {
				continue
			}
			assigned++
			if t.Status == models.TaskCompleted {
				completed++
			}
			if t.IsOverdue(now) {
				overdue++
			}
		}
		activity.TaskAssignmentDistribution = append(activity.TaskAssignmentDistribution, MemberTaskSummary{
			UserID:         m.UserID,
			DisplayName:    m.DisplayName,
			AssignedTasks:  assigned,
			CompletedTasks: completed,
			OverdueTasks:   overdue,
			CompletionRate: percent(completed, assigned),
		})
	}
	return activity, nil
}

// ProgressTrends returns one zeroed bucket per calendar day from the period
// start to its end inclusive, filled with task creations and completions,
// plus a running completion sum.
func (s *Service) ProgressTrends(ctx context.Context, workspaceID uuid.UUID, period DateRange) ([]ProgressPoint, error) {
	tasks, err := s.store.ListTasks(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	start := truncateDay(period.StartDate)
	end := truncateDay(period.EndDate)
	if end.Before(start) {
		return []ProgressPoint{}, nil
	}

	index := make(map[string]int)
	var points []ProgressPoint
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		index[key] = len(points)
		points = append(points, ProgressPoint{Date: key})
	}

	for i := range tasks {
		t := &tasks[i]
		if idx, ok := index[t.CreatedAt.UTC().Format(dateLayout)]; ok {
			points[idx].TasksCreated++
		}
		if t.CompletedAt != nil {
			if idx, ok := index[t.CompletedAt.UTC().Format(dateLayout)]; ok {
				points[idx].TasksCompleted++
			}
		}
	}

	cumulative := 0
	for i := range points {
		cumulative += points[i].TasksCompleted
		points[i].CumulativeCompletion = cumulative
	}
	return points, nil
}

// CollaborationPatterns returns the collaboration sub-metrics from the
// configured source.
func (s *Service) CollaborationPatterns(ctx context.Context, workspaceID uuid.UUID) (CollaborationPatterns, error) {
	return s.collaboration.Patterns(ctx, workspaceID)
}

// WorkspaceAnalytics assembles the full workspace report for a requesting
// user. The membership check runs first and fails with
// ErrNotWorkspaceMember before any aggregation; the workspace lookup follows.
// The six sub-computations then run concurrently and any failure fails the
// whole report.
func (s *Service) WorkspaceAnalytics(ctx context.Context, workspaceID, userID uuid.UUID) (*Report, error) {
	started := s.now()

	member, err := s.store.IsMember(ctx, workspaceID, userID)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if !member {
		return nil, ErrNotWorkspaceMember
	}

	ws, err := s.store.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	if ws == nil {
		return nil, ErrWorkspaceNotFound
	}

	period := DateRange{StartDate: ws.CreatedAt, EndDate: s.now()}
	report := &Report{
		WorkspaceID:   ws.ID,
		WorkspaceName: ws.Name,
		EventName:     ws.EventName,
		ReportPeriod:  period,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		report.TaskStats, err = s.TaskStats(gctx, workspaceID)
		return err
	})
	g.Go(func() error {
		var err error
		report.TeamActivity, err = s.TeamActivity(gctx, workspaceID)
		return err
	})
	g.Go(func() error {
		var err error
		report.HealthIndicators, err = s.HealthIndicators(gctx, workspaceID)
		return err
	})
	g.Go(func() error {
		var err error
		report.WorkloadDistribution, err = s.WorkloadDistribution(gctx, workspaceID)
		return err
	})
	g.Go(func() error {
		var err error
		report.ProgressTrends, err = s.ProgressTrends(gctx, workspaceID, period)
		return err
	})
	g.Go(func() error {
		var err error
		report.CollaborationPatterns, err = s.CollaborationPatterns(gctx, workspaceID)
		return err
	})
	if err := g.Wait(); err != nil {
		metrics.ReportFailed(metrics.ReportWorkspace)
		return nil, err
	}

	report.Recommendations = s.Recommendations(report.TaskStats, report.TeamActivity, report.HealthIndicators, report.WorkloadDistribution)
	report.GeneratedAt = s.now()
	metrics.ReportGenerated(metrics.ReportWorkspace, s.now().Sub(started))
	return report, nil
}

// noopCollaborationSource is the default: deterministic empty structures,
// never an error.
type noopCollaborationSource struct{}

func (noopCollaborationSource) Patterns(context.Context, uuid.UUID) (CollaborationPatterns, error) {
	return CollaborationPatterns{TaskHandoffs: []TaskHandoff{}}, nil
}

// truncateDay drops the time-of-day portion in UTC.
func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// sortedCategories returns the distinct categories of tasks in stable order.
func sortedCategories(tasks []models.WorkspaceTask) []string {
	seen := make(map[string]struct{})
	var cats []string
	for i := range tasks {
		if _, ok := seen[tasks[i].Category]; !ok {
			seen[tasks[i].Category] = struct{}{}
			cats = append(cats, tasks[i].Category)
		}
	}
	sort.Strings(cats)
	return cats
}
