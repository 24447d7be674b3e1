package workspaceanalytics

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/eventlens/backend/internal/models"
)

// HealthIndicators computes the workspace's risk counts, detects bottlenecks
// and derives the composite health score. A workspace with no tasks scores
// exactly 100.
func (s *Service) HealthIndicators(ctx context.Context, workspaceID uuid.UUID) (HealthIndicators, error) {
	tasks, err := s.store.ListTasks(ctx, workspaceID)
	if err != nil {
		return HealthIndicators{}, fmt.Errorf("list tasks: %w", err)
	}
	now := s.now()
	criticalBefore := now.Add(s.thresholds.CriticalWindow)

	ind := HealthIndicators{Bottlenecks: []Bottleneck{}}
	for i := range tasks {
		t := &tasks[i]
		if t.IsOverdue(now) {
			ind.OverdueTasks++
		}
		if t.Status == models.TaskBlocked {
			ind.BlockedTasks++
		}
		if t.AssigneeID == nil {
			ind.UnassignedTasks++
		}
		if t.Status != models.TaskCompleted && t.DueDate != nil &&
			!t.DueDate.Before(now) && !t.DueDate.After(criticalBefore) {
			ind.CriticalDeadlines++
		}
	}

	ind.Bottlenecks = append(ind.Bottlenecks, s.detectOverloadedMembers(tasks)...)
	if b := s.detectBlockedCritical(tasks); b != nil {
		ind.Bottlenecks = append(ind.Bottlenecks, *b)
	}

	ind.HealthScore = s.healthScore(len(tasks), ind)
	return ind, nil
}

// detectOverloadedMembers flags every assignee carrying more non-completed
// tasks than the overload threshold, in stable member order.
func (s *Service) detectOverloadedMembers(tasks []models.WorkspaceTask) []Bottleneck {
	open := make(map[uuid.UUID]int)
	for i := range tasks {
		t := &tasks[i]
		if t.AssigneeID != nil && t.Status != models.TaskCompleted {
			open[*t.AssigneeID]++
		}
	}

	var overloaded []uuid.UUID
	for id, count := range open {
		if count > s.thresholds.MemberOverload {
			overloaded = append(overloaded, id)
		}
	}
	sort.Slice(overloaded, func(i, j int) bool {
		return overloaded[i].String() < overloaded[j].String()
	})

	bottlenecks := make([]Bottleneck, 0, len(overloaded))
	for _, id := range overloaded {
		memberID := id
		severity := SeverityMedium
		if open[id] > s.thresholds.MemberOverloadHigh {
			severity = SeverityHigh
		}
		bottlenecks = append(bottlenecks, Bottleneck{
			Type:        BottleneckMemberOverload,
			Severity:    severity,
			Description: fmt.Sprintf("Member carries %d open tasks (threshold %d)", open[id], s.thresholds.MemberOverload),
			MemberID:    &memberID,
		})
	}
	return bottlenecks
}

// detectBlockedCritical emits a single HIGH bottleneck listing every BLOCKED
// task of HIGH or URGENT priority, or nil when there are none.
func (s *Service) detectBlockedCritical(tasks []models.WorkspaceTask) *Bottleneck {
	var blocked []uuid.UUID
	for i := range tasks {
		t := &tasks[i]
		if t.Status == models.TaskBlocked && (t.Priority == models.PriorityHigh || t.Priority == models.PriorityUrgent) {
			blocked = append(blocked, t.ID)
		}
	}
	if len(blocked) == 0 {
		return nil
	}
	return &Bottleneck{
		Type:        BottleneckBlockedCritical,
		Severity:    SeverityHigh,
		Description: fmt.Sprintf("%d high-priority task(s) are blocked", len(blocked)),
		TaskIDs:     blocked,
	}
}

// healthScore starts at 100 and subtracts weighted risk ratios plus a fixed
// penalty per bottleneck, clamped to 0 and rounded to the nearest integer.
func (s *Service) healthScore(total int, ind HealthIndicators) int {
	if total == 0 {
		return 100
	}
	n := float64(total)
	t := s.thresholds
	score := 100 -
		(float64(ind.OverdueTasks)/n)*t.WeightOverdue -
		(float64(ind.BlockedTasks)/n)*t.WeightBlocked -
		(float64(ind.UnassignedTasks)/n)*t.WeightUnassigned -
		(float64(ind.CriticalDeadlines)/n)*t.WeightCritical -
		float64(len(ind.Bottlenecks))*t.BottleneckPenalty
	if score < 0 {
		score = 0
	}
	return int(math.Round(score))
}
