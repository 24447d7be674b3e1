package workspaceanalytics

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/eventlens/backend/internal/models"
)

// priorityOrder fixes the reporting order of priority groups.
var priorityOrder = []models.TaskPriority{
	models.PriorityLow,
	models.PriorityMedium,
	models.PriorityHigh,
	models.PriorityUrgent,
}

// WorkloadDistribution reports task load per ACTIVE member, per category and
// per priority. Capacity status is derived from the uncapped workload
// percentage; only the reported percentage is capped for display.
func (s *Service) WorkloadDistribution(ctx context.Context, workspaceID uuid.UUID) (WorkloadDistribution, error) {
	members, err := s.store.ListTeamMembers(ctx, workspaceID, models.MemberActive)
	if err != nil {
		return WorkloadDistribution{}, fmt.Errorf("list team members: %w", err)
	}
	tasks, err := s.store.ListTasks(ctx, workspaceID)
	if err != nil {
		return WorkloadDistribution{}, fmt.Errorf("list tasks: %w", err)
	}

	dist := WorkloadDistribution{
		ByMember:   make([]MemberWorkload, 0, len(members)),
		ByCategory: []CategoryWorkload{},
		ByPriority: []PriorityWorkload{},
	}

	for _, m := range members {
		var total, active int
		for i := range tasks {
			t := &tasks[i]
			if t.AssigneeID == nil || *t.AssigneeID != m.UserID {
				continue
			}
			total++
			if t.IsActive() {
				active++
			}
		}
		pct := float64(total) / float64(s.thresholds.TaskCapacity) * 100
		display := pct
		if display > s.thresholds.WorkloadDisplayCap {
			display = s.thresholds.WorkloadDisplayCap
		}
		dist.ByMember = append(dist.ByMember, MemberWorkload{
			UserID:             m.UserID,
			DisplayName:        m.DisplayName,
			TotalTasks:         total,
			ActiveTasks:        active,
			WorkloadPercentage: display,
			CapacityStatus:     capacityStatus(pct),
		})
	}

	for _, cat := range sortedCategories(tasks) {
		var count, completed int
		for i := range tasks {
			if tasks[i].Category != cat {
				continue
			}
			count++
			if tasks[i].Status == models.TaskCompleted {
				completed++
			}
		}
		dist.ByCategory = append(dist.ByCategory, CategoryWorkload{
			Category:       cat,
			TaskCount:      count,
			CompletedCount: completed,
			CompletionRate: percent(completed, count),
		})
	}

	for _, prio := range priorityOrder {
		var count, completed int
		for i := range tasks {
			if tasks[i].Priority != prio {
				continue
			}
			count++
			if tasks[i].Status == models.TaskCompleted {
				completed++
			}
		}
		if count == 0 {
			continue
		}
		dist.ByPriority = append(dist.ByPriority, PriorityWorkload{
			Priority:       prio,
			TaskCount:      count,
			CompletedCount: completed,
			CompletionRate: percent(completed, count),
		})
	}

	return dist, nil
}

// capacityStatus classifies an uncapped workload percentage: under 50% is
// underutilized, 50-100% inclusive is optimal, above 100% is overloaded.
func capacityStatus(pct float64) CapacityStatus {
	switch {
	case pct < 50:
		return CapacityUnderutilized
	case pct <= 100:
		return CapacityOptimal
	default:
		return CapacityOverloaded
	}
}
