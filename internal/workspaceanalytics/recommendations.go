package workspaceanalytics

import "fmt"

// Recommendations runs the rule engine over the computed sub-reports. Rules
// are evaluated in fixed order and each appends at most one recommendation.
func (s *Service) Recommendations(stats TaskStats, activity TeamActivity, health HealthIndicators, workload WorkloadDistribution) []Recommendation {
	recs := []Recommendation{}

	overloaded := 0
	for _, m := range workload.ByMember {
		if m.CapacityStatus == CapacityOverloaded {
			overloaded++
		}
	}
	if overloaded > 0 {
		recs = append(recs, Recommendation{
			Type:        RecWorkloadBalance,
			Priority:    RecPriorityHigh,
			Title:       "Rebalance team workload",
			Description: fmt.Sprintf("%d team member(s) are above the recommended task capacity.", overloaded),
			ActionItems: []string{
				"Review task assignments for overloaded members",
				"Redistribute open tasks to members with spare capacity",
				"Defer or descope low-priority work",
			},
		})
	}

	if health.OverdueTasks > 0 {
		recs = append(recs, Recommendation{
			Type:        RecDeadlineManagement,
			Priority:    RecPriorityHigh,
			Title:       "Address overdue tasks",
			Description: fmt.Sprintf("%d task(s) are past their due date.", health.OverdueTasks),
			ActionItems: []string{
				"Triage overdue tasks and reset unrealistic due dates",
				"Escalate blockers preventing completion",
				"Agree on a catch-up plan with assignees",
			},
		})
	}

	if activity.TotalMembers > 0 {
		ratio := float64(activity.ActiveMembers) / float64(activity.TotalMembers)
		if ratio < 0.7 {
			recs = append(recs, Recommendation{
				Type:        RecCommunication,
				Priority:    RecPriorityMedium,
				Title:       "Re-engage inactive members",
				Description: fmt.Sprintf("Only %d of %d member(s) touched a task in the last week.", activity.ActiveMembers, activity.TotalMembers),
				ActionItems: []string{
					"Check in with members without recent task activity",
					"Make sure everyone has assigned, actionable work",
					"Schedule a team sync to realign priorities",
				},
			})
		}
	}

	if stats.CompletionRate < 50 {
		recs = append(recs, Recommendation{
			Type:        RecProcessImprovement,
			Priority:    RecPriorityMedium,
			Title:       "Improve task completion",
			Description: fmt.Sprintf("Completion rate is %.1f%%, below the 50%% target.", stats.CompletionRate),
			ActionItems: []string{
				"Break large tasks into smaller deliverables",
				"Review tasks stuck in progress or review",
				"Limit work in progress per member",
			},
		})
	}

	return recs
}
