// Package export renders assembled analytics reports to CSV and moves the
// artifacts to object storage through a background job. It consumes the
// report structures as-is and performs formatting only; no metric is
// recomputed here.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/eventlens/backend/internal/eventanalytics"
	"github.com/eventlens/backend/internal/workspaceanalytics"
)

// RenderEventReport renders a comprehensive event report as CSV sections.
func RenderEventReport(report *eventanalytics.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"Event Analytics Report"},
		{"Event", report.EventName},
		{"Generated At", report.GeneratedAt.UTC().Format(time.RFC3339)},
		{},
		{"Summary"},
		{"Total Registrations", itoa(report.Summary.TotalRegistrations)},
		{"Confirmed Registrations", itoa(report.Summary.ConfirmedRegistrations)},
		{"Attended Registrations", itoa(report.Summary.AttendedRegistrations)},
		{"Check-In Rate (%)", ftoa(report.Summary.CheckInRate)},
		{"Total Submissions", itoa(report.Summary.TotalSubmissions)},
		{"Scored Submissions", itoa(report.Summary.ScoredSubmissions)},
		{"Average Score", ftoa(report.Summary.AverageScore)},
		{},
		{"Registrations Over Time"},
		{"Date", "Count", "Cumulative"},
	}
	for _, p := range report.RegistrationsOverTime {
		rows = append(rows, []string{p.Date, itoa(p.Count), itoa(p.CumulativeCount)})
	}

	rows = append(rows, []string{}, []string{"Session Check-In Rates"},
		[]string{"Session", "Total Registrations", "Checked In", "Check-In Rate (%)"})
	for _, r := range report.SessionCheckInRates {
		rows = append(rows, []string{r.SessionName, itoa(r.TotalRegistrations), itoa(r.CheckedIn), ftoa(r.CheckInRate)})
	}

	rows = append(rows, []string{}, []string{"Score Distributions"},
		[]string{"Range", "Count", "Percentage (%)"})
	for _, b := range report.ScoreDistributions {
		rows = append(rows, []string{b.Range, itoa(b.Count), ftoa(b.Percentage)})
	}

	rows = append(rows, []string{}, []string{"Judge Participation"},
		[]string{"Judge", "Assigned", "Scored", "Completion Rate (%)"})
	for _, j := range report.JudgeParticipation {
		rows = append(rows, []string{j.JudgeName, itoa(j.AssignedSubmissions), itoa(j.ScoredSubmissions), ftoa(j.CompletionRate)})
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderWorkspaceReport renders a workspace analytics report as CSV sections.
func RenderWorkspaceReport(report *workspaceanalytics.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	stats := report.TaskStats
	health := report.HealthIndicators
	rows := [][]string{
		{"Workspace Analytics Report"},
		{"Workspace", report.WorkspaceName},
		{"Event", report.EventName},
		{"Generated At", report.GeneratedAt.UTC().Format(time.RFC3339)},
		{"Period Start", report.ReportPeriod.StartDate.UTC().Format(time.RFC3339)},
		{"Period End", report.ReportPeriod.EndDate.UTC().Format(time.RFC3339)},
		{},
		{"Task Stats"},
		{"Total", itoa(stats.Total)},
		{"Completed", itoa(stats.Completed)},
		{"In Progress", itoa(stats.InProgress)},
		{"Not Started", itoa(stats.NotStarted)},
		{"Review Required", itoa(stats.ReviewRequired)},
		{"Blocked", itoa(stats.Blocked)},
		{"Overdue", itoa(stats.Overdue)},
		{"Completion Rate (%)", ftoa(stats.CompletionRate)},
		{},
		{"Health Indicators"},
		{"Health Score", itoa(health.HealthScore)},
		{"Overdue Tasks", itoa(health.OverdueTasks)},
		{"Blocked Tasks", itoa(health.BlockedTasks)},
		{"Unassigned Tasks", itoa(health.UnassignedTasks)},
		{"Critical Deadlines", itoa(health.CriticalDeadlines)},
		{"Bottlenecks", itoa(len(health.Bottlenecks))},
		{},
		{"Workload By Member"},
		{"Member", "Total Tasks", "Active Tasks", "Workload (%)", "Capacity Status"},
	}
	for _, m := range report.WorkloadDistribution.ByMember {
		rows = append(rows, []string{m.DisplayName, itoa(m.TotalTasks), itoa(m.ActiveTasks), ftoa(m.WorkloadPercentage), string(m.CapacityStatus)})
	}

	rows = append(rows, []string{}, []string{"Progress Trends"},
		[]string{"Date", "Created", "Completed", "Cumulative Completed"})
	for _, p := range report.ProgressTrends {
		rows = append(rows, []string{p.Date, itoa(p.TasksCreated), itoa(p.TasksCompleted), itoa(p.CumulativeCompletion)})
	}

	rows = append(rows, []string{}, []string{"Recommendations"},
		[]string{"Type", "Priority", "Title", "Description"})
	for _, r := range report.Recommendations {
		rows = append(rows, []string{string(r.Type), string(r.Priority), r.Title, r.Description})
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func itoa(n int) string { return fmt.Sprintf("%d", n) }

func ftoa(f float64) string { return fmt.Sprintf("%.2f", f) }
