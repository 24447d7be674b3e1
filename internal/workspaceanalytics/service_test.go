package workspaceanalytics_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/eventlens/backend/internal/models"
	"github.com/eventlens/backend/internal/workspaceanalytics"
)

// fakeStore is an in-memory record store implementing the workspace read
// contract. tasksRead records whether task data was touched, to assert the
// membership gate runs first.
type fakeStore struct {
	ws        *models.Workspace
	tasks     []models.WorkspaceTask
	members   []models.TeamMember
	memberIDs map[uuid.UUID]bool
	tasksErr  error
	tasksRead bool
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (*models.Workspace, error) {
	if f.ws != nil && f.ws.ID == id {
		return f.ws, nil
	}
	return nil, nil
}

func (f *fakeStore) ListTasks(_ context.Context, _ uuid.UUID) ([]models.WorkspaceTask, error) {
	f.tasksRead = true
	if f.tasksErr != nil {
		return nil, f.tasksErr
	}
	return f.tasks, nil
}

func (f *fakeStore) ListTeamMembers(_ context.Context, _ uuid.UUID, statusFilter models.MemberStatus) ([]models.TeamMember, error) {
	var out []models.TeamMember
	for _, m := range f.members {
		if statusFilter == "" || m.Status == statusFilter {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStore) IsMember(_ context.Context, _ uuid.UUID, userID uuid.UUID) (bool, error) {
	return f.memberIDs[userID], nil
}

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func task(mutate func(*models.WorkspaceTask)) models.WorkspaceTask {
	t := models.WorkspaceTask{
		ID:        uuid.New(),
		Title:     "task",
		Status:    models.TaskNotStarted,
		Priority:  models.PriorityMedium,
		Category:  "general",
		CreatedAt: fixedNow.Add(-72 * time.Hour),
		UpdatedAt: fixedNow.Add(-72 * time.Hour),
	}
	if mutate != nil {
		mutate(&t)
	}
	return t
}

func assignedTo(id uuid.UUID) func(*models.WorkspaceTask) {
	return func(t *models.WorkspaceTask) { t.AssigneeID = &id }
}

func member(userID uuid.UUID, name, role string, status models.MemberStatus) models.TeamMember {
	return models.TeamMember{
		ID:          uuid.New(),
		UserID:      userID,
		DisplayName: name,
		Role:        role,
		Status:      status,
		JoinedAt:    fixedNow.Add(-30 * 24 * time.Hour),
	}
}

func TestTaskStats(t *testing.T) {
	Convey("Given tasks across every status", t, func() {
		assignee := uuid.New()
		pastDue := fixedNow.Add(-2 * time.Hour)
		store := &fakeStore{tasks: []models.WorkspaceTask{
			task(func(t *models.WorkspaceTask) {
				t.Status = models.TaskCompleted
				t.AssigneeID = &assignee
				t.DueDate = &pastDue // completed tasks are never overdue
			}),
			task(func(t *models.WorkspaceTask) {
				t.Status = models.TaskInProgress
				t.AssigneeID = &assignee
				t.DueDate = &pastDue
			}),
			task(func(t *models.WorkspaceTask) { t.Status = models.TaskReviewRequired }),
			task(func(t *models.WorkspaceTask) { t.Status = models.TaskBlocked }),
			task(nil), // NOT_STARTED
		}}
		svc := workspaceanalytics.NewService(store, nil, workspaceanalytics.WithNow(fixedClock))

		Convey("When computing task stats", func() {
			stats, err := svc.TaskStats(context.Background(), uuid.New())
			So(err, ShouldBeNil)

			Convey("Then each status is counted once", func() {
				So(stats.Total, ShouldEqual, 5)
				So(stats.Completed, ShouldEqual, 1)
				So(stats.InProgress, ShouldEqual, 1)
				So(stats.ReviewRequired, ShouldEqual, 1)
				So(stats.Blocked, ShouldEqual, 1)
				So(stats.NotStarted, ShouldEqual, 1)
			})

			Convey("And only the non-completed past-due task is overdue", func() {
				So(stats.Overdue, ShouldEqual, 1)
			})

			Convey("And the completion rate is completed over total", func() {
				So(stats.CompletionRate, ShouldAlmostEqual, 20, 1e-9)
			})
		})

		Convey("When the workspace has no tasks", func() {
			store.tasks = nil
			stats, err := svc.TaskStats(context.Background(), uuid.New())
			So(err, ShouldBeNil)
			So(stats.Total, ShouldEqual, 0)
			So(stats.CompletionRate, ShouldEqual, 0)
		})
	})
}

func TestTeamActivity(t *testing.T) {
	Convey("Given an active roster with mixed recent activity", t, func() {
		alice := uuid.New()
		bob := uuid.New()
		carol := uuid.New()
		store := &fakeStore{
			members: []models.TeamMember{
				member(alice, "Alice", "LEAD", models.MemberActive),
				member(bob, "Bob", "MEMBER", models.MemberActive),
				member(carol, "Carol", "MEMBER", models.MemberInactive),
			},
			tasks: []models.WorkspaceTask{
				task(func(t *models.WorkspaceTask) {
					t.AssigneeID = &alice
					t.Status = models.TaskCompleted
					t.UpdatedAt = fixedNow.Add(-24 * time.Hour)
				}),
				task(func(t *models.WorkspaceTask) {
					t.AssigneeID = &alice
					t.Status = models.TaskInProgress
					t.UpdatedAt = fixedNow.Add(-48 * time.Hour)
				}),
				task(func(t *models.WorkspaceTask) {
					t.AssigneeID = &bob
					t.UpdatedAt = fixedNow.Add(-10 * 24 * time.Hour) // outside the window
				}),
			},
		}
		svc := workspaceanalytics.NewService(store, nil, workspaceanalytics.WithNow(fixedClock))

		Convey("When summarizing team activity", func() {
			activity, err := svc.TeamActivity(context.Background(), uuid.New())
			So(err, ShouldBeNil)

			Convey("Then only ACTIVE members are on the roster", func() {
				So(activity.TotalMembers, ShouldEqual, 2)
				So(activity.MembersByRole["LEAD"], ShouldEqual, 1)
				So(activity.MembersByRole["MEMBER"], ShouldEqual, 1)
			})

			Convey("And active members are assignees touched within the window", func() {
				So(activity.ActiveMembers, ShouldEqual, 1)
			})

			Convey("And the distribution follows roster order", func() {
				So(activity.TaskAssignmentDistribution, ShouldHaveLength, 2)
				So(activity.TaskAssignmentDistribution[0].DisplayName, ShouldEqual, "Alice")
				So(activity.TaskAssignmentDistribution[0].AssignedTasks, ShouldEqual, 2)
				So(activity.TaskAssignmentDistribution[0].CompletedTasks, ShouldEqual, 1)
				So(activity.TaskAssignmentDistribution[0].CompletionRate, ShouldAlmostEqual, 50, 1e-9)
				So(activity.TaskAssignmentDistribution[1].DisplayName, ShouldEqual, "Bob")
				So(activity.TaskAssignmentDistribution[1].AssignedTasks, ShouldEqual, 1)
			})
		})
	})
}

func TestHealthIndicators(t *testing.T) {
	Convey("Given a workspace with one task in each risk bucket", t, func() {
		assignee := uuid.New()
		pastDue := fixedNow.Add(-6 * time.Hour)
		dueSoon := fixedNow.Add(20 * time.Hour)
		dueSooner := fixedNow.Add(23 * time.Hour)
		store := &fakeStore{tasks: []models.WorkspaceTask{
			task(func(t *models.WorkspaceTask) {
				t.Status = models.TaskInProgress
				t.AssigneeID = &assignee
				t.DueDate = &pastDue
			}),
			task(func(t *models.WorkspaceTask) {
				t.Status = models.TaskBlocked
				t.AssigneeID = &assignee
				t.DueDate = &dueSoon
			}),
			task(nil), // unassigned, no due date
			task(func(t *models.WorkspaceTask) {
				t.Status = models.TaskInProgress
				t.Priority = models.PriorityHigh
				t.AssigneeID = &assignee
				t.DueDate = &dueSooner
			}),
		}}
		svc := workspaceanalytics.NewService(store, nil, workspaceanalytics.WithNow(fixedClock))

		Convey("When computing health indicators", func() {
			ind, err := svc.HealthIndicators(context.Background(), uuid.New())
			So(err, ShouldBeNil)

			Convey("Then the risk counts are independent of each other", func() {
				So(ind.OverdueTasks, ShouldEqual, 1)
				So(ind.BlockedTasks, ShouldEqual, 1)
				So(ind.UnassignedTasks, ShouldEqual, 1)
				So(ind.CriticalDeadlines, ShouldEqual, 2)
				So(ind.Bottlenecks, ShouldBeEmpty)
			})

			Convey("And the health score reflects the weighted deductions", func() {
				// 100 - 30/4 - 25/4 - 20/4 - 2*15/4 = 73.75
				So(ind.HealthScore, ShouldEqual, 74)
			})
		})

		Convey("When the workspace has no tasks it scores a perfect 100", func() {
			store.tasks = nil
			ind, err := svc.HealthIndicators(context.Background(), uuid.New())
			So(err, ShouldBeNil)
			So(ind.HealthScore, ShouldEqual, 100)
			So(ind.Bottlenecks, ShouldBeEmpty)
		})
	})

	Convey("Given an assignee above the overload threshold", t, func() {
		overworked := uuid.New()
		var tasks []models.WorkspaceTask
		for i := 0; i < 9; i++ {
			tasks = append(tasks, task(func(t *models.WorkspaceTask) {
				t.Status = models.TaskInProgress
				t.AssigneeID = &overworked
			}))
		}
		store := &fakeStore{tasks: tasks}
		svc := workspaceanalytics.NewService(store, nil, workspaceanalytics.WithNow(fixedClock))

		Convey("When 9 open tasks exceed the default threshold of 8", func() {
			ind, err := svc.HealthIndicators(context.Background(), uuid.New())
			So(err, ShouldBeNil)
			So(ind.Bottlenecks, ShouldHaveLength, 1)
			So(ind.Bottlenecks[0].Type, ShouldEqual, workspaceanalytics.BottleneckMemberOverload)
			So(ind.Bottlenecks[0].Severity, ShouldEqual, workspaceanalytics.SeverityMedium)
			So(*ind.Bottlenecks[0].MemberID, ShouldEqual, overworked)
		})

		Convey("When the count passes the high threshold the severity is raised", func() {
			for i := 0; i < 4; i++ {
				store.tasks = append(store.tasks, task(func(t *models.WorkspaceTask) {
					t.Status = models.TaskInProgress
					t.AssigneeID = &overworked
				}))
			}
			ind, err := svc.HealthIndicators(context.Background(), uuid.New())
			So(err, ShouldBeNil)
			So(ind.Bottlenecks, ShouldHaveLength, 1)
			So(ind.Bottlenecks[0].Severity, ShouldEqual, workspaceanalytics.SeverityHigh)
		})

		Convey("When completed tasks dominate no overload is flagged", func() {
			for i := range store.tasks {
				store.tasks[i].Status = models.TaskCompleted
			}
			ind, err := svc.HealthIndicators(context.Background(), uuid.New())
			So(err, ShouldBeNil)
			So(ind.Bottlenecks, ShouldBeEmpty)
		})
	})

	Convey("Given blocked high-priority tasks", t, func() {
		urgent := task(func(t *models.WorkspaceTask) {
			t.Status = models.TaskBlocked
			t.Priority = models.PriorityUrgent
		})
		high := task(func(t *models.WorkspaceTask) {
			t.Status = models.TaskBlocked
			t.Priority = models.PriorityHigh
		})
		low := task(func(t *models.WorkspaceTask) {
			t.Status = models.TaskBlocked
			t.Priority = models.PriorityLow
		})
		store := &fakeStore{tasks: []models.WorkspaceTask{urgent, high, low}}
		svc := workspaceanalytics.NewService(store, nil, workspaceanalytics.WithNow(fixedClock))

		Convey("When computing health indicators", func() {
			ind, err := svc.HealthIndicators(context.Background(), uuid.New())
			So(err, ShouldBeNil)

			Convey("Then a single HIGH bottleneck lists the critical task ids", func() {
				So(ind.Bottlenecks, ShouldHaveLength, 1)
				b := ind.Bottlenecks[0]
				So(b.Type, ShouldEqual, workspaceanalytics.BottleneckBlockedCritical)
				So(b.Severity, ShouldEqual, workspaceanalytics.SeverityHigh)
				So(b.TaskIDs, ShouldHaveLength, 2)
				So(b.TaskIDs, ShouldContain, urgent.ID)
				So(b.TaskIDs, ShouldContain, high.ID)
			})
		})
	})

	Convey("Given a workspace in catastrophic shape", t, func() {
		pastDue := fixedNow.Add(-48 * time.Hour)
		var tasks []models.WorkspaceTask
		for i := 0; i < 10; i++ {
			assignee := uuid.New()
			for j := 0; j < 13; j++ {
				tasks = append(tasks, task(func(t *models.WorkspaceTask) {
					t.Status = models.TaskBlocked
					t.Priority = models.PriorityUrgent
					t.AssigneeID = &assignee
					t.DueDate = &pastDue
				}))
			}
		}
		store := &fakeStore{tasks: tasks}
		svc := workspaceanalytics.NewService(store, nil, workspaceanalytics.WithNow(fixedClock))

		Convey("Then the health score floors at zero", func() {
			ind, err := svc.HealthIndicators(context.Background(), uuid.New())
			So(err, ShouldBeNil)
			So(ind.HealthScore, ShouldEqual, 0)
		})
	})
}

func TestWorkloadDistribution(t *testing.T) {
	Convey("Given members at the capacity boundaries", t, func() {
		under := uuid.New()
		optimal := uuid.New()
		over := uuid.New()
		extreme := uuid.New()

		var tasks []models.WorkspaceTask
		addTasks := func(assignee uuid.UUID, n int) {
			for i := 0; i < n; i++ {
				tasks = append(tasks, task(func(t *models.WorkspaceTask) {
					t.Status = models.TaskInProgress
					t.AssigneeID = &assignee
				}))
			}
		}
		addTasks(under, 2)
		addTasks(optimal, 10)
		addTasks(over, 11)
		addTasks(extreme, 25)

		store := &fakeStore{
			members: []models.TeamMember{
				member(under, "Una", "MEMBER", models.MemberActive),
				member(optimal, "Opal", "MEMBER", models.MemberActive),
				member(over, "Omar", "MEMBER", models.MemberActive),
				member(extreme, "Ezra", "MEMBER", models.MemberActive),
			},
			tasks: tasks,
		}
		svc := workspaceanalytics.NewService(store, nil, workspaceanalytics.WithNow(fixedClock))

		Convey("When computing the workload distribution", func() {
			dist, err := svc.WorkloadDistribution(context.Background(), uuid.New())
			So(err, ShouldBeNil)
			So(dist.ByMember, ShouldHaveLength, 4)

			Convey("Then under 50% is underutilized", func() {
				So(dist.ByMember[0].WorkloadPercentage, ShouldAlmostEqual, 20, 1e-9)
				So(dist.ByMember[0].CapacityStatus, ShouldEqual, workspaceanalytics.CapacityUnderutilized)
			})

			Convey("And exactly 100% is still optimal", func() {
				So(dist.ByMember[1].WorkloadPercentage, ShouldAlmostEqual, 100, 1e-9)
				So(dist.ByMember[1].CapacityStatus, ShouldEqual, workspaceanalytics.CapacityOptimal)
			})

			Convey("And anything above 100% is overloaded", func() {
				So(dist.ByMember[2].WorkloadPercentage, ShouldAlmostEqual, 110, 1e-9)
				So(dist.ByMember[2].CapacityStatus, ShouldEqual, workspaceanalytics.CapacityOverloaded)
			})

			Convey("And the displayed percentage caps at 200 while the status uses the real value", func() {
				So(dist.ByMember[3].TotalTasks, ShouldEqual, 25)
				So(dist.ByMember[3].WorkloadPercentage, ShouldAlmostEqual, 200, 1e-9)
				So(dist.ByMember[3].CapacityStatus, ShouldEqual, workspaceanalytics.CapacityOverloaded)
			})
		})
	})

	Convey("Given tasks across categories and priorities", t, func() {
		store := &fakeStore{tasks: []models.WorkspaceTask{
			task(func(t *models.WorkspaceTask) {
				t.Category = "marketing"
				t.Priority = models.PriorityHigh
				t.Status = models.TaskCompleted
			}),
			task(func(t *models.WorkspaceTask) {
				t.Category = "marketing"
				t.Priority = models.PriorityLow
			}),
			task(func(t *models.WorkspaceTask) {
				t.Category = "logistics"
				t.Priority = models.PriorityHigh
			}),
		}}
		svc := workspaceanalytics.NewService(store, nil, workspaceanalytics.WithNow(fixedClock))

		Convey("When computing the workload distribution", func() {
			dist, err := svc.WorkloadDistribution(context.Background(), uuid.New())
			So(err, ShouldBeNil)

			Convey("Then categories come back alphabetically with completion rates", func() {
				So(dist.ByCategory, ShouldHaveLength, 2)
				So(dist.ByCategory[0].Category, ShouldEqual, "logistics")
				So(dist.ByCategory[1].Category, ShouldEqual, "marketing")
				So(dist.ByCategory[1].TaskCount, ShouldEqual, 2)
				So(dist.ByCategory[1].CompletionRate, ShouldAlmostEqual, 50, 1e-9)
			})

			Convey("And priorities keep their fixed order, skipping empty tiers", func() {
				So(dist.ByPriority, ShouldHaveLength, 2)
				So(dist.ByPriority[0].Priority, ShouldEqual, models.PriorityLow)
				So(dist.ByPriority[1].Priority, ShouldEqual, models.PriorityHigh)
				So(dist.ByPriority[1].TaskCount, ShouldEqual, 2)
			})
		})
	})
}

func TestProgressTrends(t *testing.T) {
	Convey("Given tasks created and completed across a short period", t, func() {
		day1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		day3 := time.Date(2024, 3, 3, 16, 30, 0, 0, time.UTC)
		day4 := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
		outside := time.Date(2024, 2, 20, 9, 0, 0, 0, time.UTC)

		store := &fakeStore{tasks: []models.WorkspaceTask{
			task(func(t *models.WorkspaceTask) { t.CreatedAt = day1 }),
			task(func(t *models.WorkspaceTask) {
				t.CreatedAt = day1
				t.Status = models.TaskCompleted
				t.CompletedAt = &day3
			}),
			task(func(t *models.WorkspaceTask) {
				t.CreatedAt = day3
				t.Status = models.TaskCompleted
				t.CompletedAt = &day4
			}),
			task(func(t *models.WorkspaceTask) { t.CreatedAt = outside }),
		}}
		svc := workspaceanalytics.NewService(store, nil, workspaceanalytics.WithNow(fixedClock))
		period := workspaceanalytics.DateRange{
			StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 3, 4, 23, 59, 0, 0, time.UTC),
		}

		Convey("When computing progress trends", func() {
			points, err := svc.ProgressTrends(context.Background(), uuid.New(), period)
			So(err, ShouldBeNil)

			Convey("Then every day of the period appears, including quiet ones", func() {
				So(points, ShouldHaveLength, 4)
				So(points[0].Date, ShouldEqual, "2024-03-01")
				So(points[1].Date, ShouldEqual, "2024-03-02")
				So(points[1].TasksCreated, ShouldEqual, 0)
				So(points[1].TasksCompleted, ShouldEqual, 0)
			})

			Convey("And activity outside the period is ignored", func() {
				So(points[0].TasksCreated, ShouldEqual, 2)
				So(points[2].TasksCreated, ShouldEqual, 1)
				So(points[2].TasksCompleted, ShouldEqual, 1)
				So(points[3].TasksCompleted, ShouldEqual, 1)
			})

			Convey("And cumulative completion runs across the whole period", func() {
				So(points[0].CumulativeCompletion, ShouldEqual, 0)
				So(points[2].CumulativeCompletion, ShouldEqual, 1)
				So(points[3].CumulativeCompletion, ShouldEqual, 2)
			})
		})

		Convey("When the period is inverted the trend is empty", func() {
			points, err := svc.ProgressTrends(context.Background(), uuid.New(), workspaceanalytics.DateRange{
				StartDate: period.EndDate,
				EndDate:   period.StartDate,
			})
			So(err, ShouldBeNil)
			So(points, ShouldBeEmpty)
		})
	})
}

func TestRecommendations(t *testing.T) {
	svc := workspaceanalytics.NewService(&fakeStore{}, nil, workspaceanalytics.WithNow(fixedClock))

	Convey("Given inputs that trip every rule", t, func() {
		stats := workspaceanalytics.TaskStats{Total: 8, Completed: 2, CompletionRate: 25}
		activity := workspaceanalytics.TeamActivity{TotalMembers: 5, ActiveMembers: 1}
		health := workspaceanalytics.HealthIndicators{OverdueTasks: 2}
		workload := workspaceanalytics.WorkloadDistribution{ByMember: []workspaceanalytics.MemberWorkload{
			{CapacityStatus: workspaceanalytics.CapacityOverloaded},
			{CapacityStatus: workspaceanalytics.CapacityOptimal},
		}}

		Convey("When generating recommendations", func() {
			recs := svc.Recommendations(stats, activity, health, workload)

			Convey("Then all four fire in their fixed order", func() {
				So(recs, ShouldHaveLength, 4)
				So(recs[0].Type, ShouldEqual, workspaceanalytics.RecWorkloadBalance)
				So(recs[1].Type, ShouldEqual, workspaceanalytics.RecDeadlineManagement)
				So(recs[2].Type, ShouldEqual, workspaceanalytics.RecCommunication)
				So(recs[3].Type, ShouldEqual, workspaceanalytics.RecProcessImprovement)
			})

			Convey("And the first two are HIGH priority with action items", func() {
				So(recs[0].Priority, ShouldEqual, workspaceanalytics.RecPriorityHigh)
				So(recs[1].Priority, ShouldEqual, workspaceanalytics.RecPriorityHigh)
				So(recs[2].Priority, ShouldEqual, workspaceanalytics.RecPriorityMedium)
				for _, r := range recs {
					So(r.ActionItems, ShouldNotBeEmpty)
					So(r.Description, ShouldNotBeBlank)
				}
			})
		})
	})

	Convey("Given a healthy workspace nothing fires", t, func() {
		recs := svc.Recommendations(
			workspaceanalytics.TaskStats{Total: 4, Completed: 3, CompletionRate: 75},
			workspaceanalytics.TeamActivity{TotalMembers: 3, ActiveMembers: 3},
			workspaceanalytics.HealthIndicators{},
			workspaceanalytics.WorkloadDistribution{},
		)
		So(recs, ShouldBeEmpty)
	})

	Convey("Given an empty roster the engagement rule stays silent", t, func() {
		recs := svc.Recommendations(
			workspaceanalytics.TaskStats{CompletionRate: 100},
			workspaceanalytics.TeamActivity{TotalMembers: 0, ActiveMembers: 0},
			workspaceanalytics.HealthIndicators{},
			workspaceanalytics.WorkloadDistribution{},
		)
		So(recs, ShouldBeEmpty)
	})
}

func TestWorkspaceAnalytics(t *testing.T) {
	Convey("Given a workspace with a member and an outsider", t, func() {
		workspaceID := uuid.New()
		memberID := uuid.New()
		outsiderID := uuid.New()
		store := &fakeStore{
			ws: &models.Workspace{
				ID:        workspaceID,
				EventID:   uuid.New(),
				Name:      "Launch Crew",
				EventName: "DevConf",
				CreatedAt: fixedNow.Add(-2 * 24 * time.Hour),
			},
			members: []models.TeamMember{
				member(memberID, "Alice", "LEAD", models.MemberActive),
			},
			memberIDs: map[uuid.UUID]bool{memberID: true},
			tasks: []models.WorkspaceTask{
				task(assignedTo(memberID)),
			},
		}
		svc := workspaceanalytics.NewService(store, nil, workspaceanalytics.WithNow(fixedClock))

		Convey("When a non-member requests the report", func() {
			_, err := svc.WorkspaceAnalytics(context.Background(), workspaceID, outsiderID)

			Convey("Then access is denied before any task data is read", func() {
				So(errors.Is(err, workspaceanalytics.ErrNotWorkspaceMember), ShouldBeTrue)
				So(store.tasksRead, ShouldBeFalse)
			})
		})

		Convey("When the workspace id does not resolve", func() {
			_, err := svc.WorkspaceAnalytics(context.Background(), uuid.New(), memberID)
			So(errors.Is(err, workspaceanalytics.ErrWorkspaceNotFound), ShouldBeTrue)
		})

		Convey("When a member requests the report", func() {
			report, err := svc.WorkspaceAnalytics(context.Background(), workspaceID, memberID)
			So(err, ShouldBeNil)

			Convey("Then the header names the workspace and its event", func() {
				So(report.WorkspaceID, ShouldEqual, workspaceID)
				So(report.WorkspaceName, ShouldEqual, "Launch Crew")
				So(report.EventName, ShouldEqual, "DevConf")
				So(report.GeneratedAt, ShouldEqual, fixedNow)
			})

			Convey("And the period runs from workspace creation to now", func() {
				So(report.ReportPeriod.StartDate, ShouldEqual, store.ws.CreatedAt)
				So(report.ReportPeriod.EndDate, ShouldEqual, fixedNow)
				So(report.ProgressTrends, ShouldHaveLength, 3)
			})

			Convey("And every section is populated deterministically", func() {
				So(report.TaskStats.Total, ShouldEqual, 1)
				So(report.TeamActivity.TotalMembers, ShouldEqual, 1)
				So(report.HealthIndicators.HealthScore, ShouldBeBetweenOrEqual, 0, 100)
				So(report.WorkloadDistribution.ByMember, ShouldHaveLength, 1)
				So(report.CollaborationPatterns.MessageVolume, ShouldEqual, 0)
				So(report.CollaborationPatterns.TaskHandoffs, ShouldBeEmpty)
				So(report.Recommendations, ShouldNotBeNil)
			})
		})

		Convey("When a record store read fails the whole report fails", func() {
			store.tasksErr = fmt.Errorf("connection reset")
			_, err := svc.WorkspaceAnalytics(context.Background(), workspaceID, memberID)
			So(err, ShouldNotBeNil)
		})
	})
}
