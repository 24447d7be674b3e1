// Package eventanalytics derives registration, check-in, scoring and judge
// statistics for a single event from record-store reads. All computations are
// read-only projections recomputed on every call; nothing is persisted.
package eventanalytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eventlens/backend/internal/models"
	"github.com/eventlens/backend/pkg/metrics"
)

const dateLayout = "2006-01-02"

// scoreBucketRanges are the fixed distribution buckets. The last bucket is
// inclusive of 100 so a perfect score is never dropped.
var scoreBucketRanges = [5]string{"0-20", "20-40", "40-60", "60-80", "80-100"}

// EventStore resolves events. GetByID returns (nil, nil) when absent.
type EventStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
}

// RegistrationStore lists registrations with nested attendance.
type RegistrationStore interface {
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Registration, error)
	ListConfirmedByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Registration, error)
}

// SubmissionStore lists submissions with nested scores and resolves rubrics.
// GetRubric returns (nil, nil) when the event has no rubric.
type SubmissionStore interface {
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Submission, error)
	GetRubric(ctx context.Context, eventID uuid.UUID) (*models.Rubric, error)
}

// AssignmentSource resolves how many submissions a judge was assigned. There
// is no assignment ledger today, so the default approximates with the total
// submission count of the event; a real ledger can be plugged in without
// changing the service contract.
type AssignmentSource interface {
	AssignedSubmissions(ctx context.Context, eventID, judgeID uuid.UUID) (int, error)
}

// Option configures a Service.
type Option func(*Service)

// WithAssignmentSource replaces the default total-submissions approximation.
func WithAssignmentSource(src AssignmentSource) Option {
	return func(s *Service) { s.assignments = src }
}

// WithNow overrides the clock, mainly for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service computes event analytics from record-store reads.
type Service struct {
	events        EventStore
	registrations RegistrationStore
	submissions   SubmissionStore
	assignments   AssignmentSource
	logger        *zap.Logger
	now           func() time.Time
}

// NewService creates an event analytics service.
func NewService(events EventStore, registrations RegistrationStore, submissions SubmissionStore, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		events:        events,
		registrations: registrations,
		submissions:   submissions,
		logger:        logger,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegistrationsOverTime groups registrations by UTC calendar day and returns
// one point per day present, ascending, with a running cumulative count.
func (s *Service) RegistrationsOverTime(ctx context.Context, eventID uuid.UUID) ([]RegistrationPoint, error) {
	regs, err := s.registrations.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	counts := make(map[string]int)
	for _, reg := range regs {
		counts[reg.RegisteredAt.UTC().Format(dateLayout)]++
	}
	dates := make([]string, 0, len(counts))
	for d := range counts {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	points := make([]RegistrationPoint, 0, len(dates))
	cumulative := 0
	for _, d := range dates {
		cumulative += counts[d]
		points = append(points, RegistrationPoint{Date: d, Count: counts[d], CumulativeCount: cumulative})
	}
	return points, nil
}

// CheckInRatesBySession computes per-session check-in rates over CONFIRMED
// registrations. The first row is the overall event (nil session); one row
// follows per distinct session observed in attendance. Every row shares the
// confirmed-registration denominator.
func (s *Service) CheckInRatesBySession(ctx context.Context, eventID uuid.UUID) ([]SessionCheckInRate, error) {
	regs, err := s.registrations.ListConfirmedByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list confirmed registrations: %w", err)
	}
	total := len(regs)

	type sessionAgg struct {
		name string
		regs map[uuid.UUID]struct{}
	}
	sessions := make(map[uuid.UUID]*sessionAgg)
	overall := 0
	for _, reg := range regs {
		if len(reg.Attendance) > 0 {
			overall++
		}
		for _, att := range reg.Attendance {
			if att.SessionID == nil {
				continue
			}
			agg, ok := sessions[*att.SessionID]
			if !ok {
				agg = &sessionAgg{name: att.SessionName, regs: make(map[uuid.UUID]struct{})}
				sessions[*att.SessionID] = agg
			}
			agg.regs[reg.ID] = struct{}{}
		}
	}

	rows := make([]SessionCheckInRate, 0, len(sessions)+1)
	rows = append(rows, SessionCheckInRate{
		SessionID:          nil,
		SessionName:        "Overall Event",
		TotalRegistrations: total,
		CheckedIn:          overall,
		CheckInRate:        percent(overall, total),
	})
	for id, agg := range sessions {
		sid := id
		rows = append(rows, SessionCheckInRate{
			SessionID:          &sid,
			SessionName:        agg.name,
			TotalRegistrations: total,
			CheckedIn:          len(agg.regs),
			CheckInRate:        percent(len(agg.regs), total),
		})
	}
	sort.Slice(rows[1:], func(i, j int) bool {
		a, b := rows[i+1], rows[j+1]
		if a.SessionName != b.SessionName {
			return a.SessionName < b.SessionName
		}
		return a.SessionID.String() < b.SessionID.String()
	})
	return rows, nil
}

// ScoreDistributions buckets per-submission final scores into the five fixed
// ranges. Returns an empty slice when the event has no rubric or no
// submission has been scored.
func (s *Service) ScoreDistributions(ctx context.Context, eventID uuid.UUID) ([]ScoreBucket, error) {
	finals, _, hasRubric, err := s.finalScores(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !hasRubric || len(finals) == 0 {
		return []ScoreBucket{}, nil
	}

	var counts [5]int
	for _, score := range finals {
		counts[bucketIndex(score)]++
	}
	buckets := make([]ScoreBucket, 0, len(scoreBucketRanges))
	for i, label := range scoreBucketRanges {
		buckets = append(buckets, ScoreBucket{
			Range:      label,
			Count:      counts[i],
			Percentage: percent(counts[i], len(finals)),
		})
	}
	return buckets, nil
}

// JudgeParticipation reports scoring coverage per judge that scored at least
// one submission, ordered by judge name.
func (s *Service) JudgeParticipation(ctx context.Context, eventID uuid.UUID) ([]JudgeParticipation, error) {
	subs, err := s.submissions.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	type judgeAgg struct {
		name   string
		scored map[uuid.UUID]struct{}
	}
	judges := make(map[uuid.UUID]*judgeAgg)
	for _, sub := range subs {
		for _, score := range sub.Scores {
			agg, ok := judges[score.JudgeID]
			if !ok {
				agg = &judgeAgg{name: score.JudgeName, scored: make(map[uuid.UUID]struct{})}
				judges[score.JudgeID] = agg
			}
			agg.scored[sub.ID] = struct{}{}
		}
	}

	rows := make([]JudgeParticipation, 0, len(judges))
	for id, agg := range judges {
		assigned := len(subs)
		if s.assignments != nil {
			assigned, err = s.assignments.AssignedSubmissions(ctx, eventID, id)
			if err != nil {
				return nil, fmt.Errorf("assigned submissions for judge %s: %w", id, err)
			}
		}
		rows = append(rows, JudgeParticipation{
			JudgeID:             id,
			JudgeName:           agg.name,
			AssignedSubmissions: assigned,
			ScoredSubmissions:   len(agg.scored),
			CompletionRate:      percent(len(agg.scored), assigned),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].JudgeName != rows[j].JudgeName {
			return rows[i].JudgeName < rows[j].JudgeName
		}
		return rows[i].JudgeID.String() < rows[j].JudgeID.String()
	})
	return rows, nil
}

// ComprehensiveReport assembles the full analytics report. The event lookup
// happens first; the four sub-reports and the summary block then run
// concurrently, and any branch failure fails the whole report.
func (s *Service) ComprehensiveReport(ctx context.Context, eventID uuid.UUID) (*Report, error) {
	started := s.now()
	ev, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if ev == nil {
		return nil, ErrEventNotFound
	}

	report := &Report{EventID: ev.ID, EventName: ev.Name}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		report.RegistrationsOverTime, err = s.RegistrationsOverTime(gctx, eventID)
		return err
	})
	g.Go(func() error {
		var err error
		report.SessionCheckInRates, err = s.CheckInRatesBySession(gctx, eventID)
		return err
	})
	g.Go(func() error {
		var err error
		report.ScoreDistributions, err = s.ScoreDistributions(gctx, eventID)
		return err
	})
	g.Go(func() error {
		var err error
		report.JudgeParticipation, err = s.JudgeParticipation(gctx, eventID)
		return err
	})
	g.Go(func() error {
		var err error
		report.Summary, err = s.summary(gctx, eventID)
		return err
	})
	if err := g.Wait(); err != nil {
		metrics.ReportFailed(metrics.ReportEvent)
		return nil, err
	}

	report.GeneratedAt = s.now()
	metrics.ReportGenerated(metrics.ReportEvent, s.now().Sub(started))
	return report, nil
}

func (s *Service) summary(ctx context.Context, eventID uuid.UUID) (Summary, error) {
	regs, err := s.registrations.ListByEvent(ctx, eventID)
	if err != nil {
		return Summary{}, fmt.Errorf("list registrations: %w", err)
	}
	var confirmed, attended int
	for _, reg := range regs {
		if reg.Status == models.RegistrationConfirmed {
			confirmed++
		}
		if len(reg.Attendance) > 0 {
			attended++
		}
	}

	finals, totalSubs, _, err := s.finalScores(ctx, eventID)
	if err != nil {
		return Summary{}, err
	}
	var avg float64
	if len(finals) > 0 {
		var sum float64
		for _, f := range finals {
			sum += f
		}
		avg = sum / float64(len(finals))
	}

	return Summary{
		TotalRegistrations:     len(regs),
		ConfirmedRegistrations: confirmed,
		AttendedRegistrations:  attended,
		CheckInRate:            percent(attended, confirmed),
		TotalSubmissions:       totalSubs,
		ScoredSubmissions:      len(finals),
		AverageScore:           avg,
	}, nil
}

// finalScores computes one weighted final score per scored submission:
// normalize each criterion's raw score against its max, multiply by its
// weight, sum across criteria, average across judges. Submissions with no
// scores are skipped.
func (s *Service) finalScores(ctx context.Context, eventID uuid.UUID) (finals []float64, totalSubmissions int, hasRubric bool, err error) {
	rubric, err := s.submissions.GetRubric(ctx, eventID)
	if err != nil {
		return nil, 0, false, fmt.Errorf("get rubric: %w", err)
	}
	if rubric == nil {
		return nil, 0, false, nil
	}
	if sum := rubric.WeightSum(); math.Abs(sum-100) > 1e-9 {
		s.logger.Warn("rubric weights do not sum to 100",
			zap.String("event_id", eventID.String()),
			zap.Float64("weight_sum", sum),
		)
	}

	subs, err := s.submissions.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, 0, false, fmt.Errorf("list submissions: %w", err)
	}
	for _, sub := range subs {
		if len(sub.Scores) == 0 {
			continue
		}
		var total float64
		for _, score := range sub.Scores {
			total += weightedTotal(rubric, score)
		}
		finals = append(finals, total/float64(len(sub.Scores)))
	}
	return finals, len(subs), true, nil
}

// weightedTotal is one judge's weighted score: sum over criteria of
// (raw / maxScore) * weight, with a missing raw score treated as 0.
func weightedTotal(rubric *models.Rubric, score models.Score) float64 {
	var total float64
	for _, c := range rubric.Criteria {
		if c.MaxScore <= 0 {
			continue
		}
		total += score.Criteria[c.ID] / c.MaxScore * c.Weight
	}
	return total
}

// bucketIndex maps a final score to its distribution bucket. The last bucket
// covers [80,100] inclusive.
func bucketIndex(score float64) int {
	switch {
	case score < 20:
		return 0
	case score < 40:
		return 1
	case score < 60:
		return 2
	case score < 80:
		return 3
	default:
		return 4
	}
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
