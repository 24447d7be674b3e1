package submissions

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventlens/backend/internal/models"
)

// Repository handles submission, score and rubric reads.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a submissions repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListByEvent returns all submissions of an event, each with its judge scores
// attached. The per-criterion raw scores are stored as JSONB and scanned into
// the score's criterion map.
func (r *Repository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Submission, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, event_id, title, COALESCE(team_name, ''), submitted_at
		FROM submissions WHERE event_id = $1 ORDER BY submitted_at ASC`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Submission
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var sub models.Submission
		if err := rows.Scan(&sub.ID, &sub.EventID, &sub.Title, &sub.TeamName, &sub.SubmittedAt); err != nil {
			return nil, err
		}
		index[sub.ID] = len(list)
		list = append(list, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	const scoreQ = `SELECT sc.id, sc.submission_id, sc.judge_id, u.full_name, sc.criterion_scores, sc.submitted_at
		FROM scores sc
		INNER JOIN submissions sub ON sub.id = sc.submission_id
		INNER JOIN users u ON u.id = sc.judge_id
		WHERE sub.event_id = $1
		ORDER BY sc.submitted_at ASC`
	scoreRows, err := r.pool.Query(ctx, scoreQ, eventID)
	if err != nil {
		return nil, err
	}
	defer scoreRows.Close()
	for scoreRows.Next() {
		var s models.Score
		if err := scoreRows.Scan(&s.ID, &s.SubmissionID, &s.JudgeID, &s.JudgeName, &s.Criteria, &s.SubmittedAt); err != nil {
			return nil, err
		}
		if i, ok := index[s.SubmissionID]; ok {
			list[i].Scores = append(list[i].Scores, s)
		}
	}
	return list, scoreRows.Err()
}

// GetRubric returns the event's rubric with criteria in display order, or
// (nil, nil) when the event has no rubric.
func (r *Repository) GetRubric(ctx context.Context, eventID uuid.UUID) (*models.Rubric, error) {
	const q = `SELECT id, event_id FROM rubrics WHERE event_id = $1`
	var rubric models.Rubric
	err := r.pool.QueryRow(ctx, q, eventID).Scan(&rubric.ID, &rubric.EventID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	const critQ = `SELECT criterion_id, name, max_score, weight
		FROM rubric_criteria WHERE rubric_id = $1 ORDER BY position ASC`
	rows, err := r.pool.Query(ctx, critQ, rubric.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var c models.Criterion
		if err := rows.Scan(&c.ID, &c.Name, &c.MaxScore, &c.Weight); err != nil {
			return nil, err
		}
		rubric.Criteria = append(rubric.Criteria, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &rubric, nil
}
