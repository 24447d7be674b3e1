package events

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventlens/backend/internal/models"
)

// Repository handles event persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an events repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetByID returns an event, or (nil, nil) when the id does not resolve.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	const q = `SELECT id, name, description, starts_at, ends_at, created_at, updated_at
		FROM events WHERE id = $1`
	var ev models.Event
	err := r.pool.QueryRow(ctx, q, id).Scan(&ev.ID, &ev.Name, &ev.Description, &ev.StartsAt, &ev.EndsAt, &ev.CreatedAt, &ev.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// List returns all events, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Event, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description, starts_at, ends_at, created_at, updated_at
		FROM events ORDER BY starts_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Event
	for rows.Next() {
		var ev models.Event
		if err := rows.Scan(&ev.ID, &ev.Name, &ev.Description, &ev.StartsAt, &ev.EndsAt, &ev.CreatedAt, &ev.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, ev)
	}
	return list, rows.Err()
}

// ListSessions returns the named sessions of an event.
func (r *Repository) ListSessions(ctx context.Context, eventID uuid.UUID) ([]models.EventSession, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, event_id, name FROM event_sessions WHERE event_id = $1 ORDER BY name`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.EventSession
	for rows.Next() {
		var s models.EventSession
		if err := rows.Scan(&s.ID, &s.EventID, &s.Name); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
