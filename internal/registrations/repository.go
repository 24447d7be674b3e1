package registrations

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventlens/backend/internal/models"
)

// Repository handles registration reads, with attendance rows nested onto
// each registration.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a registrations repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListByEvent returns all registrations of an event ordered by registration
// time, each with its attendance records attached.
func (r *Repository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Registration, error) {
	return r.list(ctx, eventID, "")
}

// ListConfirmedByEvent returns only CONFIRMED registrations, each with its
// attendance records attached.
func (r *Repository) ListConfirmedByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Registration, error) {
	return r.list(ctx, eventID, models.RegistrationConfirmed)
}

func (r *Repository) list(ctx context.Context, eventID uuid.UUID, status models.RegistrationStatus) ([]models.Registration, error) {
	q := `SELECT id, event_id, user_id, status, registered_at FROM registrations WHERE event_id = $1`
	args := []any{eventID}
	if status != "" {
		q += ` AND status = $2`
		args = append(args, status)
	}
	q += ` ORDER BY registered_at ASC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Registration
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var reg models.Registration
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.Status, &reg.RegisteredAt); err != nil {
			return nil, err
		}
		index[reg.ID] = len(list)
		list = append(list, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	const attQ = `SELECT a.id, a.registration_id, a.session_id, COALESCE(s.name, ''), a.checked_in_at, a.method
		FROM attendance a
		LEFT JOIN event_sessions s ON s.id = a.session_id
		INNER JOIN registrations reg ON reg.id = a.registration_id
		WHERE reg.event_id = $1
		ORDER BY a.checked_in_at ASC`
	attRows, err := r.pool.Query(ctx, attQ, eventID)
	if err != nil {
		return nil, err
	}
	defer attRows.Close()
	for attRows.Next() {
		var a models.Attendance
		if err := attRows.Scan(&a.ID, &a.RegistrationID, &a.SessionID, &a.SessionName, &a.CheckedInAt, &a.Method); err != nil {
			return nil, err
		}
		if i, ok := index[a.RegistrationID]; ok {
			list[i].Attendance = append(list[i].Attendance, a)
		}
	}
	return list, attRows.Err()
}
