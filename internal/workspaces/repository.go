package workspaces

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventlens/backend/internal/models"
)

// Repository handles workspace, task and team membership reads.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a workspaces repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetByID returns a workspace with its event's name and dates joined in, or
// (nil, nil) when the id does not resolve.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Workspace, error) {
	const q = `SELECT w.id, w.event_id, w.name, e.name, e.starts_at, e.ends_at, w.created_at
		FROM workspaces w
		INNER JOIN events e ON e.id = w.event_id
		WHERE w.id = $1`
	var ws models.Workspace
	err := r.pool.QueryRow(ctx, q, id).Scan(&ws.ID, &ws.EventID, &ws.Name, &ws.EventName, &ws.EventStartsAt, &ws.EventEndsAt, &ws.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

// ListTasks returns all tasks of a workspace ordered by creation time.
func (r *Repository) ListTasks(ctx context.Context, workspaceID uuid.UUID) ([]models.WorkspaceTask, error) {
	const q = `SELECT id, workspace_id, title, status, priority, COALESCE(category, ''), assignee_id,
			due_date, created_at, updated_at, completed_at
		FROM workspace_tasks WHERE workspace_id = $1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, q, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.WorkspaceTask
	for rows.Next() {
		var t models.WorkspaceTask
		if err := rows.Scan(&t.ID, &t.WorkspaceID, &t.Title, &t.Status, &t.Priority, &t.Category,
			&t.AssigneeID, &t.DueDate, &t.CreatedAt, &t.UpdatedAt, &t.CompletedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// ListTeamMembers returns the members of a workspace in join order, with
// display names joined in. An empty statusFilter returns all members.
func (r *Repository) ListTeamMembers(ctx context.Context, workspaceID uuid.UUID, statusFilter models.MemberStatus) ([]models.TeamMember, error) {
	q := `SELECT m.id, m.workspace_id, m.user_id, u.full_name, m.role, m.status, m.joined_at
		FROM team_members m
		INNER JOIN users u ON u.id = m.user_id
		WHERE m.workspace_id = $1`
	args := []any{workspaceID}
	if statusFilter != "" {
		q += ` AND m.status = $2`
		args = append(args, statusFilter)
	}
	q += ` ORDER BY m.joined_at ASC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.TeamMember
	for rows.Next() {
		var m models.TeamMember
		if err := rows.Scan(&m.ID, &m.WorkspaceID, &m.UserID, &m.DisplayName, &m.Role, &m.Status, &m.JoinedAt); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// IsMember reports whether the user belongs to the workspace in any status.
func (r *Repository) IsMember(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM team_members WHERE workspace_id = $1 AND user_id = $2)`
	var ok bool
	err := r.pool.QueryRow(ctx, q, workspaceID, userID).Scan(&ok)
	return ok, err
}
