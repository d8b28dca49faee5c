package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

// AssignmentRepository encapsulates assignment persistence.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.Assignment) error
	ListByTeam(ctx context.Context, teamID string, limit, offset int) ([]domain.Assignment, error)
}

type assignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository instantiates repository.
func NewAssignmentRepository(pool *pgxpool.Pool) AssignmentRepository {
	return &assignmentRepository{pool: pool}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *domain.Assignment) error {
	const query = `
        INSERT INTO ticket_assignments (id, ticket_id, team_id, team_name, draft)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING created_at`
	return r.pool.QueryRow(ctx, query,
		assignment.ID,
		assignment.TicketID,
		assignment.TeamID,
		assignment.TeamName,
		assignment.Draft,
	).Scan(&assignment.CreatedAt)
}

func (r *assignmentRepository) ListByTeam(ctx context.Context, teamID string, limit, offset int) ([]domain.Assignment, error) {
	const query = `
        SELECT id, ticket_id, team_id, team_name, draft, created_at
        FROM ticket_assignments
        WHERE team_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, teamID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Assignment, 0)
	for rows.Next() {
		var a domain.Assignment
		if err := rows.Scan(&a.ID, &a.TicketID, &a.TeamID, &a.TeamName, &a.Draft, &a.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
