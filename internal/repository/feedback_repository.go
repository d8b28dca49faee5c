package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

// FeedbackRepository encapsulates feedback persistence.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) error
	ListByTicket(ctx context.Context, ticketID string, limit, offset int) ([]domain.Feedback, error)
}

type feedbackRepository struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository instantiates repository.
func NewFeedbackRepository(pool *pgxpool.Pool) FeedbackRepository {
	return &feedbackRepository{pool: pool}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	const query = `
        INSERT INTO ticket_feedback (id, ticket_id, classification_correct, draft_helpful, comment)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING created_at`
	return r.pool.QueryRow(ctx, query,
		feedback.ID,
		feedback.TicketID,
		feedback.ClassificationCorrect,
		feedback.DraftHelpful,
		feedback.Comment,
	).Scan(&feedback.CreatedAt)
}

func (r *feedbackRepository) ListByTicket(ctx context.Context, ticketID string, limit, offset int) ([]domain.Feedback, error) {
	const query = `
        SELECT id, ticket_id, classification_correct, draft_helpful, comment, created_at
        FROM ticket_feedback
        WHERE ticket_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, ticketID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Feedback, 0)
	for rows.Next() {
		var fb domain.Feedback
		if err := rows.Scan(&fb.ID, &fb.TicketID, &fb.ClassificationCorrect, &fb.DraftHelpful, &fb.Comment, &fb.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, fb)
	}
	return items, rows.Err()
}
