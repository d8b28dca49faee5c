package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/events"
	"github.com/spec-kit/ticket-triage/internal/pipeline"
	"github.com/spec-kit/ticket-triage/internal/repository"
	apperrors "github.com/spec-kit/ticket-triage/pkg/util/errorutil"
)

// TriageService coordinates ticket intake, assignment and feedback workflows.
type TriageService struct {
	orchestrator *pipeline.Orchestrator
	feedback     repository.FeedbackRepository
	assignments  repository.AssignmentRepository
	dispatcher   events.Dispatcher
}

// TriageDependencies bundles collaborators for the triage service. Repositories
// may be nil when postgres is unconfigured; recording then degrades to events
// and logs only.
type TriageDependencies struct {
	Orchestrator   *pipeline.Orchestrator
	FeedbackRepo   repository.FeedbackRepository
	AssignmentRepo repository.AssignmentRepository
	Dispatcher     events.Dispatcher
}

// FeedbackInput describes a feedback submission.
type FeedbackInput struct {
	TicketID              *string
	ClassificationCorrect *bool
	DraftHelpful          *bool
	Comment               *string
}

// AssignmentInput describes an assignment submission.
type AssignmentInput struct {
	TicketID *string
	TeamID   string
	TeamName *string
	Draft    string
}

// NewTriageService constructs the service.
func NewTriageService(deps TriageDependencies) *TriageService {
	return &TriageService{
		orchestrator: deps.Orchestrator,
		feedback:     deps.FeedbackRepo,
		assignments:  deps.AssignmentRepo,
		dispatcher:   deps.Dispatcher,
	}
}

// ProcessTicket runs the intake pipeline and emits domain events for the outcome.
func (s *TriageService) ProcessTicket(ctx context.Context, ticketText string) (domain.ProcessTicketResult, error) {
	result, err := s.orchestrator.ProcessTicket(ctx, ticketText)
	if err != nil {
		return domain.ProcessTicketResult{}, err
	}

	ticketID := result.Deduplication.CurrentTicketID
	if ticketID == "" {
		ticketID = result.Deduplication.RelatedTicketID
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketProcessed,
		TicketID: ticketID,
		Payload: events.TicketProcessedPayload{
			Category: result.Classification.Category,
			Severity: result.Classification.Severity,
			TeamID:   result.Routing.TeamID,
			Dedup:    result.Deduplication,
		},
	})
	if result.Deduplication.IsPossibleDuplicate {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventDuplicateDetected,
			TicketID: result.Deduplication.RelatedTicketID,
			Payload: events.DuplicateDetectedPayload{
				RelatedTicketID: result.Deduplication.RelatedTicketID,
			},
		})
	}
	return result, nil
}

// RecordFeedback validates and stores feedback on a processed ticket. At least
// one of the three signals must be present.
func (s *TriageService) RecordFeedback(ctx context.Context, input FeedbackInput) (*domain.Feedback, error) {
	hasComment := input.Comment != nil && strings.TrimSpace(*input.Comment) != ""
	if input.ClassificationCorrect == nil && input.DraftHelpful == nil && !hasComment {
		return nil, apperrors.NewValidationError(
			"provide at least one of: classificationCorrect, draftHelpful, comment", nil)
	}

	feedback := &domain.Feedback{
		ID:                    uuid.NewString(),
		TicketID:              input.TicketID,
		ClassificationCorrect: input.ClassificationCorrect,
		DraftHelpful:          input.DraftHelpful,
		Comment:               trimmedOrNil(input.Comment),
		CreatedAt:             time.Now(),
	}
	if s.feedback != nil {
		if err := s.feedback.Create(ctx, feedback); err != nil {
			return nil, err
		}
	}

	payload := events.FeedbackRecordedPayload{
		ClassificationCorrect: feedback.ClassificationCorrect,
		DraftHelpful:          feedback.DraftHelpful,
	}
	if feedback.Comment != nil {
		payload.CommentPreview = stringPreview(*feedback.Comment, 200)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventFeedbackRecorded,
		TicketID: stringOrEmpty(feedback.TicketID),
		Payload:  payload,
	})
	return feedback, nil
}

// RecordAssignment validates and stores a human assignment decision. The draft
// is never sent automatically; this only records the handoff.
func (s *TriageService) RecordAssignment(ctx context.Context, input AssignmentInput) (*domain.Assignment, error) {
	if strings.TrimSpace(input.Draft) == "" || strings.TrimSpace(input.TeamID) == "" {
		return nil, apperrors.NewValidationError("draft and teamId are required", nil)
	}

	assignment := &domain.Assignment{
		ID:        uuid.NewString(),
		TicketID:  input.TicketID,
		TeamID:    strings.TrimSpace(input.TeamID),
		TeamName:  trimmedOrNil(input.TeamName),
		Draft:     strings.TrimSpace(input.Draft),
		CreatedAt: time.Now(),
	}
	if s.assignments != nil {
		if err := s.assignments.Create(ctx, assignment); err != nil {
			return nil, err
		}
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: stringOrEmpty(assignment.TicketID),
		Payload: events.TicketAssignedPayload{
			TeamID:      assignment.TeamID,
			TeamName:    assignment.TeamName,
			DraftLength: len(assignment.Draft),
		},
	})
	return assignment, nil
}

func (s *TriageService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	t := strings.TrimSpace(*value)
	if t == "" {
		return nil
	}
	return &t
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
