package events

import (
	"time"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketProcessed   EventType = "ticket_processed"
	EventDuplicateDetected EventType = "duplicate_detected"
	EventTicketAssigned    EventType = "ticket_assigned"
	EventFeedbackRecorded  EventType = "feedback_recorded"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketProcessedPayload payload.
type TicketProcessedPayload struct {
	Category domain.TicketCategory      `json:"category"`
	Severity domain.TicketSeverity      `json:"severity"`
	TeamID   string                     `json:"team_id"`
	Dedup    domain.DeduplicationResult `json:"deduplication"`
}

// DuplicateDetectedPayload payload.
type DuplicateDetectedPayload struct {
	RelatedTicketID string `json:"related_ticket_id"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	TeamID      string  `json:"team_id"`
	TeamName    *string `json:"team_name,omitempty"`
	DraftLength int     `json:"draft_length"`
}

// FeedbackRecordedPayload payload.
type FeedbackRecordedPayload struct {
	ClassificationCorrect *bool  `json:"classification_correct,omitempty"`
	DraftHelpful          *bool  `json:"draft_helpful,omitempty"`
	CommentPreview        string `json:"comment_preview,omitempty"`
}
