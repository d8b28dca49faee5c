package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-triage/internal/api/dto"
	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/llm"
	"github.com/spec-kit/ticket-triage/internal/pipeline"
	"github.com/spec-kit/ticket-triage/internal/routing"
	"github.com/spec-kit/ticket-triage/internal/service"
	apperrors "github.com/spec-kit/ticket-triage/pkg/util/errorutil"
)

// TicketsHandler manages the ticket triage endpoints.
type TicketsHandler struct {
	triage       *service.TriageService
	orchestrator *pipeline.Orchestrator
	analyzer     llm.Analyzer
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(triage *service.TriageService, orchestrator *pipeline.Orchestrator, analyzer llm.Analyzer) *TicketsHandler {
	return &TicketsHandler{triage: triage, orchestrator: orchestrator, analyzer: analyzer}
}

// ProcessTicket POST /api/tickets/process.
func (h *TicketsHandler) ProcessTicket(c *fiber.Ctx) error {
	var req dto.ProcessTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.TicketText) == "" {
		return apperrors.NewValidationError("ticketText is required and cannot be empty", nil)
	}
	result, err := h.triage.ProcessTicket(c.UserContext(), req.TicketText)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// Classify POST /api/tickets/classify.
func (h *TicketsHandler) Classify(c *fiber.Ctx) error {
	text, err := parseTextBody(c)
	if err != nil {
		return err
	}
	classification, err := h.analyzer.Classify(c.UserContext(), text)
	if err != nil {
		return err
	}
	return c.JSON(classification)
}

// Extract POST /api/tickets/extract.
func (h *TicketsHandler) Extract(c *fiber.Ctx) error {
	text, err := parseTextBody(c)
	if err != nil {
		return err
	}
	fields, err := h.analyzer.ExtractFields(c.UserContext(), text)
	if err != nil {
		return err
	}
	return c.JSON(fields)
}

// Analyze POST /api/tickets/analyze. Runs classify and extract concurrently.
func (h *TicketsHandler) Analyze(c *fiber.Ctx) error {
	text, err := parseTextBody(c)
	if err != nil {
		return err
	}
	result, err := h.orchestrator.Analyze(c.UserContext(), text)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// Draft POST /api/tickets/draft.
func (h *TicketsHandler) Draft(c *fiber.Ctx) error {
	var req dto.DraftRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Text) == "" {
		return apperrors.NewValidationError("missing or empty 'text' in request body", nil)
	}
	if !domain.IsValidCategory(req.Category) || !domain.IsValidSeverity(req.Severity) {
		return apperrors.NewValidationError(
			"missing or invalid 'category' or 'severity'; use values from /api/tickets/classify or /api/tickets/analyze", nil)
	}

	dc := llm.DraftContext{
		Category: domain.TicketCategory(req.Category),
		Severity: domain.TicketSeverity(req.Severity),
	}
	if req.ExtractedFields != nil {
		dc.ExtractedFields = &domain.ExtractedFields{
			CustomerEmail:            req.ExtractedFields.CustomerEmail,
			CustomerID:               req.ExtractedFields.CustomerID,
			OrderID:                  req.ExtractedFields.OrderID,
			ProductOrFeature:         req.ExtractedFields.ProductOrFeature,
			Summary:                  req.ExtractedFields.Summary,
			AffectedComponentOrError: req.ExtractedFields.AffectedComponentOrError,
		}
	}

	draft, err := h.analyzer.ProposeDraft(c.UserContext(), req.Text, dc)
	if err != nil {
		return err
	}
	return c.JSON(dto.DraftResponse{Draft: draft})
}

// Route POST /api/tickets/route. Out-of-domain values normalize to Other/Medium.
func (h *TicketsHandler) Route(c *fiber.Ctx) error {
	var req dto.RouteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	classification := domain.Classification{
		Category: domain.CategoryOther,
		Severity: domain.SeverityMedium,
	}
	if domain.IsValidCategory(req.Category) {
		classification.Category = domain.TicketCategory(req.Category)
	}
	if domain.IsValidSeverity(req.Severity) {
		classification.Severity = domain.TicketSeverity(req.Severity)
	}
	return c.JSON(routing.Route(classification))
}

// Assign POST /api/tickets/assign.
func (h *TicketsHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	assignment, err := h.triage.RecordAssignment(c.UserContext(), service.AssignmentInput{
		TicketID: req.TicketID,
		TeamID:   req.TeamID,
		TeamName: req.TeamName,
		Draft:    req.Draft,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.AckResponse{OK: true, Message: "Assignment recorded.", ID: assignment.ID})
}

// Feedback POST /api/tickets/feedback.
func (h *TicketsHandler) Feedback(c *fiber.Ctx) error {
	var req dto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	feedback, err := h.triage.RecordFeedback(c.UserContext(), service.FeedbackInput{
		TicketID:              req.TicketID,
		ClassificationCorrect: req.ClassificationCorrect,
		DraftHelpful:          req.DraftHelpful,
		Comment:               req.Comment,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.AckResponse{OK: true, Message: "Thank you for your feedback.", ID: feedback.ID})
}

func parseTextBody(c *fiber.Ctx) (string, error) {
	var req dto.TextRequest
	if err := c.BodyParser(&req); err != nil {
		return "", apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Text) == "" {
		return "", apperrors.NewValidationError("missing or empty 'text' in request body", nil)
	}
	return req.Text, nil
}
