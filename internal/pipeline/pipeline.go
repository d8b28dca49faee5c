// Package pipeline orchestrates the ticket intake flow:
// classify + extract (parallel) -> signature/dedup -> draft (parallel with
// routing) -> assembled result.
package pipeline

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/ticket-triage/internal/dedupe"
	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/llm"
	"github.com/spec-kit/ticket-triage/internal/observability"
	"github.com/spec-kit/ticket-triage/internal/routing"
	apperrors "github.com/spec-kit/ticket-triage/pkg/util/errorutil"
)

// Orchestrator runs the end-to-end ticket intake operation.
type Orchestrator struct {
	analyzer llm.Analyzer
	registry dedupe.Registry
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// Dependencies bundles collaborators for the orchestrator.
type Dependencies struct {
	Analyzer llm.Analyzer
	Registry dedupe.Registry
	Logger   *zap.Logger
	Metrics  *observability.Metrics
}

// NewOrchestrator constructs the pipeline.
func NewOrchestrator(deps Dependencies) *Orchestrator {
	return &Orchestrator{
		analyzer: deps.Analyzer,
		registry: deps.Registry,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
	}
}

// AnalyzeResult pairs the two independent understanding calls.
type AnalyzeResult struct {
	Classification  domain.Classification `json:"classification"`
	ExtractedFields domain.ExtractedFields `json:"extractedFields"`
}

// Analyze runs classification and field extraction concurrently. Either call
// failing fails the whole analysis.
func (o *Orchestrator) Analyze(ctx context.Context, ticketText string) (AnalyzeResult, error) {
	var result AnalyzeResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		classification, err := o.analyzer.Classify(gctx, ticketText)
		o.metrics.RecordPipelineStep("classify", err != nil)
		if err != nil {
			return err
		}
		result.Classification = classification
		return nil
	})
	g.Go(func() error {
		fields, err := o.analyzer.ExtractFields(gctx, ticketText)
		o.metrics.RecordPipelineStep("extract", err != nil)
		if err != nil {
			return err
		}
		result.ExtractedFields = fields
		return nil
	})
	if err := g.Wait(); err != nil {
		return AnalyzeResult{}, err
	}
	return result, nil
}

// ProcessTicket runs the full intake pipeline for one ticket. Any provider
// failure aborts the whole invocation; signature, dedup and routing steps
// never fail it.
func (o *Orchestrator) ProcessTicket(ctx context.Context, ticketText string) (domain.ProcessTicketResult, error) {
	if strings.TrimSpace(ticketText) == "" {
		return domain.ProcessTicketResult{}, apperrors.NewValidationError("ticketText is required and cannot be empty", nil)
	}

	analysis, err := o.Analyze(ctx, ticketText)
	if err != nil {
		return domain.ProcessTicketResult{}, err
	}

	deduplication := o.deduplicate(ctx, ticketText)

	// Draft depends on the analysis; routing and dedup do not depend on the
	// draft, so only the draft call runs on the group here.
	var draft string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, derr := o.analyzer.ProposeDraft(gctx, ticketText, llm.DraftContext{
			Category:        analysis.Classification.Category,
			Severity:        analysis.Classification.Severity,
			ExtractedFields: &analysis.ExtractedFields,
		})
		o.metrics.RecordPipelineStep("draft", derr != nil)
		if derr != nil {
			return derr
		}
		draft = d
		return nil
	})
	routingResult := routing.Route(analysis.Classification)
	if err := g.Wait(); err != nil {
		return domain.ProcessTicketResult{}, err
	}

	result := domain.ProcessTicketResult{
		Classification:  analysis.Classification,
		ExtractedFields: analysis.ExtractedFields,
		Draft:           draft,
		Routing:         routingResult,
		Deduplication:   deduplication,
	}

	o.logger.Info("ticket processed",
		zap.String("category", string(result.Classification.Category)),
		zap.String("severity", string(result.Classification.Severity)),
		zap.String("team_id", result.Routing.TeamID),
		zap.Bool("possible_duplicate", result.Deduplication.IsPossibleDuplicate))
	return result, nil
}

// deduplicate computes the signature and consults the registry. Registry
// errors (possible with the Redis backend) degrade to "no dedup" rather than
// failing the pipeline.
func (o *Orchestrator) deduplicate(ctx context.Context, ticketText string) domain.DeduplicationResult {
	signature := dedupe.BuildSignature(ticketText)
	if signature == "" {
		return domain.DeduplicationResult{IsPossibleDuplicate: false}
	}

	relatedID, err := o.registry.FindPossibleDuplicate(ctx, signature)
	if err != nil {
		o.logger.Warn("dedup lookup failed", zap.Error(err))
		return domain.DeduplicationResult{IsPossibleDuplicate: false}
	}
	if relatedID != "" {
		return domain.DeduplicationResult{IsPossibleDuplicate: true, RelatedTicketID: relatedID}
	}

	currentID, err := o.registry.RecordTicket(ctx, signature)
	if err != nil {
		o.logger.Warn("dedup record failed", zap.Error(err))
		return domain.DeduplicationResult{IsPossibleDuplicate: false}
	}
	return domain.DeduplicationResult{IsPossibleDuplicate: false, CurrentTicketID: currentID}
}
