package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/dedupe"
	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/llm"
	"github.com/spec-kit/ticket-triage/internal/observability"
	apperrors "github.com/spec-kit/ticket-triage/pkg/util/errorutil"
)

type fakeAnalyzer struct {
	classification domain.Classification
	fields         domain.ExtractedFields
	draft          string

	classifyErr error
	extractErr  error
	draftErr    error

	draftContexts []llm.DraftContext
}

func (f *fakeAnalyzer) Classify(ctx context.Context, text string) (domain.Classification, error) {
	if f.classifyErr != nil {
		return domain.Classification{}, f.classifyErr
	}
	return f.classification, nil
}

func (f *fakeAnalyzer) ExtractFields(ctx context.Context, text string) (domain.ExtractedFields, error) {
	if f.extractErr != nil {
		return domain.ExtractedFields{}, f.extractErr
	}
	return f.fields, nil
}

func (f *fakeAnalyzer) ProposeDraft(ctx context.Context, text string, dc llm.DraftContext) (string, error) {
	f.draftContexts = append(f.draftContexts, dc)
	if f.draftErr != nil {
		return "", f.draftErr
	}
	return f.draft, nil
}

type failingRegistry struct{}

func (failingRegistry) FindPossibleDuplicate(context.Context, string) (string, error) {
	return "", errors.New("backend unavailable")
}

func (failingRegistry) RecordTicket(context.Context, string) (string, error) {
	return "", errors.New("backend unavailable")
}

func newTestOrchestrator(analyzer llm.Analyzer, registry dedupe.Registry) *Orchestrator {
	return NewOrchestrator(Dependencies{
		Analyzer: analyzer,
		Registry: registry,
		Logger:   zap.NewNop(),
		Metrics:  observability.NewMetrics(),
	})
}

func TestProcessTicket_FullResult(t *testing.T) {
	orderID := "12345"
	email := "john@example.com"
	analyzer := &fakeAnalyzer{
		classification: domain.Classification{Category: domain.CategoryBilling, Severity: domain.SeverityHigh},
		fields:         domain.ExtractedFields{OrderID: &orderID, CustomerEmail: &email},
		draft:          "We're looking into the duplicate charge for order #12345.",
	}
	orchestrator := newTestOrchestrator(analyzer, dedupe.NewMemoryRegistry())

	result, err := orchestrator.ProcessTicket(context.Background(),
		"I was charged twice for order #12345 on March 1st. Contact me at john@example.com.")
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryBilling, result.Classification.Category)
	require.NotNil(t, result.ExtractedFields.OrderID)
	assert.Contains(t, *result.ExtractedFields.OrderID, "12345")
	require.NotNil(t, result.ExtractedFields.CustomerEmail)
	assert.Equal(t, "john@example.com", *result.ExtractedFields.CustomerEmail)
	assert.Equal(t, "billing", result.Routing.TeamID)
	assert.NotEmpty(t, result.Draft)

	assert.False(t, result.Deduplication.IsPossibleDuplicate)
	assert.NotEmpty(t, result.Deduplication.CurrentTicketID)
	assert.Empty(t, result.Deduplication.RelatedTicketID)
}

func TestProcessTicket_SecondSubmissionIsDuplicate(t *testing.T) {
	analyzer := &fakeAnalyzer{
		classification: domain.Classification{Category: domain.CategoryBilling, Severity: domain.SeverityMedium},
		draft:          "We're on it.",
	}
	orchestrator := newTestOrchestrator(analyzer, dedupe.NewMemoryRegistry())
	text := "I was charged twice for order #12345."

	first, err := orchestrator.ProcessTicket(context.Background(), text)
	require.NoError(t, err)
	require.NotEmpty(t, first.Deduplication.CurrentTicketID)

	second, err := orchestrator.ProcessTicket(context.Background(), text)
	require.NoError(t, err)
	assert.True(t, second.Deduplication.IsPossibleDuplicate)
	assert.Equal(t, first.Deduplication.CurrentTicketID, second.Deduplication.RelatedTicketID)
	assert.Empty(t, second.Deduplication.CurrentTicketID)
}

func TestProcessTicket_WhitespaceVariantIsDuplicate(t *testing.T) {
	analyzer := &fakeAnalyzer{
		classification: domain.Classification{Category: domain.CategoryOther, Severity: domain.SeverityMedium},
		draft:          "Looking into it.",
	}
	orchestrator := newTestOrchestrator(analyzer, dedupe.NewMemoryRegistry())

	first, err := orchestrator.ProcessTicket(context.Background(), "My login   fails\nevery time.")
	require.NoError(t, err)

	second, err := orchestrator.ProcessTicket(context.Background(), "my LOGIN fails every time.")
	require.NoError(t, err)
	assert.True(t, second.Deduplication.IsPossibleDuplicate)
	assert.Equal(t, first.Deduplication.CurrentTicketID, second.Deduplication.RelatedTicketID)
}

func TestProcessTicket_EmptyTextRejected(t *testing.T) {
	orchestrator := newTestOrchestrator(&fakeAnalyzer{}, dedupe.NewMemoryRegistry())

	_, err := orchestrator.ProcessTicket(context.Background(), "   ")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestProcessTicket_ProviderFailurePropagates(t *testing.T) {
	analyzer := &fakeAnalyzer{
		classifyErr: apperrors.NewProviderTimeout(context.DeadlineExceeded),
	}
	orchestrator := newTestOrchestrator(analyzer, dedupe.NewMemoryRegistry())

	_, err := orchestrator.ProcessTicket(context.Background(), "some ticket")
	require.Error(t, err)
	assert.Equal(t, "PROVIDER_TIMEOUT", apperrors.ToDomainError(err).Code)
}

func TestProcessTicket_DraftFailureFailsPipeline(t *testing.T) {
	analyzer := &fakeAnalyzer{
		classification: domain.Classification{Category: domain.CategoryTechnical, Severity: domain.SeverityLow},
		draftErr:       apperrors.NewProviderRateLimited(errors.New("429")),
	}
	orchestrator := newTestOrchestrator(analyzer, dedupe.NewMemoryRegistry())

	_, err := orchestrator.ProcessTicket(context.Background(), "app is slow")
	require.Error(t, err)
	assert.Equal(t, "PROVIDER_RATE_LIMITED", apperrors.ToDomainError(err).Code)
}

func TestProcessTicket_RegistryFailureDegradesToNoDedup(t *testing.T) {
	analyzer := &fakeAnalyzer{
		classification: domain.Classification{Category: domain.CategoryAccount, Severity: domain.SeverityLow},
		draft:          "We'll check your account.",
	}
	orchestrator := newTestOrchestrator(analyzer, failingRegistry{})

	result, err := orchestrator.ProcessTicket(context.Background(), "cannot reset password")
	require.NoError(t, err)
	assert.False(t, result.Deduplication.IsPossibleDuplicate)
	assert.Empty(t, result.Deduplication.CurrentTicketID)
	assert.Empty(t, result.Deduplication.RelatedTicketID)
}

func TestProcessTicket_DraftReceivesAnalysisContext(t *testing.T) {
	summary := "Billing issue."
	analyzer := &fakeAnalyzer{
		classification: domain.Classification{Category: domain.CategoryBilling, Severity: domain.SeverityCritical},
		fields:         domain.ExtractedFields{Summary: &summary},
		draft:          "We're escalating the billing outage.",
	}
	orchestrator := newTestOrchestrator(analyzer, dedupe.NewMemoryRegistry())

	_, err := orchestrator.ProcessTicket(context.Background(), "billing is down")
	require.NoError(t, err)

	require.Len(t, analyzer.draftContexts, 1)
	dc := analyzer.draftContexts[0]
	assert.Equal(t, domain.CategoryBilling, dc.Category)
	assert.Equal(t, domain.SeverityCritical, dc.Severity)
	require.NotNil(t, dc.ExtractedFields)
	require.NotNil(t, dc.ExtractedFields.Summary)
	assert.Equal(t, summary, *dc.ExtractedFields.Summary)
}

func TestAnalyze_FailureOfEitherCallFails(t *testing.T) {
	analyzer := &fakeAnalyzer{
		classification: domain.Classification{Category: domain.CategoryOther, Severity: domain.SeverityMedium},
		extractErr:     apperrors.NewProviderBadResponse(errors.New("not json")),
	}
	orchestrator := newTestOrchestrator(analyzer, dedupe.NewMemoryRegistry())

	_, err := orchestrator.Analyze(context.Background(), "hello")
	require.Error(t, err)
	assert.Equal(t, "PROVIDER_BAD_RESPONSE", apperrors.ToDomainError(err).Code)
}
