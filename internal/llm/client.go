// Package llm is the boundary to the external text-understanding provider.
// It exposes three operations (classify, extract, draft); all non-determinism
// and provider failure enters the system here. Provider responses are decoded
// into explicit per-call schemas and never leak raw shapes to callers.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/config"
	"github.com/spec-kit/ticket-triage/internal/domain"
	apperrors "github.com/spec-kit/ticket-triage/pkg/util/errorutil"
)

const (
	groqBaseURL      = "https://api.groq.com/openai/v1"
	defaultGroqModel = "llama-3.1-8b-instant"
	defaultOAIModel  = "gpt-4o-mini"
)

// Analyzer is the contract the pipeline depends on.
type Analyzer interface {
	Classify(ctx context.Context, text string) (domain.Classification, error)
	ExtractFields(ctx context.Context, text string) (domain.ExtractedFields, error)
	ProposeDraft(ctx context.Context, text string, dc DraftContext) (string, error)
}

// Client implements Analyzer on an OpenAI-compatible chat completion API.
type Client struct {
	cfg    config.LLMConfig
	logger *zap.Logger

	resolveOnce sync.Once
	api         *openai.Client
	model       string
	resolveErr  error
}

// NewClient constructs a client. Provider selection and credential are
// validated lazily at the first call so the service can boot without them.
func NewClient(cfg config.LLMConfig, logger *zap.Logger) *Client {
	return &Client{cfg: cfg, logger: logger}
}

func (c *Client) resolve() (*openai.Client, string, error) {
	c.resolveOnce.Do(func() {
		apiKey := strings.TrimSpace(c.cfg.APIKey)
		if apiKey == "" {
			c.resolveErr = apperrors.NewProviderNotConfigured(
				"LLM_API_KEY is not set; add it to the environment or .env file")
			return
		}

		clientCfg := openai.DefaultConfig(apiKey)
		model := c.cfg.Model

		switch strings.ToLower(strings.TrimSpace(c.cfg.Provider)) {
		case "groq", "":
			clientCfg.BaseURL = groqBaseURL
			if model == "" {
				model = defaultGroqModel
			}
		case "openai":
			if model == "" {
				model = defaultOAIModel
			}
		default:
			c.resolveErr = apperrors.NewProviderNotConfigured(
				fmt.Sprintf("unknown LLM_PROVIDER %q; use \"groq\" or \"openai\"", c.cfg.Provider))
			return
		}

		if c.cfg.BaseURL != "" {
			clientCfg.BaseURL = c.cfg.BaseURL
		}

		c.api = openai.NewClientWithConfig(clientCfg)
		c.model = model
	})
	return c.api, c.model, c.resolveErr
}

// classifySchema is the expected provider response for classify calls.
type classifySchema struct {
	Category string `json:"category"`
	Severity string `json:"severity"`
}

// Classify assigns a category and severity to the ticket text. Values outside
// the closed enumerations fall back silently to Other/Medium; provider
// failures surface as errors. Blank input short-circuits without a call.
func (c *Client) Classify(ctx context.Context, text string) (domain.Classification, error) {
	fallback := domain.Classification{Category: domain.CategoryOther, Severity: domain.SeverityMedium}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fallback, nil
	}

	var raw classifySchema
	err := c.completeJSON(ctx, classifySystemPrompt(),
		"Classify this support ticket:\n\n"+trimmed, c.cfg.MaxTokens, &raw)
	if err != nil {
		return domain.Classification{}, err
	}

	result := fallback
	if domain.IsValidCategory(raw.Category) {
		result.Category = domain.TicketCategory(raw.Category)
	}
	if domain.IsValidSeverity(raw.Severity) {
		result.Severity = domain.TicketSeverity(raw.Severity)
	}
	return result, nil
}

// ExtractFields pulls structured attributes from the ticket text. Missing,
// non-string, or blank values become absent fields. Blank input short-circuits
// to all-absent without a call.
func (c *Client) ExtractFields(ctx context.Context, text string) (domain.ExtractedFields, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return domain.ExtractedFields{}, nil
	}

	// Decode into loosely-typed values first: the provider sometimes returns
	// numbers or objects where a string was requested.
	var loose map[string]any
	err := c.completeJSON(ctx, extractSystemPrompt,
		"Extract fields from this support ticket:\n\n"+trimmed, c.cfg.MaxTokens, &loose)
	if err != nil {
		return domain.ExtractedFields{}, err
	}

	return domain.ExtractedFields{
		CustomerEmail:            stringOrNil(loose["customerEmail"]),
		CustomerID:               stringOrNil(loose["customerId"]),
		OrderID:                  stringOrNil(loose["orderId"]),
		ProductOrFeature:         stringOrNil(loose["productOrFeature"]),
		Summary:                  stringOrNil(loose["summary"]),
		AffectedComponentOrError: stringOrNil(loose["affectedComponentOrError"]),
	}, nil
}

// ProposeDraft writes a candidate reply using the classification and extracted
// fields as context. Blank input returns a canned ask-for-details reply
// without a provider call. The returned draft is trimmed.
func (c *Client) ProposeDraft(ctx context.Context, text string, dc DraftContext) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return emptyTicketDraft, nil
	}

	bounded := truncateRunes(trimmed, c.cfg.ContextTruncateRune)
	content, err := c.complete(ctx, draftSystemPrompt,
		buildDraftUserContent(bounded, dc), c.cfg.DraftMaxTokens, false)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

// completeJSON runs a JSON-mode completion and decodes the reply into out,
// tolerating a fenced-code-block wrapper. A reply that is not valid JSON is a
// provider failure, not a fallback.
func (c *Client) completeJSON(ctx context.Context, systemPrompt, userContent string, maxTokens int, out any) error {
	content, err := c.complete(ctx, systemPrompt, userContent, maxTokens, true)
	if err != nil {
		return err
	}
	cleaned := stripJSONFence(content)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return apperrors.NewProviderBadResponse(
			fmt.Errorf("response is not valid JSON: %s", preview(cleaned, 200)))
	}
	return nil
}

// complete issues one chat completion round trip bounded by the configured
// timeout and token cap, and classifies any failure.
func (c *Client) complete(ctx context.Context, systemPrompt, userContent string, maxTokens int, jsonMode bool) (string, error) {
	api, model, err := c.resolve()
	if err != nil {
		return "", err
	}

	callCtx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout())
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:     model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userContent},
		},
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := api.CreateChatCompletion(callCtx, req)
	if err != nil {
		return "", c.classifyCallError(err)
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.NewProviderBadResponse(errors.New("no completion choices returned"))
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", apperrors.NewProviderBadResponse(errors.New("empty completion content"))
	}
	return content, nil
}

func (c *Client) classifyCallError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewProviderTimeout(err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case 401, 403:
			return apperrors.NewProviderAuthError(err)
		case 429:
			return apperrors.NewProviderRateLimited(err)
		}
	}
	if c.logger != nil {
		c.logger.Warn("provider call failed", zap.Error(err))
	}
	return apperrors.NewProviderBadResponse(err)
}

// stripJSONFence removes an optional ```json ... ``` wrapper around a reply.
func stripJSONFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// drop the language tag line (e.g. "json")
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func stringOrNil(value any) *string {
	s, ok := value.(string)
	if !ok {
		return nil
	}
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}

func preview(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
