package llm

import (
	"fmt"
	"strings"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

func categoriesList() string {
	parts := make([]string, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		parts = append(parts, string(c))
	}
	return strings.Join(parts, ", ")
}

func severitiesList() string {
	parts := make([]string, 0, len(domain.Severities))
	for _, s := range domain.Severities {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ", ")
}

func classifySystemPrompt() string {
	categories := categoriesList()
	severities := severitiesList()

	var sb strings.Builder
	sb.WriteString("You are a support ticket classifier. Given a support ticket, respond with exactly one JSON object in this form, with no other text:\n")
	fmt.Fprintf(&sb, "{\"category\": \"<one of: %s>\", \"severity\": \"<one of: %s>\"}\n\n", categories, severities)
	sb.WriteString("Rules:\n")
	fmt.Fprintf(&sb, "- category: must be exactly one of: %s.\n", categories)
	fmt.Fprintf(&sb, "- severity: must be exactly one of: %s.\n", severities)
	sb.WriteString("- Use \"Other\" only when the ticket does not fit Billing, Technical, Account, Refund, or Feature Request.\n")
	sb.WriteString("- Severity criteria:\n")
	for _, severity := range domain.Severities {
		fmt.Fprintf(&sb, "  - %s: %s\n", severity, domain.SeverityCriteria[severity])
	}
	return sb.String()
}

const extractSystemPrompt = `You are a support ticket parser. Extract the following fields from the ticket. Respond with exactly one JSON object using these keys only. Use null for any field not mentioned or not found.

Required keys (all must be present; use null if not in the ticket):
- customerEmail: string or null - customer's email address if mentioned
- customerId: string or null - customer ID, account ID, or user ID if mentioned
- orderId: string or null - order number, transaction ID, or reference if mentioned
- productOrFeature: string or null - product name, plan name, or feature if mentioned
- summary: string or null - one or two sentence summary of the issue
- affectedComponentOrError: string or null - for technical issues: component, service, or error message; otherwise null

Output only valid JSON, no other text.`

const draftSystemPrompt = `You are a professional support agent. Write a SHORT reply: 1-2 paragraphs only, 3-5 sentences total. People skim, so keep it concise.

CRITICAL - How to start:
- Do NOT start with "Dear [name]", "Dear Customer", or "Hi [name]". Forbidden.
- Start your first sentence with the specific issue from the ticket (e.g. "We're looking into the duplicate charge for order #12345." or "We've received your refund request and are reviewing it.").

Content: In 3-5 sentences total, (1) acknowledge their issue with a concrete detail, (2) say we're looking into it or escalating, (3) say we'll get back to them, (4) brief sign-off ("Thank you" or "Best regards"). Do NOT promise refunds or specific timelines. Do not invent company or agent names. Output only the reply text.`

// emptyTicketDraft is returned without a provider call when the ticket text is blank.
const emptyTicketDraft = "Thank you for contacting support. Could you please provide more details about your issue so we can assist you?"

// DraftContext carries classification and extracted fields into the draft prompt.
type DraftContext struct {
	Category        domain.TicketCategory
	Severity        domain.TicketSeverity
	ExtractedFields *domain.ExtractedFields
}

func buildDraftContextBlock(dc DraftContext) string {
	parts := []string{
		fmt.Sprintf("Category: %s", dc.Category),
		fmt.Sprintf("Severity: %s", dc.Severity),
	}
	if ef := dc.ExtractedFields; ef != nil {
		fields := make([]string, 0, 5)
		appendField := func(label string, value *string) {
			if value != nil && strings.TrimSpace(*value) != "" {
				fields = append(fields, label+": "+*value)
			}
		}
		appendField("Summary", ef.Summary)
		appendField("Order/Reference", ef.OrderID)
		appendField("Customer email", ef.CustomerEmail)
		appendField("Product/Feature", ef.ProductOrFeature)
		appendField("Technical detail", ef.AffectedComponentOrError)
		if len(fields) > 0 {
			parts = append(parts, "Extracted context:")
			parts = append(parts, fields...)
		}
	}
	return strings.Join(parts, "\n")
}

func buildDraftUserContent(ticketText string, dc DraftContext) string {
	contextBlock := buildDraftContextBlock(dc)
	return fmt.Sprintf("Ticket from customer:\n\n%s\n\n---\nContext (use in reply):\n%s\n\nWrite a SHORT reply: 3-5 sentences total, 1-2 paragraphs. Do NOT start with \"Dear\" or \"Hi [name]\". Start with the specific issue (e.g. duplicate charge, order #). Then: we're looking into it, we'll get back to you, sign-off. Output only the reply text.", ticketText, contextBlock)
}

// truncateRunes caps text at max runes so the draft prompt stays bounded.
func truncateRunes(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
