package domain

import "time"

// TicketCategory enumerates classification categories.
type TicketCategory string

const (
	CategoryBilling        TicketCategory = "Billing"
	CategoryTechnical      TicketCategory = "Technical"
	CategoryAccount        TicketCategory = "Account"
	CategoryRefund         TicketCategory = "Refund"
	CategoryFeatureRequest TicketCategory = "Feature Request"
	CategoryOther          TicketCategory = "Other"
)

// Categories lists all valid categories in prompt order.
var Categories = []TicketCategory{
	CategoryBilling,
	CategoryTechnical,
	CategoryAccount,
	CategoryRefund,
	CategoryFeatureRequest,
	CategoryOther,
}

// IsValidCategory reports whether value is one of the known categories.
func IsValidCategory(value string) bool {
	for _, c := range Categories {
		if string(c) == value {
			return true
		}
	}
	return false
}

// TicketSeverity enumerates classification severities.
type TicketSeverity string

const (
	SeverityLow      TicketSeverity = "Low"
	SeverityMedium   TicketSeverity = "Medium"
	SeverityHigh     TicketSeverity = "High"
	SeverityCritical TicketSeverity = "Critical"
)

// Severities lists all valid severities in ascending order of urgency.
var Severities = []TicketSeverity{
	SeverityLow,
	SeverityMedium,
	SeverityHigh,
	SeverityCritical,
}

// SeverityCriteria holds the short user-facing criteria per severity, embedded
// in classification prompts.
var SeverityCriteria = map[TicketSeverity]string{
	SeverityLow:      "General inquiry, no urgency.",
	SeverityMedium:   "Issue affecting use but workaround exists.",
	SeverityHigh:     "Significant impact; no workaround or many users affected.",
	SeverityCritical: "Outage, data loss, or security incident; immediate response required.",
}

// IsValidSeverity reports whether value is one of the known severities.
func IsValidSeverity(value string) bool {
	for _, s := range Severities {
		if string(s) == value {
			return true
		}
	}
	return false
}

// Classification is the (category, severity) pair assigned to a ticket.
type Classification struct {
	Category TicketCategory `json:"category"`
	Severity TicketSeverity `json:"severity"`
}

// ExtractedFields holds structured attributes pulled from ticket text. Each
// field is either a non-empty trimmed string or nil when not mentioned.
type ExtractedFields struct {
	CustomerEmail            *string `json:"customerEmail"`
	CustomerID               *string `json:"customerId"`
	OrderID                  *string `json:"orderId"`
	ProductOrFeature         *string `json:"productOrFeature"`
	Summary                  *string `json:"summary"`
	AffectedComponentOrError *string `json:"affectedComponentOrError"`
}

// RoutingResult is the team assignment derived from a classification.
type RoutingResult struct {
	TeamID   string `json:"teamId"`
	TeamName string `json:"teamName,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// DeduplicationResult describes the outcome of the signature lookup. Exactly
// one of RelatedTicketID (duplicate path) or CurrentTicketID (new-ticket path)
// is set, never both; both are empty for non-deduplicable input.
type DeduplicationResult struct {
	IsPossibleDuplicate bool   `json:"isPossibleDuplicate"`
	RelatedTicketID     string `json:"relatedTicketId,omitempty"`
	CurrentTicketID     string `json:"currentTicketId,omitempty"`
}

// ProcessTicketResult is the full intake pipeline response.
type ProcessTicketResult struct {
	Classification  Classification      `json:"classification"`
	ExtractedFields ExtractedFields     `json:"extractedFields"`
	Draft           string              `json:"draft"`
	Routing         RoutingResult       `json:"routing"`
	Deduplication   DeduplicationResult `json:"deduplication"`
}

// Feedback records a human judgement on a processed ticket.
type Feedback struct {
	ID                    string
	TicketID              *string
	ClassificationCorrect *bool
	DraftHelpful          *bool
	Comment               *string
	CreatedAt             time.Time
}

// Assignment records a human decision handing a drafted reply to a team.
type Assignment struct {
	ID        string
	TicketID  *string
	TeamID    string
	TeamName  *string
	Draft     string
	CreatedAt time.Time
}
