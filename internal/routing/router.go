// Package routing maps classifications to handling teams via a static table.
package routing

import (
	"fmt"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

// TeamAssignment names the team handling a (category, severity) pair.
type TeamAssignment struct {
	TeamID   string
	TeamName string
}

// DefaultTeam receives tickets whose (category, severity) pair has no table entry.
var DefaultTeam = TeamAssignment{TeamID: "support", TeamName: "Support Team"}

var (
	billingTeam       = TeamAssignment{TeamID: "billing", TeamName: "Billing Team"}
	billingEscalation = TeamAssignment{TeamID: "billing-escalation", TeamName: "Billing Escalation"}
	supportTeam       = TeamAssignment{TeamID: "support", TeamName: "Support Team"}
	engineeringTeam   = TeamAssignment{TeamID: "engineering", TeamName: "Engineering"}
	platformOnCall    = TeamAssignment{TeamID: "platform-oncall", TeamName: "Platform On-Call"}
	productTeam       = TeamAssignment{TeamID: "product", TeamName: "Product Team"}
)

// table routes (category, severity) to a team. Edit entries here to change
// routing without touching pipeline code.
var table = map[domain.TicketCategory]map[domain.TicketSeverity]TeamAssignment{
	domain.CategoryBilling: {
		domain.SeverityLow:      billingTeam,
		domain.SeverityMedium:   billingTeam,
		domain.SeverityHigh:     billingTeam,
		domain.SeverityCritical: billingEscalation,
	},
	domain.CategoryTechnical: {
		domain.SeverityLow:      supportTeam,
		domain.SeverityMedium:   supportTeam,
		domain.SeverityHigh:     engineeringTeam,
		domain.SeverityCritical: platformOnCall,
	},
	domain.CategoryAccount: {
		domain.SeverityLow:      supportTeam,
		domain.SeverityMedium:   supportTeam,
		domain.SeverityHigh:     supportTeam,
		domain.SeverityCritical: platformOnCall,
	},
	domain.CategoryRefund: {
		domain.SeverityLow:      billingTeam,
		domain.SeverityMedium:   billingTeam,
		domain.SeverityHigh:     billingTeam,
		domain.SeverityCritical: billingEscalation,
	},
	domain.CategoryFeatureRequest: {
		domain.SeverityLow:      productTeam,
		domain.SeverityMedium:   productTeam,
		domain.SeverityHigh:     productTeam,
		domain.SeverityCritical: productTeam,
	},
	domain.CategoryOther: {
		domain.SeverityLow:      supportTeam,
		domain.SeverityMedium:   supportTeam,
		domain.SeverityHigh:     supportTeam,
		domain.SeverityCritical: platformOnCall,
	},
}

// Route returns the team assignment for a classification. Pure and total:
// unknown pairs fall back to DefaultTeam, and Reason always explains the
// decision in terms of the category and severity used.
func Route(classification domain.Classification) domain.RoutingResult {
	assignment := DefaultTeam
	if bySeverity, ok := table[classification.Category]; ok {
		if entry, ok := bySeverity[classification.Severity]; ok {
			assignment = entry
		}
	}
	return domain.RoutingResult{
		TeamID:   assignment.TeamID,
		TeamName: assignment.TeamName,
		Reason:   fmt.Sprintf("Category: %s, Severity: %s", classification.Category, classification.Severity),
	}
}
