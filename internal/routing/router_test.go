package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

func TestRoute_BillingHigh(t *testing.T) {
	result := Route(domain.Classification{Category: domain.CategoryBilling, Severity: domain.SeverityHigh})
	assert.Equal(t, "billing", result.TeamID)
	assert.Equal(t, "Billing Team", result.TeamName)
	assert.Contains(t, result.Reason, "Billing")
	assert.Contains(t, result.Reason, "High")
}

func TestRoute_TechnicalCritical(t *testing.T) {
	result := Route(domain.Classification{Category: domain.CategoryTechnical, Severity: domain.SeverityCritical})
	assert.Equal(t, "platform-oncall", result.TeamID)
	assert.Equal(t, "Platform On-Call", result.TeamName)
}

func TestRoute_FeatureRequestLow(t *testing.T) {
	result := Route(domain.Classification{Category: domain.CategoryFeatureRequest, Severity: domain.SeverityLow})
	assert.Equal(t, "product", result.TeamID)
}

func TestRoute_OtherMedium(t *testing.T) {
	result := Route(domain.Classification{Category: domain.CategoryOther, Severity: domain.SeverityMedium})
	assert.Equal(t, DefaultTeam.TeamID, result.TeamID)
	assert.Equal(t, DefaultTeam.TeamName, result.TeamName)
}

func TestRoute_UnknownPairFallsToDefault(t *testing.T) {
	result := Route(domain.Classification{Category: "Bogus", Severity: "Extreme"})
	assert.Equal(t, DefaultTeam.TeamID, result.TeamID)
	assert.Contains(t, result.Reason, "Bogus")
	assert.Contains(t, result.Reason, "Extreme")
}

func TestRoute_TotalOverDomain(t *testing.T) {
	for _, category := range domain.Categories {
		for _, severity := range domain.Severities {
			result := Route(domain.Classification{Category: category, Severity: severity})
			assert.NotEmpty(t, result.TeamID, "no team for %s/%s", category, severity)
			assert.NotEmpty(t, result.Reason)
		}
	}
}
