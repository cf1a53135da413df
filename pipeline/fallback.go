package pipeline

import (
	"fmt"

	"github.com/habiliai/agenteval/entity"
)

const (
	DefaultSummary       = "Agentic AI can support key operations."
	MissingSummary       = "Agentic AI opportunities identified."
	DefaultInsights      = "Performance insights across tested agents."
	defaultMessageFormat = "Report for %s: see agents_tested and overall_insights."
	defaultSearchContext = "Agent registry ranked by keyword relevance."
	defaultAgentsContext = "No agents found; proposing a default framework."
)

// DefaultOpportunities is used when opportunity analysis fails or finds nothing.
func DefaultOpportunities() entity.OpportunitiesResult {
	return entity.OpportunitiesResult{
		Opportunities: []entity.Opportunity{
			{
				ID:                 "o1",
				Title:              "Default",
				Description:        "Agentic AI can support operations.",
				SuggestedAgentType: "automation",
			},
		},
		Summary: DefaultSummary,
	}
}

// DefaultAgents is used when neither discovery nor the registry yield an agent.
func DefaultAgents() []entity.AgentFound {
	return []entity.AgentFound{
		{
			Name:           "AgentField",
			ReasonRelevant: "Infrastructure for AI backends",
			Category:       "orchestration",
		},
	}
}

// DefaultNotificationMessage is used when the narrative carries no message.
func DefaultNotificationMessage(productName string) string {
	return fmt.Sprintf(defaultMessageFormat, productName)
}

// DemoOpportunity is the single use case of a demo run, taken from the
// product's one-liner.
func DemoOpportunity(product entity.ProductDescription) entity.Opportunity {
	return entity.Opportunity{
		ID:                 "o1",
		Title:              product.OneLiner,
		Description:        "Agentic AI can support operations.",
		SuggestedAgentType: "automation",
	}
}
