package entity

// Opportunity is one way to include agentic AI in the product.
type Opportunity struct {
	ID                 string `json:"id" jsonschema_description:"Short slug, unique within the result"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	SuggestedAgentType string `json:"suggested_agent_type" jsonschema_description:"e.g. task automation, support triage, research"`
}

type OpportunitiesResult struct {
	Opportunities []Opportunity `json:"opportunities"`
	Summary       string        `json:"summary" jsonschema_description:"Short summary of where agentic AI fits"`
}

// DedupeOpportunities keeps the first opportunity for every id. Opportunities
// without an id are kept as they are.
func DedupeOpportunities(opportunities []Opportunity) []Opportunity {
	seen := make(map[string]struct{}, len(opportunities))
	res := make([]Opportunity, 0, len(opportunities))
	for _, o := range opportunities {
		if o.ID != "" {
			if _, ok := seen[o.ID]; ok {
				continue
			}
			seen[o.ID] = struct{}{}
		}
		res = append(res, o)
	}
	return res
}

// UseCaseName is the name the rest of the pipeline tests agents against.
func (o Opportunity) UseCaseName() string {
	if o.Title != "" {
		return o.Title
	}
	return "Default"
}

func (o Opportunity) UseCaseID() string {
	if o.ID != "" {
		return o.ID
	}
	return "o1"
}
