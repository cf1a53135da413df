package entity

const (
	DefaultAccuracyRetrieval = 0.85
	DefaultLatencyP95Ms      = 500.0
	DefaultMaxContextTokens  = 100000.0
)

// AgentDescriptor is a registry entry for a candidate framework. Metrics are
// declared by the registry, not measured.
type AgentDescriptor struct {
	Name        string       `json:"name"`
	Category    string       `json:"category"`
	Description string       `json:"description,omitempty"`
	Features    []string     `json:"features,omitempty"`
	BestFor     []string     `json:"best_for,omitempty"`
	Metrics     AgentMetrics `json:"metrics"`
}

// AgentMetrics may be partially populated. A nil field means the key was
// absent from the registry document.
type AgentMetrics struct {
	AccuracyRetrieval *float64 `json:"accuracy_retrieval,omitempty"`
	LatencyP95Ms      *float64 `json:"latency_p95_ms,omitempty"`
	MaxContextTokens  *float64 `json:"max_context_tokens,omitempty"`
}

func (m AgentMetrics) Accuracy() float64 {
	return valueOr(m.AccuracyRetrieval, DefaultAccuracyRetrieval)
}

func (m AgentMetrics) Latency() float64 {
	return valueOr(m.LatencyP95Ms, DefaultLatencyP95Ms)
}

func (m AgentMetrics) ContextTokens() float64 {
	return valueOr(m.MaxContextTokens, DefaultMaxContextTokens)
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// AgentFound is an agent proposed by external discovery.
type AgentFound struct {
	Name           string `json:"name"`
	ReasonRelevant string `json:"reason_relevant"`
	Category       string `json:"category" jsonschema_description:"e.g. orchestration, RAG, multi-agent"`
}

type AgentsFoundResult struct {
	Agents        []AgentFound `json:"agents"`
	SearchContext string       `json:"search_context" jsonschema_description:"What was searched or considered"`
}

// Found converts a registry descriptor into a discovery result.
func (a AgentDescriptor) Found() AgentFound {
	return AgentFound{
		Name:           a.Name,
		ReasonRelevant: a.Description,
		Category:       a.Category,
	}
}
