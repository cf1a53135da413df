package registry

import (
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/habiliai/agenteval/entity"
	"github.com/habiliai/agenteval/internal/sliceutils"
	"github.com/habiliai/agenteval/internal/stringslices"
)

type RankerConfig struct {
	// SubstringWeight is added per query token found anywhere in the entry.
	SubstringWeight float64
	// BestForWeight is added per query token found in a best_for tag, on top
	// of SubstringWeight.
	BestForWeight float64
	// DomainBoost is added once when the entry category is in BoostCategories
	// and a query token is one of TriggerWords.
	DomainBoost     float64
	BoostCategories []string
	TriggerWords    []string

	// MinTokenLength drops shorter tokens (byte length).
	MinTokenLength int
	// MinResults is the smallest candidate pool returned from a non-empty registry.
	MinResults        int
	DefaultMaxResults int
}

func DefaultRankerConfig() RankerConfig {
	return RankerConfig{
		SubstringWeight:   1.0,
		BestForWeight:     2.0,
		DomainBoost:       1.5,
		BoostCategories:   []string{"file-search", "rag"},
		TriggerWords:      []string{"file", "search", "document", "esg", "compliance", "gap"},
		MinTokenLength:    3,
		MinResults:        2,
		DefaultMaxResults: 4,
	}
}

type SearchQuery struct {
	ProductName   string
	ProductDomain string
	OneLiner      string
	Opportunities []entity.Opportunity
}

func QueryFor(product entity.ProductDescription, opportunities []entity.Opportunity) SearchQuery {
	return SearchQuery{
		ProductName:   product.Name,
		ProductDomain: product.Domain,
		OneLiner:      product.OneLiner,
		Opportunities: opportunities,
	}
}

type ScoredAgent struct {
	Agent entity.AgentDescriptor `json:"agent"`
	Score float64                `json:"score"`
}

// Ranker scores registry entries against a product query by weighted keyword overlap.
type Ranker struct {
	store  *Store
	config RankerConfig
}

func NewRanker(store *Store, config RankerConfig) *Ranker {
	return &Ranker{
		store:  store,
		config: config,
	}
}

// Tokens returns the sorted query token set.
func (r *Ranker) Tokens(q SearchQuery) []string {
	set := map[string]struct{}{}
	add := func(s string, seps string) {
		for _, w := range stringslices.FieldsReplacing(strings.ToLower(s), seps) {
			if len(w) >= r.config.MinTokenLength {
				set[w] = struct{}{}
			}
		}
	}

	for _, s := range []string{q.ProductName, q.ProductDomain, q.OneLiner} {
		add(s, ",.")
	}
	for _, o := range q.Opportunities {
		for _, s := range []string{o.Title, o.Description, o.SuggestedAgentType} {
			add(s, ",")
		}
	}

	tokens := make([]string, 0, len(set))
	for t := range set {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}

// Score computes the relevance of one entry for a token set.
func (r *Ranker) Score(agent entity.AgentDescriptor, tokens []string) float64 {
	searchable := strings.ToLower(strings.Join([]string{
		agent.Name,
		agent.Category,
		agent.Description,
		strings.Join(agent.Features, " "),
		strings.Join(agent.BestFor, " "),
	}, " "))
	bestFor := stringslices.ToLower(agent.BestFor)

	score := 0.0
	for _, t := range tokens {
		if strings.Contains(searchable, t) {
			score += r.config.SubstringWeight
		}
		if stringslices.AnyContains(bestFor, t) {
			score += r.config.BestForWeight
		}
	}

	category := strings.ToLower(agent.Category)
	if slices.Contains(r.config.BoostCategories, category) &&
		slices.ContainsFunc(tokens, func(t string) bool { return slices.Contains(r.config.TriggerWords, t) }) {
		score += r.config.DomainBoost
	}

	return score
}

// Explain scores every registry entry and returns them ranked, highest first.
// Ties keep registry order.
func (r *Ranker) Explain(ctx context.Context, q SearchQuery) []ScoredAgent {
	agents := r.store.Load(ctx)
	tokens := r.Tokens(q)

	scored := make([]ScoredAgent, 0, len(agents))
	for _, a := range agents {
		scored = append(scored, ScoredAgent{Agent: a, Score: r.Score(a, tokens)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}

// Search returns the most relevant entries, highest first. An empty registry
// yields an empty result. Otherwise at least min(MinResults, registry size)
// entries come back: when nothing scores above zero the leading registry
// entries are proposed unranked.
func (r *Ranker) Search(ctx context.Context, q SearchQuery, maxResults int) []entity.AgentDescriptor {
	if maxResults <= 0 {
		maxResults = r.config.DefaultMaxResults
	}
	limit := max(r.config.MinResults, maxResults)

	agents := r.store.Load(ctx)
	if len(agents) == 0 {
		return []entity.AgentDescriptor{}
	}

	scored := r.Explain(ctx, q)
	if scored[0].Score <= 0 {
		return sliceutils.Clone(sliceutils.Head(agents, limit))
	}

	res := make([]entity.AgentDescriptor, 0, min(limit, len(scored)))
	for _, s := range sliceutils.Head(scored, limit) {
		res = append(res, s.Agent)
	}
	return res
}
