package registry_test

import (
	"context"
	"testing"

	"github.com/habiliai/agenteval/entity"
	"github.com/habiliai/agenteval/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRanker(agents ...entity.AgentDescriptor) *registry.Ranker {
	return registry.NewRanker(
		registry.NewStore(registry.StaticSource(agents), nil),
		registry.DefaultRankerConfig(),
	)
}

func sampleRegistry() []entity.AgentDescriptor {
	return []entity.AgentDescriptor{
		{Name: "Orchestrix", Category: "orchestration", Description: "workflow engine", BestFor: []string{"task automation"}},
		{Name: "Chatter", Category: "multi-agent", Description: "conversational crews", BestFor: []string{"support triage"}},
		docBot(),
		{Name: "Indexer", Category: "rag", Description: "retrieval over documents", BestFor: []string{"document qa"}},
	}
}

func names(agents []entity.AgentDescriptor) []string {
	res := make([]string, 0, len(agents))
	for _, a := range agents {
		res = append(res, a.Name)
	}
	return res
}

func TestTokens(t *testing.T) {
	r := newRanker()
	tokens := r.Tokens(registry.SearchQuery{
		ProductName:   "Acme.ESG",
		ProductDomain: "B2B SaaS",
		OneLiner:      "Compliance gap reports, for ESG teams.",
		Opportunities: []entity.Opportunity{
			{Title: "Gap analysis", Description: "find gaps, fast", SuggestedAgentType: "research.v2"},
		},
	})

	assert.Equal(t, []string{
		"acme", "analysis", "b2b", "compliance", "esg", "fast", "find", "for", "gap", "gaps",
		"reports", "research.v2", "saas", "teams",
	}, tokens)
}

func TestSearchRanksByRelevance(t *testing.T) {
	r := newRanker(sampleRegistry()...)
	got := r.Search(context.Background(), registry.SearchQuery{
		ProductName:   "Acme",
		ProductDomain: "ESG",
		OneLiner:      "Compliance gap analysis for document archives",
	}, 2)

	assert.Equal(t, []string{"DocBot", "Indexer"}, names(got))
}

func TestSearchNoOverlapFallsBackToRegistryOrder(t *testing.T) {
	r := newRanker(sampleRegistry()...)
	got := r.Search(context.Background(), registry.SearchQuery{ProductName: "zz", OneLiner: "qq"}, 3)
	assert.Equal(t, []string{"Orchestrix", "Chatter", "DocBot"}, names(got))
}

func TestSearchMinimumPool(t *testing.T) {
	ctx := context.Background()
	queries := []registry.SearchQuery{
		{},
		{ProductName: "nothing matches here"},
		{ProductName: "Acme", OneLiner: "compliance gap"},
		{OneLiner: "support triage", Opportunities: []entity.Opportunity{{Title: "task automation"}}},
	}

	for size := 1; size <= 4; size++ {
		r := newRanker(sampleRegistry()[:size]...)
		for _, q := range queries {
			for _, maxResults := range []int{-1, 0, 1, 2, 3, 10} {
				got := r.Search(ctx, q, maxResults)
				assert.GreaterOrEqual(t, len(got), min(2, size), "size=%d max=%d q=%+v", size, maxResults, q)
				assert.LessOrEqual(t, len(got), size)
			}
		}
	}
}

func TestSearchEmptyRegistry(t *testing.T) {
	r := newRanker()
	got := r.Search(context.Background(), registry.SearchQuery{ProductName: "Acme compliance"}, 4)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearchStableTies(t *testing.T) {
	r := newRanker(
		entity.AgentDescriptor{Name: "First", Category: "x", Description: "billing"},
		entity.AgentDescriptor{Name: "Second", Category: "x", Description: "billing"},
		entity.AgentDescriptor{Name: "Third", Category: "x", Description: "billing"},
	)
	got := r.Search(context.Background(), registry.SearchQuery{OneLiner: "billing"}, 3)
	assert.Equal(t, []string{"First", "Second", "Third"}, names(got))
}

func TestScoreWeights(t *testing.T) {
	r := newRanker()

	// "gap" hits searchable (+1) and best_for (+2); file-search with trigger word (+1.5)
	assert.Equal(t, 4.5, r.Score(docBot(), []string{"gap"}))
	// "docbot" only hits the name
	assert.Equal(t, 1.0, r.Score(docBot(), []string{"docbot"}))
	// trigger word without any textual hit still boosts
	assert.Equal(t, 1.5, r.Score(docBot(), []string{"esg"}))
	assert.Equal(t, 0.0, r.Score(docBot(), []string{"voice"}))
}

func TestExplainIsSorted(t *testing.T) {
	r := newRanker(sampleRegistry()...)
	scored := r.Explain(context.Background(), registry.SearchQuery{OneLiner: "support triage"})
	require.Len(t, scored, 4)
	assert.Equal(t, "Chatter", scored[0].Agent.Name)
	for i := 1; i < len(scored); i++ {
		assert.GreaterOrEqual(t, scored[i-1].Score, scored[i].Score)
	}
}
