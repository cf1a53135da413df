package agenteval_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/habiliai/agenteval"
	"github.com/habiliai/agenteval/engine"
	"github.com/habiliai/agenteval/entity"
	"github.com/habiliai/agenteval/envelope"
	"github.com/habiliai/agenteval/errors"
	"github.com/habiliai/agenteval/internal/mylog"
	"github.com/habiliai/agenteval/registry"
	"github.com/habiliai/agenteval/stage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var acme = agenteval.ProductDescription{
	Name:     "Acme",
	Domain:   "B2B SaaS",
	OneLiner: "ESG compliance reporting for mid-size manufacturers",
}

func ptr(v float64) *float64 { return &v }

func newEvaluator(t *testing.T, opts ...agenteval.Option) *agenteval.Evaluator {
	t.Helper()

	opts = append([]agenteval.Option{
		agenteval.WithLogger(mylog.Discard()),
		agenteval.WithOpenAIAPIKey(""),
		agenteval.WithAnthropicAPIKey(""),
	}, opts...)
	e, err := agenteval.NewEvaluator(context.Background(), opts...)
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestRunDemoPipelineWithBuiltInRegistry(t *testing.T) {
	e := newEvaluator(t)
	ctx := context.Background()

	report, err := e.RunDemoPipeline(ctx, acme)
	require.NoError(t, err)

	found := e.Search(ctx, acme, nil)
	require.GreaterOrEqual(t, len(found), 2)
	require.Len(t, report.AgentsTested, len(found))
	for i, tested := range report.AgentsTested {
		assert.Equal(t, found[i].Name, tested.AgentName)
		assert.Equal(t, e.Simulate(found[i], acme.OneLiner), tested.EvalResult)
	}
	assert.Equal(t, "Acme", report.ProductName)
	assert.NotEmpty(t, report.NotificationMessage)
}

func TestRunFullPipelineWithoutModel(t *testing.T) {
	reg := prometheus.NewRegistry()
	e := newEvaluator(t, agenteval.WithMetricsRegisterer(reg))

	report, err := e.RunFullPipeline(context.Background(), acme)
	require.NoError(t, err)
	assert.NotEmpty(t, report.AgentsTested)
	assert.Equal(t, "Agentic AI can support key operations.", report.OpportunitiesSummary)
	assert.Equal(t, "Performance insights across tested agents.", report.OverallInsights)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "agenteval_stage_duration_seconds")
	assert.Contains(t, names, "agenteval_stage_fallback_total")
}

func TestRunFullPipelineInvalidProduct(t *testing.T) {
	e := newEvaluator(t)

	_, err := e.RunFullPipeline(context.Background(), agenteval.ProductDescription{Name: "Acme"})
	assert.ErrorIs(t, err, errors.ErrFatalAssembly)
}

func TestSimulateDocBot(t *testing.T) {
	e := newEvaluator(t)

	got := e.Simulate(agenteval.AgentDescriptor{
		Name:     "DocBot",
		Category: "file-search",
		BestFor:  []string{"compliance gap analysis"},
		Metrics: entity.AgentMetrics{
			AccuracyRetrieval: ptr(0.9),
			LatencyP95Ms:      ptr(400),
			MaxContextTokens:  ptr(200000),
		},
	}, "Compliance gap analysis")

	assert.Equal(t, 0.93, got.ScoreCompleteness)
	assert.Equal(t, 0.8, got.ScoreDeterminism)
	assert.GreaterOrEqual(t, got.ScoreFit, 0.75)
	assert.Equal(t, got.MeanScore(), got.OverallScore)
}

func TestSimulateByName(t *testing.T) {
	e := newEvaluator(t)
	ctx := context.Background()

	got, err := e.SimulateByName(ctx, "llamaindex", "Document question answering")
	require.NoError(t, err)
	assert.Equal(t, "LlamaIndex", got.FrameworkName)

	_, err = e.SimulateByName(ctx, "NoSuchFramework", "x")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestStagesIncludePipeline(t *testing.T) {
	e := newEvaluator(t)

	names := e.Stages().Names()
	assert.Len(t, names, 9)
	assert.Contains(t, names, stage.EvaluatePipeline)
	assert.Contains(t, names, stage.SimulateFramework)

	raw, err := e.Invoker().Invoke(context.Background(), "eval-agent."+stage.EvaluatePipeline, map[string]any{
		"input": map[string]any{"product": map[string]any{
			"name": "Acme", "domain": "B2B SaaS", "one_liner": "ESG compliance reporting",
		}},
	})
	require.NoError(t, err)

	var report entity.NotificationReport
	require.NoError(t, envelope.Decode(raw, &report))
	assert.Equal(t, "Acme", report.ProductName)
	assert.NotEmpty(t, report.AgentsTested)
}

func TestRegistryFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
agents:
  - name: DocBot
    category: file-search
    best_for: [compliance gap analysis]
    metrics: {accuracy_retrieval: 0.9, latency_p95_ms: 400, max_context_tokens: 200000}
  - name: Crew
    category: multi-agent
`), 0o644))

	e := newEvaluator(t, agenteval.WithRegistryPath(path))
	ctx := context.Background()

	agents := e.Agents(ctx)
	require.Len(t, agents, 2)
	assert.Equal(t, "DocBot", e.Search(ctx, acme, nil)[0].Name)
}

func TestRegistryFromSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "registry.db")

	seed, err := registry.OpenSQLiteSource(ctx, path)
	require.NoError(t, err)
	require.NoError(t, registry.SeedGorm(ctx, seed.DB, []entity.AgentDescriptor{
		{Name: "Haystack", Category: "rag", BestFor: []string{"enterprise search"}},
		{Name: "AutoGen", Category: "multi-agent"},
	}))
	require.NoError(t, seed.Close())

	e := newEvaluator(t, agenteval.WithRegistryPath("sqlite:"+path))
	agents := e.Agents(ctx)
	require.Len(t, agents, 2)
	assert.Equal(t, "Haystack", agents[0].Name)
}

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, req engine.GenerateRequest, out any) error {
	return m.Called(ctx, req, out).Error(0)
}

func TestRunFullPipelineWithGenerator(t *testing.T) {
	generator := &mockGenerator{}
	generator.On("Generate", mock.Anything, mock.Anything, mock.AnythingOfType("*entity.OpportunitiesResult")).
		Run(func(args mock.Arguments) {
			*args.Get(2).(*entity.OpportunitiesResult) = entity.OpportunitiesResult{
				Opportunities: []entity.Opportunity{{ID: "gap", Title: "Compliance gap analysis"}},
				Summary:       "Agents can review compliance documents.",
			}
		}).Return(nil)
	generator.On("Generate", mock.Anything, mock.Anything, mock.AnythingOfType("*entity.AgentsFoundResult")).
		Run(func(args mock.Arguments) {
			*args.Get(2).(*entity.AgentsFoundResult) = entity.AgentsFoundResult{
				Agents: []entity.AgentFound{{Name: "LlamaIndex"}, {Name: "CrewAI"}},
			}
		}).Return(nil)
	generator.On("Generate", mock.Anything, mock.Anything, mock.AnythingOfType("*entity.RecommendationVerdict")).
		Run(func(args mock.Arguments) {
			*args.Get(2).(*entity.RecommendationVerdict) = entity.RecommendationVerdict{
				AdoptWorthwhile: true, Confidence: 0.8, Reasoning: "good fit",
			}
		}).Return(nil)
	generator.On("Generate", mock.Anything, mock.Anything, mock.AnythingOfType("*entity.ReportInsights")).
		Run(func(args mock.Arguments) {
			*args.Get(2).(*entity.ReportInsights) = entity.ReportInsights{
				OverallInsights:     "LlamaIndex leads on retrieval.",
				NotificationMessage: "Two frameworks tested; both are worth adopting.",
			}
		}).Return(nil)

	e := newEvaluator(t, agenteval.WithGenerator(generator))
	report, err := e.RunFullPipeline(context.Background(), acme)
	require.NoError(t, err)

	assert.Equal(t, "Agents can review compliance documents.", report.OpportunitiesSummary)
	require.Len(t, report.AgentsTested, 2)
	assert.Equal(t, "LlamaIndex", report.AgentsTested[0].AgentName)
	assert.Equal(t, engine.EvaluateFramework("LlamaIndex", nil, "Compliance gap analysis"), report.AgentsTested[0].EvalResult)
	assert.True(t, report.AgentsTested[1].AdoptRecommended)
	assert.Equal(t, "good fit", report.AgentsTested[1].Reasoning)
	assert.Equal(t, "LlamaIndex leads on retrieval.", report.OverallInsights)
	assert.Equal(t, 2, report.AdoptCount())
}
