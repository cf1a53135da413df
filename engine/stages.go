package engine

import (
	"context"

	"github.com/habiliai/agenteval/entity"
	"github.com/habiliai/agenteval/envelope"
	"github.com/habiliai/agenteval/errors"
	"github.com/habiliai/agenteval/registry"
	"github.com/habiliai/agenteval/stage"
)

type (
	ProductInput struct {
		Product entity.ProductDescription `json:"product"`
	}

	SearchAgentsInput struct {
		Product          entity.ProductDescription  `json:"product"`
		Opportunities    entity.OpportunitiesResult `json:"opportunities"`
		DiscoveryContext string                     `json:"discovery_context,omitempty"`
	}

	GenerateMockDataInput struct {
		UseCaseID   string `json:"use_case_id"`
		UseCaseName string `json:"use_case_name"`
	}

	EvaluateFrameworkInput struct {
		FrameworkName string         `json:"framework_name"`
		MockPayload   map[string]any `json:"mock_payload"`
		UseCaseName   string         `json:"use_case_name"`
	}

	SimulateFrameworkInput struct {
		FrameworkName string `json:"framework_name"`
		UseCaseName   string `json:"use_case_name"`
	}

	RecommendAdoptionInput struct {
		FrameworkName string `json:"framework_name"`
		// EvalResult may arrive envelope wrapped or partially populated.
		EvalResult map[string]any `json:"eval_result"`
	}

	BuildReportInput struct {
		ProductName          string                   `json:"product_name"`
		OpportunitiesSummary string                   `json:"opportunities_summary"`
		AgentsTested         []entity.AgentTestResult `json:"agents_tested"`
	}
)

// Register adds every reasoner and skill stage to r. simulate_framework looks
// agents up in store and scores them with sim.
func Register(r *stage.Registry, e *Engine, store *registry.Store, sim *registry.Simulator) error {
	if sim == nil {
		sim = registry.NewSimulator(registry.DefaultSimulatorConfig())
	}

	return r.Register(
		stage.Define(
			stage.AnalyseAgenticOpportunities,
			"Analyse a product for ways to include agentic AI",
			func(ctx context.Context, in ProductInput) (*entity.OpportunitiesResult, error) {
				return e.AnalyseOpportunities(ctx, in.Product)
			},
		),
		stage.Define(
			stage.SearchAgentsForProduct,
			"Search for agent frameworks relevant to the product's opportunities",
			func(ctx context.Context, in SearchAgentsInput) (*entity.AgentsFoundResult, error) {
				return e.SearchAgents(ctx, in.Product, in.Opportunities.Opportunities, in.DiscoveryContext)
			},
		),
		stage.Define(
			stage.DeriveUseCases,
			"Derive three agent-relevant use cases for a product",
			func(ctx context.Context, in ProductInput) (*entity.UseCasesResult, error) {
				return e.DeriveUseCases(ctx, in.Product)
			},
		),
		stage.Define(
			stage.GenerateMockData,
			"Produce the deterministic mock payload for a use case",
			func(_ context.Context, in GenerateMockDataInput) (entity.MockData, error) {
				return GenerateMockData(in.UseCaseID, in.UseCaseName), nil
			},
		),
		stage.Define(
			stage.EvaluateFramework,
			"Score a framework against a mock payload with a fixed rubric",
			func(_ context.Context, in EvaluateFrameworkInput) (entity.EvalResult, error) {
				if in.FrameworkName == "" {
					return entity.EvalResult{}, errors.Wrapf(errors.ErrInvalidParams, "framework_name is required")
				}
				return EvaluateFramework(in.FrameworkName, in.MockPayload, in.UseCaseName), nil
			},
		),
		stage.Define(
			stage.SimulateFramework,
			"Simulate a registry agent's outcome from its declared metrics",
			func(ctx context.Context, in SimulateFrameworkInput) (entity.EvalResult, error) {
				agent, ok := store.Lookup(ctx, in.FrameworkName)
				if !ok {
					return entity.EvalResult{}, errors.Wrapf(errors.ErrNotFound, "agent %q is not in the registry", in.FrameworkName)
				}
				return sim.Simulate(agent, in.UseCaseName), nil
			},
		),
		stage.Define(
			stage.RecommendAdoption,
			"Recommend whether adopting a framework is worthwhile",
			func(ctx context.Context, in RecommendAdoptionInput) (*entity.RecommendationVerdict, error) {
				eval := envelope.RepairEvalResult(in.EvalResult)
				if in.FrameworkName != "" && eval.FrameworkName == envelope.UnknownFrameworkName {
					eval.FrameworkName = in.FrameworkName
				}
				return e.RecommendAdoption(ctx, eval.FrameworkName, eval)
			},
		),
		stage.Define(
			stage.BuildNotificationReport,
			"Write overall insights and the notification message for a run",
			func(ctx context.Context, in BuildReportInput) (*entity.ReportInsights, error) {
				return e.BuildInsights(ctx, in.ProductName, in.OpportunitiesSummary, in.AgentsTested)
			},
		),
	)
}
