package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/habiliai/agenteval/entity"
	"github.com/habiliai/agenteval/errors"
	"github.com/habiliai/agenteval/internal/mylog"
	"github.com/samber/lo"
)

const useCaseCount = 3

func (e *Engine) generate(ctx context.Context, name string, values any, out any) error {
	if e.generator == nil {
		return errors.Wrapf(errors.ErrExternalCall, "%s: no model configured", name)
	}

	system, user, err := buildPrompt(name, values)
	if err != nil {
		return err
	}

	started := time.Now()
	if err := e.generator.Generate(ctx, GenerateRequest{
		System: system,
		User:   user,
		Model:  e.model,
	}, out); err != nil {
		e.logger.Warn("reasoner failed", slog.String("reasoner", name), mylog.Err(err))
		return errors.Wrapf(err, "%s", name)
	}
	e.logger.Debug("reasoner finished", slog.String("reasoner", name), slog.Duration("elapsed", time.Since(started)))

	return nil
}

// AnalyseOpportunities asks the model for 3-4 ways agentic AI fits the product.
func (e *Engine) AnalyseOpportunities(ctx context.Context, product entity.ProductDescription) (*entity.OpportunitiesResult, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}

	var out entity.OpportunitiesResult
	if err := e.generate(ctx, promptAnalyseOpportunities, productPromptValues{Product: product}, &out); err != nil {
		return nil, err
	}
	out.Opportunities = entity.DedupeOpportunities(out.Opportunities)

	return &out, nil
}

// SearchAgents asks the model for frameworks relevant to the product. The
// discovery context, when non-empty, lists recent releases for the model to
// consider.
func (e *Engine) SearchAgents(
	ctx context.Context,
	product entity.ProductDescription,
	opportunities []entity.Opportunity,
	discoveryContext string,
) (*entity.AgentsFoundResult, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}

	values := searchPromptValues{
		Product: product,
		OpportunityTitles: lo.FilterMap(opportunities, func(o entity.Opportunity, _ int) (string, bool) {
			return o.Title, o.Title != ""
		}),
		DiscoveryContext: discoveryContext,
	}

	var out entity.AgentsFoundResult
	if err := e.generate(ctx, promptSearchAgents, values, &out); err != nil {
		return nil, err
	}
	out.Agents = lo.Filter(out.Agents, func(a entity.AgentFound, _ int) bool {
		return a.Name != ""
	})

	return &out, nil
}

// DeriveUseCases returns exactly three use cases for the product.
func (e *Engine) DeriveUseCases(ctx context.Context, product entity.ProductDescription) (*entity.UseCasesResult, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}

	var out entity.UseCasesResult
	if err := e.generate(ctx, promptDeriveUseCases, productPromptValues{Product: product}, &out); err != nil {
		return nil, err
	}
	if len(out.UseCases) > useCaseCount {
		out.UseCases = out.UseCases[:useCaseCount]
	}

	return &out, nil
}

// RecommendAdoption asks the model whether adopting the framework is worthwhile.
func (e *Engine) RecommendAdoption(ctx context.Context, frameworkName string, eval entity.EvalResult) (*entity.RecommendationVerdict, error) {
	var out entity.RecommendationVerdict
	if err := e.generate(ctx, promptRecommendAdoption, recommendPromptValues{
		FrameworkName: frameworkName,
		EvalResult:    eval,
	}, &out); err != nil {
		return nil, err
	}
	out.Confidence = entity.Clamp01(out.Confidence)

	return &out, nil
}

// BuildInsights writes the narrative part of the notification.
func (e *Engine) BuildInsights(
	ctx context.Context,
	productName string,
	opportunitiesSummary string,
	agentsTested []entity.AgentTestResult,
) (*entity.ReportInsights, error) {
	var out entity.ReportInsights
	if err := e.generate(ctx, promptBuildInsights, insightsPromptValues{
		ProductName:          productName,
		OpportunitiesSummary: opportunitiesSummary,
		AgentsTested:         agentsTested,
	}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}
