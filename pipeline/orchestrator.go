// Package pipeline sequences the evaluation stages into a notification
// report. Every stage call degrades to a deterministic fallback; only report
// assembly can fail a run.
package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/habiliai/agenteval/discovery"
	"github.com/habiliai/agenteval/engine"
	"github.com/habiliai/agenteval/entity"
	"github.com/habiliai/agenteval/envelope"
	"github.com/habiliai/agenteval/errors"
	"github.com/habiliai/agenteval/internal/mylog"
	"github.com/habiliai/agenteval/registry"
	"github.com/habiliai/agenteval/stage"
	"github.com/samber/lo"
)

const (
	modeFull = "full"
	modeDemo = "demo"
)

type (
	Config struct {
		// NodeID prefixes every stage endpoint as "<node>.<stage>" when set.
		NodeID string
		// PreferSimulation scores agents known to the registry with the
		// simulator instead of the evaluation rubric.
		PreferSimulation bool
		// MaxResults bounds registry fallback searches and demo runs.
		MaxResults int
	}

	Orchestrator struct {
		invoker   stage.Invoker
		store     *registry.Store
		ranker    *registry.Ranker
		simulator *registry.Simulator
		discovery *discovery.Collector
		logger    *mylog.Logger
		metrics   *Metrics
		config    Config
	}

	Option func(*Orchestrator)
)

func WithLogger(logger *mylog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = metrics
	}
}

func WithDiscovery(collector *discovery.Collector) Option {
	return func(o *Orchestrator) {
		o.discovery = collector
	}
}

func WithSimulator(simulator *registry.Simulator) Option {
	return func(o *Orchestrator) {
		o.simulator = simulator
	}
}

func WithConfig(config Config) Option {
	return func(o *Orchestrator) {
		o.config = config
	}
}

// unavailableInvoker fails every call, so each stage of a full run falls back.
type unavailableInvoker struct{}

func (unavailableInvoker) Invoke(_ context.Context, endpoint string, _ map[string]any) (any, error) {
	return nil, errors.Wrapf(errors.ErrExternalCall, "no invoker configured for %s", endpoint)
}

// New builds an orchestrator. A nil invoker is allowed: RunDemo never calls
// it and RunFull degrades to fallbacks for every stage.
func New(invoker stage.Invoker, store *registry.Store, ranker *registry.Ranker, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		invoker: invoker,
		store:   store,
		ranker:  ranker,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.invoker == nil {
		o.invoker = unavailableInvoker{}
	}
	if o.logger == nil {
		o.logger = mylog.Discard()
	}
	if o.metrics == nil {
		o.metrics = NewMetrics(nil)
	}
	if o.simulator == nil {
		o.simulator = registry.NewSimulator(registry.DefaultSimulatorConfig())
	}
	return o
}

// RunFull runs opportunity analysis, agent discovery, per-agent evaluation
// and report assembly through the invoker.
func (o *Orchestrator) RunFull(ctx context.Context, product entity.ProductDescription) (report *entity.NotificationReport, err error) {
	defer func() {
		o.metrics.run(modeFull, err)
	}()

	if err := product.Validate(); err != nil {
		return nil, errors.Wrapf(errors.ErrFatalAssembly, "%v", err)
	}

	logger := o.logger.With(slog.String("product", product.Name), slog.String("mode", modeFull))
	logger.Info("pipeline started", slog.String("domain", product.Domain))

	opportunities := o.analyse(ctx, logger, product)
	useCase := opportunities.Opportunities[0]
	logger.Info(
		"opportunities analysed",
		slog.Int("count", len(opportunities.Opportunities)),
		slog.String("summary", opportunities.Summary),
	)

	found := o.discover(ctx, logger, product, opportunities)
	logger.Info(
		"agents discovered",
		slog.Any("agents", lo.Map(found.Agents, func(a entity.AgentFound, _ int) string { return a.Name })),
		slog.String("search_context", found.SearchContext),
	)

	tested := make([]entity.AgentTestResult, 0, len(found.Agents))
	for _, agent := range found.Agents {
		result := o.evaluate(ctx, logger, agent.Name, useCase)
		logger.Info(
			"agent tested",
			slog.String("agent", result.AgentName),
			slog.Float64("overall_score", result.EvalResult.OverallScore),
			slog.Bool("adopt_recommended", result.AdoptRecommended),
		)
		tested = append(tested, result)
	}

	insights := o.insights(ctx, logger, product, opportunities.Summary, tested)

	report, err = assemble(product, opportunities.Summary, tested, insights)
	if err != nil {
		logger.Error("report assembly failed", mylog.Err(err))
		return nil, err
	}
	logger.Info("pipeline finished", slog.Int("agents_tested", len(report.AgentsTested)), slog.Int("adopt", report.AdoptCount()))

	return report, nil
}

// RunDemo evaluates the registry's best matches with the simulator and
// rule-based verdicts only. It makes no stage calls and is deterministic for
// a fixed registry.
func (o *Orchestrator) RunDemo(ctx context.Context, product entity.ProductDescription) (report *entity.NotificationReport, err error) {
	defer func() {
		o.metrics.run(modeDemo, err)
	}()

	if err := product.Validate(); err != nil {
		return nil, errors.Wrapf(errors.ErrFatalAssembly, "%v", err)
	}

	logger := o.logger.With(slog.String("product", product.Name), slog.String("mode", modeDemo))

	useCase := DemoOpportunity(product)
	agents := o.ranker.Search(ctx, registry.QueryFor(product, nil), o.config.MaxResults)

	tested := make([]entity.AgentTestResult, 0, len(agents))
	for _, agent := range agents {
		eval := o.simulator.Simulate(agent, useCase.UseCaseName())
		verdict := engine.RuleBasedVerdict(eval)
		tested = append(tested, entity.AgentTestResult{
			AgentName:        agent.Name,
			EvalResult:       eval,
			AdoptRecommended: verdict.AdoptWorthwhile,
			Reasoning:        verdict.Reasoning,
		})
	}

	report, err = assemble(product, DefaultSummary, tested, engine.RuleBasedInsights(product.Name, tested))
	if err != nil {
		logger.Error("report assembly failed", mylog.Err(err))
		return nil, err
	}
	logger.Info("demo finished", slog.Int("agents_tested", len(report.AgentsTested)), slog.Int("adopt", report.AdoptCount()))

	return report, nil
}

func assemble(
	product entity.ProductDescription,
	summary string,
	tested []entity.AgentTestResult,
	insights entity.ReportInsights,
) (*entity.NotificationReport, error) {
	if strings.TrimSpace(insights.OverallInsights) == "" {
		insights.OverallInsights = DefaultInsights
	}
	if strings.TrimSpace(insights.NotificationMessage) == "" {
		insights.NotificationMessage = DefaultNotificationMessage(product.Name)
	}

	report := &entity.NotificationReport{
		ProductName:          product.Name,
		OpportunitiesSummary: summary,
		AgentsTested:         tested,
		OverallInsights:      insights.OverallInsights,
		NotificationMessage:  insights.NotificationMessage,
	}
	if err := report.Validate(); err != nil {
		return nil, err
	}
	return report, nil
}

// call invokes a stage and unwraps its envelope. An empty payload is an error.
func (o *Orchestrator) call(ctx context.Context, name string, args any) (map[string]any, error) {
	endpoint := name
	if o.config.NodeID != "" {
		endpoint = o.config.NodeID + "." + name
	}

	argMap, _ := envelope.AsMap(args, false)

	started := time.Now()
	raw, err := o.invoker.Invoke(ctx, endpoint, argMap)
	o.metrics.observeStage(name, err, time.Since(started))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrExternalCall, "%s: %v", name, err)
	}

	m := envelope.UnwrapDefault(raw)
	if len(m) == 0 {
		return nil, errors.Wrapf(errors.ErrEmptyResult, "%s", name)
	}
	return m, nil
}

func (o *Orchestrator) fallback(logger *mylog.Logger, name string, err error) {
	o.metrics.fallback(name)
	if err != nil {
		logger.Warn("stage fell back", slog.String("stage", name), mylog.Err(err))
	} else {
		logger.Warn("stage fell back", slog.String("stage", name))
	}
}

func (o *Orchestrator) analyse(ctx context.Context, logger *mylog.Logger, product entity.ProductDescription) entity.OpportunitiesResult {
	var res entity.OpportunitiesResult

	m, err := o.call(ctx, stage.AnalyseAgenticOpportunities, engine.ProductInput{Product: product})
	if err == nil {
		err = envelope.DecodeMap(m, &res)
	}
	res.Opportunities = entity.DedupeOpportunities(res.Opportunities)

	if err != nil || len(res.Opportunities) == 0 {
		o.fallback(logger, stage.AnalyseAgenticOpportunities, err)
		return DefaultOpportunities()
	}
	if strings.TrimSpace(res.Summary) == "" {
		res.Summary = MissingSummary
	}
	return res
}

func (o *Orchestrator) discover(
	ctx context.Context,
	logger *mylog.Logger,
	product entity.ProductDescription,
	opportunities entity.OpportunitiesResult,
) entity.AgentsFoundResult {
	var res entity.AgentsFoundResult

	m, err := o.call(ctx, stage.SearchAgentsForProduct, engine.SearchAgentsInput{
		Product:          product,
		Opportunities:    opportunities,
		DiscoveryContext: o.discovery.Collect(ctx, product),
	})
	if err == nil {
		err = envelope.DecodeMap(m, &res)
	}
	res.Agents = lo.Filter(res.Agents, func(a entity.AgentFound, _ int) bool {
		return strings.TrimSpace(a.Name) != ""
	})
	if err == nil && len(res.Agents) > 0 {
		return res
	}
	o.fallback(logger, stage.SearchAgentsForProduct, err)

	query := registry.QueryFor(product, opportunities.Opportunities[:1])
	agents := o.ranker.Search(ctx, query, o.config.MaxResults)
	if len(agents) == 0 {
		return entity.AgentsFoundResult{
			Agents:        DefaultAgents(),
			SearchContext: defaultAgentsContext,
		}
	}
	return entity.AgentsFoundResult{
		Agents: lo.Map(agents, func(a entity.AgentDescriptor, _ int) entity.AgentFound {
			return a.Found()
		}),
		SearchContext: defaultSearchContext,
	}
}

func (o *Orchestrator) evaluate(
	ctx context.Context,
	logger *mylog.Logger,
	agentName string,
	useCase entity.Opportunity,
) entity.AgentTestResult {
	useCaseID, useCaseName := useCase.UseCaseID(), useCase.UseCaseName()

	var mock entity.MockData
	m, err := o.call(ctx, stage.GenerateMockData, engine.GenerateMockDataInput{
		UseCaseID:   useCaseID,
		UseCaseName: useCaseName,
	})
	if err == nil {
		err = envelope.DecodeMap(m, &mock)
	}
	if err != nil || mock.Payload == nil {
		o.fallback(logger, stage.GenerateMockData, err)
		mock = engine.GenerateMockData(useCaseID, useCaseName)
	}

	var (
		evalStage = stage.EvaluateFramework
		evalArgs  any
	)
	if _, known := o.store.Lookup(ctx, agentName); known && o.config.PreferSimulation {
		evalStage = stage.SimulateFramework
		evalArgs = engine.SimulateFrameworkInput{
			FrameworkName: agentName,
			UseCaseName:   useCaseName,
		}
	} else {
		evalArgs = engine.EvaluateFrameworkInput{
			FrameworkName: agentName,
			MockPayload:   mock.Payload,
			UseCaseName:   useCaseName,
		}
	}

	raw, err := o.call(ctx, evalStage, evalArgs)
	if err != nil {
		o.fallback(logger, evalStage, err)
		raw = map[string]any{"framework_name": agentName}
	}
	eval := envelope.RepairEvalResult(raw)

	verdict, ok := o.recommend(ctx, logger, agentName, eval)
	if !ok {
		verdict = engine.RuleBasedVerdict(eval)
	}

	return entity.AgentTestResult{
		AgentName:        agentName,
		EvalResult:       eval,
		AdoptRecommended: verdict.AdoptWorthwhile,
		Reasoning:        verdict.Reasoning,
	}
}

func (o *Orchestrator) recommend(
	ctx context.Context,
	logger *mylog.Logger,
	agentName string,
	eval entity.EvalResult,
) (entity.RecommendationVerdict, bool) {
	evalMap, _ := envelope.AsMap(eval, false)
	m, err := o.call(ctx, stage.RecommendAdoption, engine.RecommendAdoptionInput{
		FrameworkName: agentName,
		EvalResult:    evalMap,
	})
	if err != nil {
		o.fallback(logger, stage.RecommendAdoption, err)
		return entity.RecommendationVerdict{}, false
	}

	verdict, ok := envelope.RepairVerdict(m)
	if !ok {
		o.fallback(logger, stage.RecommendAdoption, errors.Wrapf(errors.ErrMalformedResult, "adopt_worthwhile is missing"))
	}
	return verdict, ok
}

func (o *Orchestrator) insights(
	ctx context.Context,
	logger *mylog.Logger,
	product entity.ProductDescription,
	summary string,
	tested []entity.AgentTestResult,
) entity.ReportInsights {
	var res entity.ReportInsights

	m, err := o.call(ctx, stage.BuildNotificationReport, engine.BuildReportInput{
		ProductName:          product.Name,
		OpportunitiesSummary: summary,
		AgentsTested:         tested,
	})
	if err == nil {
		err = envelope.DecodeMap(m, &res)
	}
	if err != nil {
		o.fallback(logger, stage.BuildNotificationReport, err)
		return entity.ReportInsights{}
	}
	return res
}
