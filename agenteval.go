// Package agenteval evaluates which agent frameworks fit a product: it
// analyses where agentic AI applies, discovers candidate frameworks, scores
// each one and delivers a notification report with adoption guidance.
package agenteval

import (
	"context"
	"log/slog"

	"github.com/habiliai/agenteval/config"
	"github.com/habiliai/agenteval/discovery"
	"github.com/habiliai/agenteval/engine"
	"github.com/habiliai/agenteval/entity"
	"github.com/habiliai/agenteval/errors"
	"github.com/habiliai/agenteval/internal/genkit"
	"github.com/habiliai/agenteval/internal/mylog"
	"github.com/habiliai/agenteval/pipeline"
	"github.com/habiliai/agenteval/registry"
	"github.com/habiliai/agenteval/stage"
	"github.com/prometheus/client_golang/prometheus"
)

type (
	ProductDescription = entity.ProductDescription
	NotificationReport = entity.NotificationReport
	AgentDescriptor    = entity.AgentDescriptor
	EvalResult         = entity.EvalResult
	Opportunity        = entity.Opportunity

	Evaluator struct {
		logger     *slog.Logger
		generator  engine.Generator
		invoker    stage.Invoker
		source     registry.Source
		collector  *discovery.Collector
		registerer prometheus.Registerer

		modelConfig     *config.ModelConfig
		registryConfig  *config.RegistryConfig
		discoveryConfig *config.DiscoveryConfig
		logConfig       *config.LogConfig
		nodeID          string
		traceVerbose    bool

		store        *registry.Store
		ranker       *registry.Ranker
		simulator    *registry.Simulator
		engine       *engine.Engine
		stages       *stage.Registry
		orchestrator *pipeline.Orchestrator
		metrics      *pipeline.Metrics
		closers      []func() error
	}
	Option func(*Evaluator)
)

// NewEvaluator wires the registry, the stage table and the pipeline. Without
// a generator or model API key the LLM stages fail and every run degrades to
// fallbacks.
func NewEvaluator(ctx context.Context, optionFuncs ...Option) (*Evaluator, error) {
	e := &Evaluator{
		modelConfig:     config.NewModelConfig(),
		registryConfig:  config.NewRegistryConfig(),
		discoveryConfig: config.NewDiscoveryConfig(),
		logConfig:       config.NewLogConfig(),
	}
	for _, f := range optionFuncs {
		f(e)
	}

	if e.logger == nil {
		e.logger = mylog.NewLogger(e.logConfig.LogLevel, e.logConfig.LogHandler)
	}

	if e.source == nil {
		source, err := e.openRegistrySource(ctx)
		if err != nil {
			return nil, err
		}
		e.source = source
	}
	e.store = registry.NewStore(e.source, e.logger)
	e.ranker = registry.NewRanker(e.store, registry.DefaultRankerConfig())
	e.simulator = registry.NewSimulator(registry.DefaultSimulatorConfig())

	if e.generator == nil && e.modelConfig.HasProvider() {
		g, err := genkit.Init(ctx, genkit.Options{
			OpenAIAPIKey:    e.modelConfig.OpenAIAPIKey,
			AnthropicAPIKey: e.modelConfig.AnthropicAPIKey,
			DefaultModel:    e.modelConfig.Model,
			MaxTokens:       e.modelConfig.MaxTokens,
			Logger:          e.logger,
			TraceVerbose:    e.traceVerbose,
		})
		if err != nil {
			e.Close()
			return nil, err
		}
		e.generator = engine.NewGenkitGenerator(g)
	}
	if e.generator == nil {
		e.logger.Warn("no model provider configured; LLM stages will fall back to rules")
	}
	e.engine = engine.NewEngine(e.logger, e.generator, engine.WithModel(e.modelConfig.Model))

	e.stages = stage.NewRegistry()
	if err := engine.Register(e.stages, e.engine, e.store, e.simulator); err != nil {
		e.Close()
		return nil, err
	}
	if e.invoker == nil {
		e.invoker = stage.NewLocalInvoker(e.stages, e.logger)
	}

	if e.collector == nil {
		e.collector = discovery.NewCollectorFromConfig(e.discoveryConfig, e.logger)
	}

	e.metrics = pipeline.NewMetrics(e.registerer)
	e.orchestrator = pipeline.New(
		e.invoker,
		e.store,
		e.ranker,
		pipeline.WithLogger(e.logger),
		pipeline.WithMetrics(e.metrics),
		pipeline.WithDiscovery(e.collector),
		pipeline.WithSimulator(e.simulator),
		pipeline.WithConfig(pipeline.Config{
			NodeID:           e.nodeID,
			PreferSimulation: e.registryConfig.PreferSimulation,
			MaxResults:       e.registryConfig.MaxResults,
		}),
	)

	if err := e.stages.Register(stage.Define(
		stage.EvaluatePipeline,
		"Run the full evaluation pipeline for a product",
		func(ctx context.Context, in engine.ProductInput) (*entity.NotificationReport, error) {
			return e.orchestrator.RunFull(ctx, in.Product)
		},
	)); err != nil {
		e.Close()
		return nil, err
	}

	return e, nil
}

func (e *Evaluator) openRegistrySource(ctx context.Context) (registry.Source, error) {
	if path, ok := e.registryConfig.SQLitePath(); ok {
		source, err := registry.OpenSQLiteSource(ctx, path)
		if err != nil {
			return nil, err
		}
		e.closers = append(e.closers, source.Close)
		return source, nil
	}
	if e.registryConfig.Path != "" {
		return &registry.FileSource{Path: e.registryConfig.Path}, nil
	}
	return registry.EmbeddedSource{}, nil
}

// RunFullPipeline runs every stage through the invoker. It only fails when
// the report itself cannot be assembled (errors.ErrFatalAssembly).
func (e *Evaluator) RunFullPipeline(ctx context.Context, product ProductDescription) (*NotificationReport, error) {
	return e.orchestrator.RunFull(ctx, product)
}

// RunDemoPipeline scores the registry's best matches with the simulator and
// rule-based verdicts, without any external call.
func (e *Evaluator) RunDemoPipeline(ctx context.Context, product ProductDescription) (*NotificationReport, error) {
	return e.orchestrator.RunDemo(ctx, product)
}

// Search ranks the registry for the product.
func (e *Evaluator) Search(ctx context.Context, product ProductDescription, opportunities []Opportunity) []AgentDescriptor {
	return e.ranker.Search(ctx, registry.QueryFor(product, opportunities), e.registryConfig.MaxResults)
}

// Explain returns every registry entry with its relevance score, highest first.
func (e *Evaluator) Explain(ctx context.Context, product ProductDescription, opportunities []Opportunity) []registry.ScoredAgent {
	return e.ranker.Explain(ctx, registry.QueryFor(product, opportunities))
}

func (e *Evaluator) Simulate(agent AgentDescriptor, useCaseName string) EvalResult {
	return e.simulator.Simulate(agent, useCaseName)
}

// SimulateByName simulates a registry entry looked up case-insensitively.
func (e *Evaluator) SimulateByName(ctx context.Context, name, useCaseName string) (EvalResult, error) {
	agent, ok := e.store.Lookup(ctx, name)
	if !ok {
		return EvalResult{}, errors.Wrapf(errors.ErrNotFound, "agent %q is not in the registry", name)
	}
	return e.simulator.Simulate(agent, useCaseName), nil
}

// Agents returns the registry in document order.
func (e *Evaluator) Agents(ctx context.Context) []AgentDescriptor {
	return e.store.Load(ctx)
}

// Stages is the dispatch table served to remote callers.
func (e *Evaluator) Stages() *stage.Registry {
	return e.stages
}

func (e *Evaluator) Invoker() stage.Invoker {
	return e.invoker
}

func (e *Evaluator) Logger() *slog.Logger {
	return e.logger
}

func (e *Evaluator) Close() {
	for _, closer := range e.closers {
		if err := closer(); err != nil {
			e.logger.Warn("failed to close resource", mylog.Err(err))
		}
	}
	e.closers = nil
}
