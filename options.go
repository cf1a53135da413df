package agenteval

import (
	"log/slog"

	"github.com/habiliai/agenteval/config"
	"github.com/habiliai/agenteval/discovery"
	"github.com/habiliai/agenteval/engine"
	"github.com/habiliai/agenteval/registry"
	"github.com/habiliai/agenteval/stage"
	"github.com/prometheus/client_golang/prometheus"
)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

func WithLogConfig(logConfig *config.LogConfig) Option {
	return func(e *Evaluator) {
		e.logConfig = logConfig
	}
}

func WithOpenAIAPIKey(apiKey string) Option {
	return func(e *Evaluator) {
		e.modelConfig.OpenAIAPIKey = apiKey
	}
}

func WithAnthropicAPIKey(apiKey string) Option {
	return func(e *Evaluator) {
		e.modelConfig.AnthropicAPIKey = apiKey
	}
}

// WithModel selects the model as "<provider>/<name>".
func WithModel(model string) Option {
	return func(e *Evaluator) {
		e.modelConfig.Model = model
	}
}

func WithModelConfig(modelConfig *config.ModelConfig) Option {
	return func(e *Evaluator) {
		e.modelConfig = modelConfig
	}
}

func WithTraceVerbose(traceVerbose bool) Option {
	return func(e *Evaluator) {
		e.traceVerbose = traceVerbose
	}
}

func WithRegistryConfig(registryConfig *config.RegistryConfig) Option {
	return func(e *Evaluator) {
		e.registryConfig = registryConfig
	}
}

// WithRegistryPath reads the registry from a YAML/JSON file, or from a
// SQLite catalog when path has the "sqlite:" prefix.
func WithRegistryPath(path string) Option {
	return func(e *Evaluator) {
		e.registryConfig.Path = path
	}
}

func WithRegistrySource(source registry.Source) Option {
	return func(e *Evaluator) {
		e.source = source
	}
}

func WithMaxResults(maxResults int) Option {
	return func(e *Evaluator) {
		e.registryConfig.MaxResults = maxResults
	}
}

func WithPreferSimulation(preferSimulation bool) Option {
	return func(e *Evaluator) {
		e.registryConfig.PreferSimulation = preferSimulation
	}
}

func WithGenerator(generator engine.Generator) Option {
	return func(e *Evaluator) {
		e.generator = generator
	}
}

// WithInvoker routes stage calls elsewhere, e.g. to a remote control plane.
func WithInvoker(invoker stage.Invoker) Option {
	return func(e *Evaluator) {
		e.invoker = invoker
	}
}

// WithNodeID prefixes stage endpoints as "<node>.<stage>".
func WithNodeID(nodeID string) Option {
	return func(e *Evaluator) {
		e.nodeID = nodeID
	}
}

func WithDiscovery(collector *discovery.Collector) Option {
	return func(e *Evaluator) {
		e.collector = collector
	}
}

func WithDiscoveryConfig(discoveryConfig *config.DiscoveryConfig) Option {
	return func(e *Evaluator) {
		e.discoveryConfig = discoveryConfig
	}
}

func WithMetricsRegisterer(registerer prometheus.Registerer) Option {
	return func(e *Evaluator) {
		e.registerer = registerer
	}
}
