// Package genkit wires the model providers into a genkit instance.
package genkit

import (
	"context"
	"log/slog"
	"strings"

	"github.com/firebase/genkit/go/genkit"
	"github.com/habiliai/agenteval/errors"
	"github.com/habiliai/agenteval/internal/genkit/plugins/anthropic"
	"github.com/habiliai/agenteval/internal/genkit/plugins/openai"
)

const DefaultModel = "openai/gpt-4o-mini"

type Options struct {
	OpenAIAPIKey    string
	AnthropicAPIKey string
	// DefaultModel is "<provider>/<model>", e.g. "openai/gpt-4o-mini".
	DefaultModel string
	MaxTokens    int
	Logger       *slog.Logger
	TraceVerbose bool
}

// Init returns a genkit instance with every provider that has an API key.
func Init(ctx context.Context, opts Options) (*genkit.Genkit, error) {
	provider, model, _ := strings.Cut(opts.DefaultModel, "/")

	var plugins []genkit.Plugin
	if opts.OpenAIAPIKey != "" {
		p := &openai.Plugin{APIKey: opts.OpenAIAPIKey}
		if provider == "openai" && model != "" {
			p.Models = []string{model}
		}
		plugins = append(plugins, p)
	}
	if opts.AnthropicAPIKey != "" {
		p := &anthropic.Plugin{APIKey: opts.AnthropicAPIKey, MaxTokens: opts.MaxTokens}
		if provider == "anthropic" && model != "" {
			p.Models = []string{model}
		}
		plugins = append(plugins, p)
	}
	if len(plugins) == 0 {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "no model provider configured")
	}

	defaultModel := opts.DefaultModel
	if defaultModel == "" {
		defaultModel = DefaultModel
	}
	g, err := genkit.Init(
		ctx,
		genkit.WithPlugins(plugins...),
		genkit.WithDefaultModel(defaultModel),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to init genkit")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	genkit.RegisterSpanProcessor(g, &loggingSpanProcessor{
		verbose: opts.TraceVerbose,
		logger:  logger,
	})

	return g, nil
}
