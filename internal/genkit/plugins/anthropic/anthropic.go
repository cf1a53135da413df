// Package anthropic registers Claude models with genkit for single-turn
// structured generation.
package anthropic

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core"
	"github.com/firebase/genkit/go/genkit"
)

const (
	provider    = "anthropic"
	labelPrefix = "Anthropic"
	apiKeyEnv   = "ANTHROPIC_API_KEY"

	defaultMaxTokens = 4096
)

var (
	// model name -> API model name
	knownModels = map[string]string{
		"claude-4-sonnet":   "claude-sonnet-4-20250514",
		"claude-3.7-sonnet": "claude-3-7-sonnet-latest",
		"claude-3.5-haiku":  "claude-3-5-haiku-latest",
	}
	defaultRequestTimeout = 5 * time.Minute
)

type Plugin struct {
	// The API key to access the service for Anthropic.
	// If empty, the values of the environment variables ANTHROPIC_API_KEY will be consulted.
	APIKey string

	// The timeout for requests to the Anthropic API.
	// If empty, the default timeout of 5 minutes will be used.
	RequestTimeout time.Duration

	// MaxTokens is used when a request does not set maxOutputTokens.
	MaxTokens int

	// Models are registered under their API name in addition to the known models.
	Models []string

	Options []option.RequestOption
}

var (
	_ genkit.Plugin = (*Plugin)(nil)
)

// Name implements genkit.Plugin.
func (o *Plugin) Name() string {
	return provider
}

// Init implements genkit.Plugin.
func (o *Plugin) Init(_ context.Context, g *genkit.Genkit) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("%s.Init: %w", provider, err)
		}
	}()

	apiKey := o.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(apiKeyEnv)
		if apiKey == "" {
			return fmt.Errorf("Anthropic API key not found in environment variable: %s", apiKeyEnv)
		}
	}

	if o.RequestTimeout == 0 {
		o.RequestTimeout = defaultRequestTimeout
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = defaultMaxTokens
	}

	client := anthropic.NewClient(append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(o.RequestTimeout),
	}, o.Options...)...)

	for name, apiName := range knownModels {
		defineModel(g, &client, name, apiName, o.MaxTokens)
	}
	for _, m := range o.Models {
		if _, ok := knownModels[m]; ok {
			continue
		}
		defineModel(g, &client, m, m, o.MaxTokens)
	}

	return nil
}

func defineModel(g *genkit.Genkit, client *anthropic.Client, name, apiName string, maxTokens int) ai.Model {
	caps := ai.ModelSupports{
		Multiturn:  true,
		SystemRole: true,
	}
	return genkit.DefineModel(
		g,
		provider,
		name,
		&ai.ModelInfo{
			Label:    labelPrefix + " - " + name,
			Supports: &caps,
		},
		func(ctx context.Context, req *ai.ModelRequest, _ core.StreamCallback[*ai.ModelResponseChunk]) (*ai.ModelResponse, error) {
			params, err := buildMessageParams(req, apiName, maxTokens)
			if err != nil {
				return nil, err
			}

			resp, err := client.Messages.New(ctx, params)
			if err != nil {
				return nil, fmt.Errorf("anthropic message generation failed: %w", err)
			}

			r := translateResponse(resp)
			r.Request = req
			return r, nil
		},
	)
}

// Model returns the [ai.Model] with the given name.
// It returns nil if the model was not defined.
func Model(g *genkit.Genkit, name string) ai.Model {
	return genkit.LookupModel(g, provider, name)
}
