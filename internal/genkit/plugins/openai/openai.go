// Package openai registers OpenAI chat models with genkit for single-turn
// structured generation.
package openai

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core"
	"github.com/firebase/genkit/go/genkit"
	goopenai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	provider    = "openai"
	labelPrefix = "OpenAI"
	apiKeyEnv   = "OPENAI_API_KEY"
)

var (
	textOnly = ai.ModelSupports{
		Multiturn:  true,
		SystemRole: true,
	}

	knownModels = []string{
		"gpt-4o",
		"gpt-4o-mini",
		"gpt-4.1",
		"gpt-4.1-mini",
		"gpt-4-turbo",
	}
)

type Plugin struct {
	// The API key to access the service.
	// If empty, the values of the environment variables OPENAI_API_KEY will be consulted.
	APIKey string

	// Models are registered in addition to the known models.
	Models []string

	// Options are passed to the underlying client, e.g. a base URL for tests.
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
			return fmt.Errorf("OpenAI requires setting %s in the environment", apiKeyEnv)
		}
	}

	client := goopenai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, o.Options...)...)

	models := slices.Clone(knownModels)
	for _, m := range o.Models {
		if !slices.Contains(models, m) {
			models = append(models, m)
		}
	}
	for _, m := range models {
		defineModel(g, &client, m)
	}

	return nil
}

func defineModel(g *genkit.Genkit, client *goopenai.Client, name string) ai.Model {
	caps := textOnly
	return genkit.DefineModel(
		g,
		provider,
		name,
		&ai.ModelInfo{
			Label:    labelPrefix + " - " + name,
			Supports: &caps,
		},
		func(ctx context.Context, req *ai.ModelRequest, _ core.StreamCallback[*ai.ModelResponseChunk]) (*ai.ModelResponse, error) {
			return generate(ctx, client, name, req)
		},
	)
}

// Model returns the [ai.Model] with the given name.
// It returns nil if the model was not defined.
func Model(g *genkit.Genkit, name string) ai.Model {
	return genkit.LookupModel(g, provider, name)
}

func generate(
	ctx context.Context,
	client *goopenai.Client,
	model string,
	input *ai.ModelRequest,
) (*ai.ModelResponse, error) {
	req, err := convertRequest(model, input)
	if err != nil {
		return nil, err
	}

	res, err := client.Chat.Completions.New(ctx, req)
	if err != nil {
		return nil, err
	}

	r, err := translateResponse(res, isJSONOutput(input))
	if err != nil {
		return nil, err
	}
	r.Request = input
	return r, nil
}
