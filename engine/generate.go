package engine

import (
	"context"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/habiliai/agenteval/errors"
)

type (
	GenerateRequest struct {
		System string
		User   string
		// Model is "<provider>/<model>". A bare name is an OpenAI model.
		// Empty uses the default model of the generator.
		Model       string
		Temperature float64
	}

	// Generator produces structured output for a prompt. out is a pointer to
	// the result type, or *string for plain text.
	Generator interface {
		Generate(ctx context.Context, req GenerateRequest, out any) error
	}

	GenkitGenerator struct {
		genkit *genkit.Genkit
	}
)

var _ Generator = (*GenkitGenerator)(nil)

func NewGenkitGenerator(g *genkit.Genkit) *GenkitGenerator {
	return &GenkitGenerator{genkit: g}
}

func (g *GenkitGenerator) Generate(ctx context.Context, req GenerateRequest, out any) error {
	if out == nil {
		return errors.New("output is nil")
	}

	opts := []ai.GenerateOption{
		ai.WithSystem(req.System),
		ai.WithPrompt(req.User),
		ai.WithConfig(&ai.GenerationCommonConfig{
			Temperature: req.Temperature,
		}),
	}
	switch v := out.(type) {
	case *string:
		opts = append(opts, ai.WithOutputFormat(ai.OutputFormatText))
	default:
		opts = append(opts, ai.WithOutputType(v))
	}

	if modelName := req.Model; modelName != "" {
		if !strings.Contains(modelName, "/") {
			modelName = "openai/" + modelName
		}
		opts = append(opts, ai.WithModelName(modelName))
	}

	resp, err := genkit.Generate(ctx, g.genkit, opts...)
	if err != nil {
		return errors.Wrapf(errors.ErrExternalCall, "generate: %v", err)
	}

	switch v := out.(type) {
	case *string:
		*v = resp.Text()
	default:
		if err := resp.Output(v); err != nil {
			return errors.Wrapf(errors.ErrMalformedResult, "generate: %v", err)
		}
	}

	return nil
}
