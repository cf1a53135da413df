// Package stage is the dispatch table of pipeline stages: every stage is an
// explicitly registered handler with declared input and output schemas.
package stage

import (
	"context"
	"sync"

	"github.com/habiliai/agenteval/envelope"
	"github.com/habiliai/agenteval/errors"
	"github.com/invopop/jsonschema"
)

const (
	AnalyseAgenticOpportunities = "analyse_agentic_opportunities"
	SearchAgentsForProduct      = "search_agents_for_product"
	DeriveUseCases              = "derive_use_cases"
	GenerateMockData            = "generate_mock_data"
	EvaluateFramework           = "evaluate_framework"
	SimulateFramework           = "simulate_framework"
	RecommendAdoption           = "recommend_adoption"
	BuildNotificationReport     = "build_notification_report"
	EvaluatePipeline            = "evaluate_pipeline"
)

// wrapperKeys are the single keys a caller may nest the real arguments under.
var wrapperKeys = []string{"input", "inp"}

type Handler func(ctx context.Context, args map[string]any) (any, error)

type Definition struct {
	Name        string
	Description string
	// Input and Output are zero values of the argument and result types,
	// reflected into JSON schemas.
	Input   any
	Output  any
	Handler Handler
}

// Define builds a Definition from a typed function. Arguments are decoded
// into In by json tag. A body of the form {"input": {...}} or {"inp": {...}}
// is unwrapped first.
func Define[In any, Out any](name, description string, fn func(ctx context.Context, in In) (Out, error)) Definition {
	return Definition{
		Name:        name,
		Description: description,
		Input:       new(In),
		Output:      new(Out),
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			var in In
			if err := envelope.DecodeMap(unwrapInput(args), &in); err != nil {
				return nil, errors.Wrapf(errors.ErrInvalidParams, "stage %s: %v", name, err)
			}
			return fn(ctx, in)
		},
	}
}

func unwrapInput(args map[string]any) map[string]any {
	if len(args) != 1 {
		return args
	}
	for _, key := range wrapperKeys {
		if inner, ok := envelope.AsMap(args[key], false); ok {
			return inner
		}
	}
	return args
}

type Schema struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Input       *jsonschema.Schema `json:"input,omitempty"`
	Output      *jsonschema.Schema `json:"output,omitempty"`
}

// Registry maps stage names to definitions, keeping registration order.
type Registry struct {
	mu    sync.RWMutex
	defs  map[string]Definition
	order []string
}

func NewRegistry() *Registry {
	return &Registry{
		defs: map[string]Definition{},
	}
}

func (r *Registry) Register(defs ...Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, def := range defs {
		if def.Name == "" {
			return errors.Wrapf(errors.ErrInvalidParams, "stage name is required")
		}
		if def.Handler == nil {
			return errors.Wrapf(errors.ErrInvalidParams, "stage %s has no handler", def.Name)
		}
		if _, ok := r.defs[def.Name]; ok {
			return errors.Wrapf(errors.ErrInvalidParams, "stage %s already registered", def.Name)
		}
		r.defs[def.Name] = def
		r.order = append(r.order, def.Name)
	}

	return nil
}

func (r *Registry) Get(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.defs[name]
	return def, ok
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

func (r *Registry) Schemas() []Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reflector := &jsonschema.Reflector{DoNotReference: true}
	schemas := make([]Schema, 0, len(r.order))
	for _, name := range r.order {
		def := r.defs[name]
		s := Schema{Name: def.Name, Description: def.Description}
		if def.Input != nil {
			s.Input = reflector.Reflect(def.Input)
		}
		if def.Output != nil {
			s.Output = reflector.Reflect(def.Output)
		}
		schemas = append(schemas, s)
	}
	return schemas
}
