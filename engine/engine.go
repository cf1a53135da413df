// Package engine implements the pipeline stages: LLM reasoners that produce
// structured output through a Generator, and deterministic skills.
package engine

import (
	"github.com/habiliai/agenteval/internal/mylog"
)

type (
	Engine struct {
		logger    *mylog.Logger
		generator Generator
		model     string
	}

	Option func(*Engine)
)

func WithModel(model string) Option {
	return func(e *Engine) {
		e.model = model
	}
}

// NewEngine returns an Engine. A nil generator is allowed: every reasoner
// then fails with errors.ErrExternalCall and callers fall back.
func NewEngine(logger *mylog.Logger, generator Generator, opts ...Option) *Engine {
	if logger == nil {
		logger = mylog.Discard()
	}
	e := &Engine{
		logger:    logger,
		generator: generator,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// HasGenerator reports whether the reasoners can reach a model.
func (e *Engine) HasGenerator() bool {
	return e.generator != nil
}
