package stage

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/habiliai/agenteval/errors"
	"github.com/habiliai/agenteval/internal/mylog"
)

const StatusSucceeded = "succeeded"

// Invoker performs a cross-component call. The raw result may or may not be
// envelope wrapped.
type Invoker interface {
	Invoke(ctx context.Context, endpoint string, args map[string]any) (any, error)
}

// LocalInvoker dispatches to a Registry in process and wraps every result in
// an execution envelope, the same shape a remote control plane returns.
type LocalInvoker struct {
	registry *Registry
	logger   *mylog.Logger
}

var _ Invoker = (*LocalInvoker)(nil)

func NewLocalInvoker(registry *Registry, logger *mylog.Logger) *LocalInvoker {
	if logger == nil {
		logger = mylog.Discard()
	}
	return &LocalInvoker{
		registry: registry,
		logger:   logger,
	}
}

func (i *LocalInvoker) Invoke(ctx context.Context, endpoint string, args map[string]any) (any, error) {
	name := StageName(endpoint)
	def, ok := i.registry.Get(name)
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "stage %s", name)
	}

	executionID := uuid.NewString()
	started := time.Now()
	logger := i.logger.With(slog.String("stage", name), slog.String("execution_id", executionID))
	logger.Debug("stage started")

	out, err := def.Handler(ctx, args)
	if err != nil {
		logger.Debug("stage failed", mylog.Err(err))
		return nil, errors.Wrapf(err, "stage %s", name)
	}
	logger.Debug("stage succeeded", "elapsed", time.Since(started))

	return Envelope(executionID, out), nil
}

// Envelope wraps a stage result the way the control plane does.
func Envelope(executionID string, result any) map[string]any {
	return map[string]any{
		"execution_id": executionID,
		"status":       StatusSucceeded,
		"result":       result,
	}
}

// StageName strips a "<node>." prefix from endpoint.
func StageName(endpoint string) string {
	if idx := strings.LastIndexByte(endpoint, '.'); idx >= 0 {
		return endpoint[idx+1:]
	}
	return endpoint
}
