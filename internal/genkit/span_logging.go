package genkit

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/sdk/trace"
)

const maxAttrValueLen = 256

// loggingSpanProcessor writes genkit action spans (model calls, flows) to the
// structured logger at debug level.
type loggingSpanProcessor struct {
	verbose bool
	logger  *slog.Logger
}

func (l *loggingSpanProcessor) OnStart(ctx context.Context, s trace.ReadWriteSpan) {
	l.logger.DebugContext(ctx, "span start", l.buildArgs(s)...)
}

func (l *loggingSpanProcessor) OnEnd(s trace.ReadOnlySpan) {
	args := l.buildArgs(s)
	args = append(args, slog.Duration("elapsed", s.EndTime().Sub(s.StartTime())))
	if st := s.Status(); st.Description != "" {
		args = append(args, slog.String("status", st.Description))
	}
	l.logger.Debug("span end", args...)
}

func (l *loggingSpanProcessor) Shutdown(context.Context) error {
	return nil
}

func (l *loggingSpanProcessor) ForceFlush(context.Context) error {
	return nil
}

var _ trace.SpanProcessor = (*loggingSpanProcessor)(nil)

func (l *loggingSpanProcessor) buildArgs(s trace.ReadOnlySpan) []any {
	args := []any{
		slog.String("name", s.Name()),
	}
	for _, attr := range s.Attributes() {
		value := attr.Value.Emit()
		// prompts and outputs are only logged in verbose mode
		if !l.verbose && len(value) > maxAttrValueLen {
			continue
		}
		args = append(args, slog.String(string(attr.Key), value))
	}

	return args
}
