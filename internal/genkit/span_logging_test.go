package genkit

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace"
)

func newTestProcessor(verbose bool) (*loggingSpanProcessor, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return &loggingSpanProcessor{verbose: verbose, logger: logger}, &buf
}

func TestLoggingSpanProcessor(t *testing.T) {
	long := strings.Repeat("x", maxAttrValueLen+1)

	for _, tc := range []struct {
		name     string
		verbose  bool
		wantLong bool
	}{
		{name: "terse", verbose: false, wantLong: false},
		{name: "verbose", verbose: true, wantLong: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p, buf := newTestProcessor(tc.verbose)
			tp := trace.NewTracerProvider(trace.WithSpanProcessor(p))
			defer func() {
				require.NoError(t, tp.Shutdown(context.Background()))
			}()

			_, span := tp.Tracer("test").Start(context.Background(), "generate")
			span.SetAttributes(
				attribute.String("genkit:type", "action"),
				attribute.String("genkit:input", long),
			)
			span.End()

			out := buf.String()
			assert.Contains(t, out, `"msg":"span start"`)
			assert.Contains(t, out, `"msg":"span end"`)
			assert.Contains(t, out, `"genkit:type":"action"`)
			assert.Equal(t, tc.wantLong, strings.Contains(out, long))
		})
	}
}

func TestInitRequiresProvider(t *testing.T) {
	_, err := Init(context.Background(), Options{})
	assert.Error(t, err)
}
