package envelope_test

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/habiliai/agenteval/entity"
	"github.com/habiliai/agenteval/envelope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEnvelope(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
		want bool
	}{
		{"execution id", map[string]any{"execution_id": "x"}, true},
		{"run id", map[string]any{"run_id": nil}, true},
		{"status and result", map[string]any{"status": "succeeded", "result": 1}, true},
		{"status only", map[string]any{"status": "succeeded"}, false},
		{"result only", map[string]any{"result": map[string]any{}}, false},
		{"payload", map[string]any{"framework_name": "CrewAI"}, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, envelope.IsEnvelope(tt.in))
		})
	}
}

func TestUnwrap(t *testing.T) {
	payload := map[string]any{"overall_score": 0.8}

	t.Run("non mapping yields empty map", func(t *testing.T) {
		for _, raw := range []any{nil, 3, "plain text", []any{1, 2}, true} {
			got := envelope.UnwrapDefault(raw)
			require.NotNil(t, got)
			assert.Empty(t, got)
		}
	})

	t.Run("payload passes through", func(t *testing.T) {
		assert.Equal(t, payload, envelope.UnwrapDefault(payload))
	})

	t.Run("key order result output data body", func(t *testing.T) {
		raw := map[string]any{
			"execution_id": "e1",
			"result":       "not a mapping",
			"output":       map[string]any{"from": "output"},
			"data":         map[string]any{"from": "data"},
		}
		assert.Equal(t, map[string]any{"from": "output"}, envelope.UnwrapDefault(raw))
	})

	t.Run("envelope without mapping payload is returned", func(t *testing.T) {
		raw := map[string]any{"status": "failed", "result": nil}
		assert.Equal(t, raw, envelope.UnwrapDefault(raw))
	})

	t.Run("depth limit", func(t *testing.T) {
		inner := map[string]any{"run_id": "r2", "data": payload}
		raw := map[string]any{"run_id": "r1", "data": inner}
		assert.Equal(t, inner, envelope.Unwrap(raw, 1))
		assert.Equal(t, raw, envelope.Unwrap(raw, 0))
		assert.Equal(t, payload, envelope.Unwrap(raw, 2))
	})

	t.Run("json text is not a mapping", func(t *testing.T) {
		assert.Equal(t, map[string]any{}, envelope.UnwrapDefault(`{"a":1}`))
		assert.Equal(t, map[string]any{}, envelope.UnwrapDefault([]byte(`{"execution_id":"e","result":{"overall_score":0.8}}`)))
		assert.Equal(t, map[string]any{}, envelope.UnwrapDefault(json.RawMessage(`{"status":"succeeded","result":{"overall_score":0.8}}`)))
	})

	t.Run("structs", func(t *testing.T) {
		got := envelope.UnwrapDefault(map[string]any{
			"execution_id": "e",
			"result":       entity.EvalResult{FrameworkName: "CrewAI", OverallScore: 0.8},
		})
		assert.Equal(t, "CrewAI", got["framework_name"])
		assert.Equal(t, 0.8, got["overall_score"])
	})
}

func wrap(r *rand.Rand, payload map[string]any, depth int) map[string]any {
	cur := payload
	for i := 0; i < depth; i++ {
		env := map[string]any{}
		switch r.IntN(3) {
		case 0:
			env["execution_id"] = fmt.Sprintf("exec-%d", i)
		case 1:
			env["run_id"] = fmt.Sprintf("run-%d", i)
		default:
			env["status"] = "succeeded"
		}
		key := []string{"result", "output", "data", "body"}[r.IntN(4)]
		if _, ok := env["status"]; ok {
			key = "result"
		}
		env[key] = cur
		if r.IntN(2) == 0 {
			env["meta"] = map[string]any{"attempt": i}
		}
		cur = env
	}
	return cur
}

func TestUnwrapInnermostAndIdempotent(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 7))

	for i := 0; i < 500; i++ {
		depth := r.IntN(6)
		payload := map[string]any{
			"framework_name": fmt.Sprintf("fw-%d", i),
			"overall_score":  r.Float64(),
		}
		raw := wrap(r, payload, depth)

		once := envelope.UnwrapDefault(raw)
		require.Equal(t, payload, once, "depth %d", depth)
		require.Equal(t, once, envelope.UnwrapDefault(once), "depth %d", depth)
	}
}

func TestUnwrapBeyondMaxDepth(t *testing.T) {
	payload := map[string]any{"overall_score": 0.5}
	raw := payload
	for i := 0; i < envelope.DefaultMaxDepth+2; i++ {
		raw = map[string]any{"execution_id": fmt.Sprintf("e%d", i), "result": raw}
	}

	once := envelope.UnwrapDefault(raw)
	assert.True(t, envelope.IsEnvelope(once))
	assert.Equal(t, payload, envelope.UnwrapDefault(once))
}
