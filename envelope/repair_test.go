package envelope_test

import (
	"encoding/json"
	"testing"

	"github.com/habiliai/agenteval/entity"
	"github.com/habiliai/agenteval/envelope"
	"github.com/habiliai/agenteval/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairEvalResult(t *testing.T) {
	t.Run("missing overall score", func(t *testing.T) {
		got := envelope.RepairEvalResult(map[string]any{
			"execution_id": "e1",
			"result": map[string]any{
				"framework_name":     "LangGraph",
				"score_completeness": 0.9,
				"score_determinism":  "0.8",
				"score_fit":          json.Number("0.7"),
			},
		})
		assert.Equal(t, entity.EvalResult{
			FrameworkName:     "LangGraph",
			ScoreCompleteness: 0.9,
			ScoreDeterminism:  0.8,
			ScoreFit:          0.7,
			OverallScore:      0,
		}, got)
	})

	t.Run("empty mapping", func(t *testing.T) {
		got := envelope.RepairEvalResult(map[string]any{})
		assert.Equal(t, "unknown", got.FrameworkName)
		assert.Zero(t, got.OverallScore)
		assert.Zero(t, got.ScoreFit)
	})

	t.Run("not a mapping", func(t *testing.T) {
		assert.NotPanics(t, func() {
			got := envelope.RepairEvalResult(42)
			assert.Equal(t, "unknown", got.FrameworkName)
		})
	})

	t.Run("out of range and junk scores", func(t *testing.T) {
		got := envelope.RepairEvalResult(map[string]any{
			"framework_name":     "X",
			"score_completeness": 3,
			"score_determinism":  -1,
			"score_fit":          "high",
			"overall_score":      0.5,
			"notes":              "ok",
		})
		assert.Equal(t, 1.0, got.ScoreCompleteness)
		assert.Equal(t, 0.0, got.ScoreDeterminism)
		assert.Equal(t, 0.0, got.ScoreFit)
		assert.Equal(t, 0.5, got.OverallScore)
		assert.Equal(t, "ok", got.Notes)
	})

	t.Run("typed result", func(t *testing.T) {
		in := entity.EvalResult{FrameworkName: "CrewAI", ScoreFit: 0.6, OverallScore: 0.7, Notes: "n"}
		assert.Equal(t, in, envelope.RepairEvalResult(in))
	})
}

func TestRepairVerdict(t *testing.T) {
	verdict, ok := envelope.RepairVerdict(map[string]any{
		"status": "succeeded",
		"result": map[string]any{
			"adopt_worthwhile": "true",
			"confidence":       1.7,
			"reasoning":        "strong fit",
		},
	})
	require.True(t, ok)
	assert.True(t, verdict.AdoptWorthwhile)
	assert.Equal(t, 1.0, verdict.Confidence)
	assert.Equal(t, "strong fit", verdict.Reasoning)

	_, ok = envelope.RepairVerdict(map[string]any{"reasoning": "no flag"})
	assert.False(t, ok)

	_, ok = envelope.RepairVerdict(nil)
	assert.False(t, ok)
}

func TestDecode(t *testing.T) {
	var out entity.OpportunitiesResult
	err := envelope.Decode(map[string]any{
		"execution_id": "e",
		"result": entity.OpportunitiesResult{
			Opportunities: []entity.Opportunity{{ID: "o1", Title: "Triage", SuggestedAgentType: "support triage"}},
			Summary:       "support",
		},
	}, &out)
	require.NoError(t, err)
	require.Len(t, out.Opportunities, 1)
	assert.Equal(t, "support triage", out.Opportunities[0].SuggestedAgentType)
	assert.Equal(t, "support", out.Summary)

	var found entity.AgentsFoundResult
	require.ErrorIs(t, envelope.Decode(nil, &found), errors.ErrEmptyResult)
	require.ErrorIs(t, envelope.Decode(map[string]any{"agents": "nope"}, &found), errors.ErrMalformedResult)
}
