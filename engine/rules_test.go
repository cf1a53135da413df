package engine_test

import (
	"testing"

	"github.com/habiliai/agenteval/engine"
	"github.com/habiliai/agenteval/entity"
	"github.com/stretchr/testify/assert"
)

func TestRuleBasedVerdict(t *testing.T) {
	tests := []struct {
		overall   float64
		wantAdopt bool
	}{
		{overall: 0.9, wantAdopt: true},
		{overall: 0.75, wantAdopt: true},
		{overall: 0.74, wantAdopt: false},
		{overall: 0, wantAdopt: false},
	}

	for _, tt := range tests {
		got := engine.RuleBasedVerdict(entity.EvalResult{OverallScore: tt.overall})
		assert.Equal(t, tt.wantAdopt, got.AdoptWorthwhile, "overall %v", tt.overall)
		assert.Equal(t, tt.overall, got.Confidence)
		assert.Contains(t, got.Reasoning, "0.75")
	}
}

func TestRuleBasedInsights(t *testing.T) {
	agents := []entity.AgentTestResult{
		{AgentName: "LangGraph", EvalResult: entity.EvalResult{OverallScore: 0.8}, AdoptRecommended: true},
		{AgentName: "CrewAI", EvalResult: entity.EvalResult{OverallScore: 0.7}},
		{AgentName: "Haystack", EvalResult: entity.EvalResult{OverallScore: 0.8}, AdoptRecommended: true},
	}

	got := engine.RuleBasedInsights("Acme", agents)
	assert.Contains(t, got.OverallInsights, "3 agents tested")
	assert.Contains(t, got.OverallInsights, "mean overall score of 0.77")
	assert.Contains(t, got.OverallInsights, "LangGraph scored highest at 0.80")
	assert.Contains(t, got.NotificationMessage, "Acme")
	assert.Contains(t, got.NotificationMessage, "2 of 3")
	assert.Contains(t, got.NotificationMessage, "LangGraph, Haystack")
}

func TestRuleBasedInsightsEdgeCases(t *testing.T) {
	empty := engine.RuleBasedInsights("Acme", nil)
	assert.NotEmpty(t, empty.OverallInsights)
	assert.Contains(t, empty.NotificationMessage, "Acme")

	single := engine.RuleBasedInsights("Acme", []entity.AgentTestResult{
		{AgentName: "AutoGen", EvalResult: entity.EvalResult{OverallScore: 0.6}},
	})
	assert.Contains(t, single.OverallInsights, "stddev 0.00")
	assert.Contains(t, single.NotificationMessage, "None of the 1 tested agents")
}
