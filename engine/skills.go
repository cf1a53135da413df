package engine

import (
	"hash/fnv"

	"github.com/habiliai/agenteval/entity"
)

const (
	mockInput          = "deterministic_sample"
	mockScenario       = "default"
	rubricNotes        = "Deterministic rubric applied to mock payload."
	rubricHashModulus  = 1000
	rubricKeySeparator = "\x00"
)

// GenerateMockData returns the fixed test payload for a use case. Equal
// inputs give equal payloads.
func GenerateMockData(useCaseID, useCaseName string) entity.MockData {
	return entity.MockData{
		UseCaseID: useCaseID,
		Payload: map[string]any{
			"use_case":    useCaseName,
			"use_case_id": useCaseID,
			"mock_input":  mockInput,
			"scenario":    mockScenario,
			"sample_ticket": map[string]any{
				"subject": "Support request",
				"body":    "Need help with integration",
			},
		},
	}
}

// EvaluateFramework scores a framework with a fixed rubric keyed by the
// framework and use case names. The mock payload does not affect the scores.
func EvaluateFramework(frameworkName string, _ map[string]any, useCaseName string) entity.EvalResult {
	b := rubricBase(frameworkName, useCaseName)

	res := entity.EvalResult{
		FrameworkName:     frameworkName,
		ScoreCompleteness: min(1, entity.Round2(0.7+b*0.25)),
		ScoreDeterminism:  min(1, entity.Round2(0.75+(1-b)*0.2)),
		ScoreFit:          min(1, entity.Round2(0.65+b*0.3)),
		Notes:             rubricNotes,
	}
	res.OverallScore = res.MeanScore()

	return res
}

// rubricBase maps the pair to [0, 0.999] with FNV-1a, stable across runs.
func rubricBase(frameworkName, useCaseName string) float64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(frameworkName + rubricKeySeparator + useCaseName))
	return float64(h.Sum64()%rubricHashModulus) / rubricHashModulus
}
