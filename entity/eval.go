package entity

import (
	"math"
	"strconv"
)

// EvalResult is the computed or simulated performance of one framework for one use case.
type EvalResult struct {
	FrameworkName     string  `json:"framework_name"`
	ScoreCompleteness float64 `json:"score_completeness" jsonschema:"minimum=0,maximum=1"`
	ScoreDeterminism  float64 `json:"score_determinism" jsonschema:"minimum=0,maximum=1"`
	ScoreFit          float64 `json:"score_fit" jsonschema:"minimum=0,maximum=1"`
	OverallScore      float64 `json:"overall_score" jsonschema:"minimum=0,maximum=1"`
	Notes             string  `json:"notes"`
}

// Normalize clamps all four scores into [0,1]. NaN becomes 0.
func (e *EvalResult) Normalize() {
	e.ScoreCompleteness = Clamp01(e.ScoreCompleteness)
	e.ScoreDeterminism = Clamp01(e.ScoreDeterminism)
	e.ScoreFit = Clamp01(e.ScoreFit)
	e.OverallScore = Clamp01(e.OverallScore)
}

// MeanScore is round2 of the mean of completeness, determinism and fit.
func (e EvalResult) MeanScore() float64 {
	return Round2((e.ScoreCompleteness + e.ScoreDeterminism + e.ScoreFit) / 3)
}

type RecommendationVerdict struct {
	AdoptWorthwhile bool    `json:"adopt_worthwhile"`
	Confidence      float64 `json:"confidence" jsonschema:"minimum=0,maximum=1"`
	Reasoning       string  `json:"reasoning"`
}

// Round2 rounds the exact binary value of v to two decimals, so 0.835
// (stored as 0.83499...) becomes 0.83.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}

func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
