package registry

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/habiliai/agenteval/entity"
	"github.com/habiliai/agenteval/internal/sliceutils"
	"github.com/habiliai/agenteval/internal/stringslices"
)

type SimulatorConfig struct {
	// completeness = min(1, accuracy + context/ContextScale*ContextBonus)
	ContextScale float64
	ContextBonus float64
	// determinism = max(DeterminismFloor, 1 - latency/LatencyScale)
	LatencyScale     float64
	DeterminismFloor float64
	// fit starts at BaseFit and grows by FitStep per matching best_for tag
	BaseFit float64
	FitStep float64
}

func DefaultSimulatorConfig() SimulatorConfig {
	return SimulatorConfig{
		ContextScale:     300000,
		ContextBonus:     0.05,
		LatencyScale:     2000,
		DeterminismFloor: 0.5,
		BaseFit:          0.6,
		FitStep:          0.15,
	}
}

// Simulator derives a synthetic EvalResult from declared registry metrics.
// It never runs the agent and is a pure function of its inputs.
type Simulator struct {
	config SimulatorConfig
}

func NewSimulator(config SimulatorConfig) *Simulator {
	return &Simulator{config: config}
}

var defaultSimulator = NewSimulator(DefaultSimulatorConfig())

// Simulate uses the default formula constants.
func Simulate(agent entity.AgentDescriptor, useCaseName string) entity.EvalResult {
	return defaultSimulator.Simulate(agent, useCaseName)
}

func (s *Simulator) Simulate(agent entity.AgentDescriptor, useCaseName string) entity.EvalResult {
	name := agent.Name
	if name == "" {
		name = "Unknown"
	}

	acc := finiteOr(agent.Metrics.Accuracy(), entity.DefaultAccuracyRetrieval)
	ctx := math.Trunc(finiteOr(agent.Metrics.ContextTokens(), entity.DefaultMaxContextTokens))
	latency := math.Trunc(finiteOr(agent.Metrics.Latency(), entity.DefaultLatencyP95Ms))

	completeness := entity.Round2(math.Min(1, acc+float64((ctx/s.config.ContextScale)*s.config.ContextBonus)))
	determinism := entity.Round2(math.Max(s.config.DeterminismFloor, 1-latency/s.config.LatencyScale))

	bestFor := stringslices.ToLower(agent.BestFor)
	useCase := strings.ToLower(useCaseName)
	useCaseWords := strings.Fields(useCase)
	fit := s.config.BaseFit
	for _, b := range bestFor {
		if stringslices.ContainsAny(b, useCaseWords) || stringslices.ContainsAny(useCase, strings.Fields(b)) {
			fit = math.Min(1, fit+s.config.FitStep)
		}
	}

	res := entity.EvalResult{
		FrameworkName:     name,
		ScoreCompleteness: completeness,
		ScoreDeterminism:  determinism,
		ScoreFit:          entity.Round2(fit),
		Notes: fmt.Sprintf(
			"Simulated from registry: latency_p95=%sms, accuracy_retrieval=%s, best_for=%s.",
			formatNumber(latency),
			formatNumber(acc),
			strings.Join(sliceutils.Head(bestFor, 3), ", "),
		),
	}
	res.Normalize()
	res.OverallScore = res.MeanScore()

	return res
}

func finiteOr(v, def float64) float64 {
	if math.IsNaN(v) {
		return def
	}
	return v
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
