package engine

import (
	"fmt"
	"strings"

	"github.com/habiliai/agenteval/entity"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

const AdoptThreshold = 0.75

// RuleBasedVerdict recommends adoption iff the overall score reaches
// AdoptThreshold. Confidence is the overall score.
func RuleBasedVerdict(eval entity.EvalResult) entity.RecommendationVerdict {
	overall := entity.Clamp01(eval.OverallScore)
	adopt := overall >= AdoptThreshold

	cmp := "below"
	if adopt {
		cmp = "meets"
	}
	return entity.RecommendationVerdict{
		AdoptWorthwhile: adopt,
		Confidence:      overall,
		Reasoning: fmt.Sprintf(
			"Overall score %s %s the adoption threshold %s.",
			formatScore(overall), cmp, formatScore(AdoptThreshold),
		),
	}
}

// RuleBasedInsights summarises the tested agents without a model.
func RuleBasedInsights(productName string, agentsTested []entity.AgentTestResult) entity.ReportInsights {
	if len(agentsTested) == 0 {
		return entity.ReportInsights{
			OverallInsights:     "No agents could be tested.",
			NotificationMessage: fmt.Sprintf("Report for %s: no candidate agents were found in the registry.", productName),
		}
	}

	scores := lo.Map(agentsTested, func(a entity.AgentTestResult, _ int) float64 {
		return a.EvalResult.OverallScore
	})
	mean, stddev := stat.Mean(scores, nil), 0.0
	if len(scores) > 1 {
		_, stddev = stat.MeanStdDev(scores, nil)
	}

	best := lo.MaxBy(agentsTested, func(a, b entity.AgentTestResult) bool {
		return a.EvalResult.OverallScore > b.EvalResult.OverallScore
	})
	adopted := lo.FilterMap(agentsTested, func(a entity.AgentTestResult, _ int) (string, bool) {
		return a.AgentName, a.AdoptRecommended
	})

	var insights strings.Builder
	fmt.Fprintf(&insights,
		"%d agents tested with a mean overall score of %s (stddev %s). ",
		len(agentsTested), formatScore(mean), formatScore(stddev),
	)
	fmt.Fprintf(&insights,
		"%s scored highest at %s.",
		best.AgentName, formatScore(best.EvalResult.OverallScore),
	)

	var message string
	if len(adopted) == 0 {
		message = fmt.Sprintf(
			"You asked which agent frameworks fit %s. None of the %d tested agents reached the adoption threshold.",
			productName, len(agentsTested),
		)
	} else {
		message = fmt.Sprintf(
			"You asked which agent frameworks fit %s. %d of %d tested agents are worth adopting: %s.",
			productName, len(adopted), len(agentsTested), strings.Join(adopted, ", "),
		)
	}

	return entity.ReportInsights{
		OverallInsights:     insights.String(),
		NotificationMessage: message,
	}
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.2f", entity.Round2(v))
}
