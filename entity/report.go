package entity

import (
	"github.com/habiliai/agenteval/errors"
)

// AgentTestResult is one row of the final report.
type AgentTestResult struct {
	AgentName        string     `json:"agent_name"`
	EvalResult       EvalResult `json:"eval_result"`
	AdoptRecommended bool       `json:"adopt_recommended"`
	Reasoning        string     `json:"reasoning"`
}

// ReportInsights is the narrative part of a notification.
type ReportInsights struct {
	OverallInsights     string `json:"overall_insights" jsonschema_description:"Custom performance insights across the agents tested"`
	NotificationMessage string `json:"notification_message" jsonschema_description:"Short 2-3 sentence summary for the user (the notification)"`
}

// NotificationReport is the final deliverable of a pipeline run.
// AgentsTested keeps the order agents were evaluated in.
type NotificationReport struct {
	ProductName          string            `json:"product_name"`
	OpportunitiesSummary string            `json:"opportunities_summary"`
	AgentsTested         []AgentTestResult `json:"agents_tested"`
	OverallInsights      string            `json:"overall_insights"`
	NotificationMessage  string            `json:"notification_message"`
}

func (r *NotificationReport) Validate() error {
	if r.ProductName == "" {
		return errors.Wrapf(errors.ErrFatalAssembly, "product name is empty")
	}
	for i, a := range r.AgentsTested {
		if a.AgentName == "" {
			return errors.Wrapf(errors.ErrFatalAssembly, "agents_tested[%d] has no name", i)
		}
		if a.EvalResult.FrameworkName == "" {
			return errors.Wrapf(errors.ErrFatalAssembly, "agents_tested[%d] has no framework name", i)
		}
		for _, s := range []float64{
			a.EvalResult.ScoreCompleteness,
			a.EvalResult.ScoreDeterminism,
			a.EvalResult.ScoreFit,
			a.EvalResult.OverallScore,
		} {
			if s < 0 || s > 1 || s != s {
				return errors.Wrapf(errors.ErrFatalAssembly, "agents_tested[%d] has a score out of range", i)
			}
		}
	}
	return nil
}

// AdoptCount returns how many tested agents are recommended for adoption.
func (r *NotificationReport) AdoptCount() int {
	n := 0
	for _, a := range r.AgentsTested {
		if a.AdoptRecommended {
			n++
		}
	}
	return n
}
