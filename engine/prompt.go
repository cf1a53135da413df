package engine

import (
	"embed"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/habiliai/agenteval/entity"
	"github.com/habiliai/agenteval/errors"
)

const (
	promptAnalyseOpportunities = "analyse_opportunities"
	promptSearchAgents         = "search_agents"
	promptDeriveUseCases       = "derive_use_cases"
	promptRecommendAdoption    = "recommend_adoption"
	promptBuildInsights        = "build_insights"
)

var (
	//go:embed data/instructions/*.md.tmpl
	instructionsFS embed.FS
	instructions   = template.Must(template.New("").Funcs(funcMap()).ParseFS(instructionsFS, "data/instructions/*.md.tmpl"))
)

type (
	productPromptValues struct {
		Product entity.ProductDescription
	}

	searchPromptValues struct {
		Product           entity.ProductDescription
		OpportunityTitles []string
		DiscoveryContext  string
	}

	recommendPromptValues struct {
		FrameworkName string
		EvalResult    entity.EvalResult
	}

	insightsPromptValues struct {
		ProductName          string
		OpportunitiesSummary string
		AgentsTested         []entity.AgentTestResult
	}
)

func funcMap() template.FuncMap {
	return sprig.TxtFuncMap()
}

// buildPrompt renders the system and user halves of a named instruction.
func buildPrompt(name string, values any) (system string, user string, err error) {
	var buf strings.Builder
	if err := instructions.ExecuteTemplate(&buf, name+".system", values); err != nil {
		return "", "", errors.Wrapf(err, "failed to render %s system prompt", name)
	}
	system = strings.TrimSpace(buf.String())

	buf.Reset()
	if err := instructions.ExecuteTemplate(&buf, name+".user", values); err != nil {
		return "", "", errors.Wrapf(err, "failed to render %s user prompt", name)
	}
	user = strings.TrimSpace(buf.String())

	return system, user, nil
}
