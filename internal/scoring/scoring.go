// Package scoring implements the pure maturity-score calculations. Every
// function is deterministic over its inputs: missing or unmatched answers
// degrade to documented defaults, never to errors.
package scoring

import (
	"math"
	"strings"

	"github.com/sells-group/assessment-cli/internal/model"
	"github.com/sells-group/assessment-cli/internal/rules"
)

// Engine computes the six dimension scores and their weighted total from a
// table set. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	rules *rules.Rules
}

// New creates an Engine over the given tables.
func New(r *rules.Rules) *Engine {
	return &Engine{rules: r}
}

// CoverageScore scores KPI coverage as round(10 * valid / total), where
// sentinel ("none of the above") selections never count as valid. Zero
// selections score 0; the full reference catalog scores 10.
func (e *Engine) CoverageScore(selected []string) int {
	total := len(e.rules.Catalog.KPIs)
	if total == 0 {
		return 0
	}
	valid := 0
	for _, kpi := range selected {
		if !strings.Contains(kpi, e.rules.Catalog.KPISentinel) {
			valid++
		}
	}
	return int(math.Round(float64(valid) / float64(total) * 10))
}

// ConfidenceScore adjusts the respondent's 0-10 self-rating by a manual-work
// penalty (tier x factor) and a data-quality bonus when the "no issues"
// sentinel is present, clamped to [0,10].
func (e *Engine) ConfidenceScore(rating float64, manualWork string, qualityIssues []string) int {
	penalty := e.rules.Scoring.ManualWorkTiers[manualWork] * e.rules.Scoring.ManualPenaltyFactor

	bonus := 0
	for _, issue := range qualityIssues {
		if issue == e.rules.Scoring.QualityCleanSentinel {
			bonus = e.rules.Scoring.QualityBonus
			break
		}
	}

	v := rating - float64(penalty) + float64(bonus)
	return int(math.Round(math.Max(0, math.Min(10, v))))
}

// LatencyScore is a table lookup over the reporting-speed tiers. Unknown or
// missing input falls back to the worst known tier.
func (e *Engine) LatencyScore(reportingSpeed string) int {
	if score, ok := e.rules.Scoring.Latency[reportingSpeed]; ok {
		return score
	}
	return e.rules.Scoring.LatencyDefault
}

// ForecastScore is a table lookup over forecasting-capability tiers with the
// same worst-tier fallback as LatencyScore.
func (e *Engine) ForecastScore(capability string) int {
	if score, ok := e.rules.Scoring.Forecast[capability]; ok {
		return score
	}
	return e.rules.Scoring.ForecastDefault
}

// AutomationScore scores tooling maturity in two phases: an exact match
// against the automation matrix (tool set cardinality and membership must
// both equal the rule's, no superset match), then an additive weighted
// fallback over individual signals, clamped at 10.
func (e *Engine) AutomationScore(tools []string, architecture, team string) int {
	for _, rule := range e.rules.Scoring.AutomationMatrix {
		if matchesAutomationRule(tools, architecture, team, rule) {
			return rule.Score
		}
	}

	signals := e.rules.Scoring.AutomationSignals
	weights := e.rules.Scoring.AutomationWeights

	score := e.rules.Scoring.AutomationBase
	if containsString(tools, signals.BIPlatformOption) {
		score += weights.BIPlatform
	}
	if containsString(tools, signals.PSADashboardsOption) {
		score += weights.PSADashboards
	}
	if strings.Contains(architecture, signals.ModernCloudMatch) {
		score += weights.ModernCloud
	}
	if strings.Contains(architecture, signals.TraditionalDBMatch) {
		score += weights.TraditionalDB
	}
	if team == signals.DedicatedTeamOption {
		score += weights.DedicatedTeam
	}
	if team == signals.LimitedTeamOption {
		score += weights.LimitedTeam
	}

	if score > 10 {
		score = 10
	}
	return score
}

// GovernanceScore combines an owner-presence weight with a capped weighted
// count of stakeholder groups consuming the data. The result floors at 1.
// Only meaningful when the governance dimension is enabled.
func (e *Engine) GovernanceScore(owner string, dataUsers []string) int {
	gov := e.rules.Scoring.Governance

	score := gov.OwnerWeights[owner]

	userWeight := 0
	for _, u := range dataUsers {
		userWeight += gov.UserWeights[u]
	}
	if userWeight > gov.UserWeightCap {
		userWeight = gov.UserWeightCap
	}
	score += userWeight

	if score > 10 {
		score = 10
	}
	if score < 1 {
		score = 1
	}
	return score
}

// TotalScore is the weighted sum of the sub-scores, rounded to the nearest
// integer. The governance term participates only when the governance
// dimension is enabled, keeping the formula parametric over the included
// sub-scores.
func (e *Engine) TotalScore(s model.ScoreSet) int {
	w := e.rules.Scoring.Weights
	total := float64(s.Coverage)*w.Coverage +
		float64(s.Confidence)*w.Confidence +
		float64(s.Latency)*w.Latency +
		float64(s.Automation)*w.Automation +
		float64(s.Forecast)*w.Forecast
	if e.rules.Scoring.Governance.Enabled {
		total += float64(s.Governance) * w.Governance
	}
	return int(math.Round(total))
}

// AllScores computes every sub-score, the total, and the missing/selected
// KPI derivations from a raw answers map.
func (e *Engine) AllScores(answers model.Answers) model.ScoreSet {
	ids := e.rules.Catalog.IDs

	s := model.ScoreSet{
		Coverage: e.CoverageScore(answers.Multi(ids.Coverage)),
		Confidence: e.ConfidenceScore(
			answers.Rating(ids.Confidence),
			answers.Single(ids.ManualWork),
			answers.Multi(ids.QualityIssues),
		),
		Latency: e.LatencyScore(answers.Single(ids.ReportingSpeed)),
		Automation: e.AutomationScore(
			answers.Multi(ids.Tools),
			answers.Single(ids.Architecture),
			answers.Single(ids.Team),
		),
		Forecast: e.ForecastScore(answers.Single(ids.Forecasting)),
	}
	if e.rules.Scoring.Governance.Enabled {
		s.Governance = e.GovernanceScore(
			answers.Single(ids.Owner),
			answers.Multi(ids.DataUsers),
		)
	}

	s.Total = e.TotalScore(s)

	selected := answers.Multi(ids.Coverage)
	for _, kpi := range e.rules.Catalog.KPIs {
		if containsString(selected, kpi) {
			s.SelectedKPIs++
		} else {
			s.MissingKPIs = append(s.MissingKPIs, kpi)
		}
	}

	return s
}

// matchesAutomationRule requires the tool set to equal the rule's exactly
// and architecture/team to match exactly.
func matchesAutomationRule(tools []string, architecture, team string, rule rules.AutomationRule) bool {
	if len(tools) != len(rule.Tools) {
		return false
	}
	for _, required := range rule.Tools {
		if !containsString(tools, required) {
			return false
		}
	}
	return architecture == rule.Architecture && team == rule.Team
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
