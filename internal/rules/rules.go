// Package rules holds the declarative configuration tables that drive the
// assessment engines: the question catalog, score weights, persona
// thresholds, recommendation templates, lead-score modifiers, and CTA
// overrides. Tables are data, not code: Default returns the built-in set and
// LoadFile overlays a YAML document, so scoring behavior can be edited
// without touching engine logic.
package rules

import "github.com/sells-group/assessment-cli/internal/model"

// Rules is the full table set consumed by the engines.
type Rules struct {
	Catalog         Catalog         `yaml:"catalog" mapstructure:"catalog"`
	Scoring         Scoring         `yaml:"scoring" mapstructure:"scoring"`
	Personas        Personas        `yaml:"personas" mapstructure:"personas"`
	Recommendations Recommendations `yaml:"recommendations" mapstructure:"recommendations"`
	LeadScoring     LeadScoring     `yaml:"lead_scoring" mapstructure:"lead_scoring"`
	CTA             CTA             `yaml:"cta" mapstructure:"cta"`
}

// Section is one page of the questionnaire.
type Section struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
}

// Question describes one catalog entry. Type is "single-select",
// "multi-select", or "slider".
type Question struct {
	ID      string   `yaml:"id"`
	Section string   `yaml:"section"`
	Text    string   `yaml:"text"`
	Type    string   `yaml:"type"`
	Options []string `yaml:"options,omitempty"`
	Min     int      `yaml:"min,omitempty"`
	Max     int      `yaml:"max,omitempty"`
	Note    string   `yaml:"note,omitempty"`
}

// QuestionIDs names the question each engine input is read from, so the
// engines never hard-code catalog IDs.
type QuestionIDs struct {
	Coverage       string `yaml:"coverage"`
	Confidence     string `yaml:"confidence"`
	ReportingSpeed string `yaml:"reporting_speed"`
	ManualWork     string `yaml:"manual_work"`
	QualityIssues  string `yaml:"quality_issues"`
	Tools          string `yaml:"tools"`
	Architecture   string `yaml:"architecture"`
	Team           string `yaml:"team"`
	VisibilityGaps string `yaml:"visibility_gaps"`
	Owner          string `yaml:"owner"`
	DataUsers      string `yaml:"data_users"`
	Forecasting    string `yaml:"forecasting"`
	CompanySize    string `yaml:"company_size"`
	Challenge      string `yaml:"challenge"`
	Timeline       string `yaml:"timeline"`
	Growth         string `yaml:"growth"`
}

// Catalog holds the questionnaire structure and the reference KPI list.
type Catalog struct {
	Sections  []Section   `yaml:"sections"`
	KPIs      []string    `yaml:"kpis"`
	IDs       QuestionIDs `yaml:"ids"`
	Questions []Question  `yaml:"questions"`

	// KPISentinel is matched as a substring: any selected option containing
	// it is excluded from positive coverage scoring.
	KPISentinel string `yaml:"kpi_sentinel"`

	// RequiredFields gates the advisory completion report.
	RequiredFields []string `yaml:"required_fields"`
}

// AutomationRule is one exact-match row of the automation matrix. A
// respondent matches only when their tool set equals Tools exactly (same
// cardinality and membership) and architecture/team match exactly.
type AutomationRule struct {
	Name         string   `yaml:"name"`
	Tools        []string `yaml:"tools"`
	Architecture string   `yaml:"architecture"`
	Team         string   `yaml:"team"`
	Score        int      `yaml:"score"`
}

// AutomationWeights drives the additive fallback when no matrix row matches.
type AutomationWeights struct {
	BIPlatform    int `yaml:"bi_platform"`
	PSADashboards int `yaml:"psa_dashboards"`
	ModernCloud   int `yaml:"modern_cloud"`
	TraditionalDB int `yaml:"traditional_db"`
	DedicatedTeam int `yaml:"dedicated_team"`
	LimitedTeam   int `yaml:"limited_team"`
}

// AutomationSignals names the answer values the additive fallback keys on.
// Architecture signals are substring matches; the rest are exact.
type AutomationSignals struct {
	BIPlatformOption    string `yaml:"bi_platform_option"`
	PSADashboardsOption string `yaml:"psa_dashboards_option"`
	ModernCloudMatch    string `yaml:"modern_cloud_match"`
	TraditionalDBMatch  string `yaml:"traditional_db_match"`
	DedicatedTeamOption string `yaml:"dedicated_team_option"`
	LimitedTeamOption   string `yaml:"limited_team_option"`
}

// Governance configures the optional governance sub-score. Disabled by
// default to match the active scoring revision; when enabled it contributes
// to the total at Weights.Governance.
type Governance struct {
	Enabled       bool           `yaml:"enabled"`
	OwnerWeights  map[string]int `yaml:"owner_weights"`
	UserWeights   map[string]int `yaml:"user_weights"`
	UserWeightCap int            `yaml:"user_weight_cap"`
}

// TotalWeights are the per-dimension multipliers for the total score. The
// governance weight applies only when Governance.Enabled is true, keeping
// the formula parametric over which sub-scores are included.
type TotalWeights struct {
	Coverage   float64 `yaml:"coverage"`
	Confidence float64 `yaml:"confidence"`
	Latency    float64 `yaml:"latency"`
	Automation float64 `yaml:"automation"`
	Governance float64 `yaml:"governance"`
	Forecast   float64 `yaml:"forecast"`
}

// Scoring holds every table the scoring engine reads.
type Scoring struct {
	// ManualWorkTiers maps the manual-work answer to a 0-3 tier. The
	// confidence penalty is tier x ManualPenaltyFactor.
	ManualWorkTiers     map[string]int `yaml:"manual_work_tiers"`
	ManualPenaltyFactor int            `yaml:"manual_penalty_factor"`

	// QualityCleanSentinel is the "no issues" quality answer; its presence
	// grants QualityBonus confidence points.
	QualityCleanSentinel string `yaml:"quality_clean_sentinel"`
	QualityBonus         int    `yaml:"quality_bonus"`

	// Latency and Forecast are table lookups; unmatched input falls back to
	// the default (the worst known tier, not an error).
	Latency             map[string]int    `yaml:"latency"`
	LatencyDefault      int               `yaml:"latency_default"`
	LatencyLabels       map[string]string `yaml:"latency_labels"`
	LatencyLabelDefault string            `yaml:"latency_label_default"`

	Forecast        map[string]int `yaml:"forecast"`
	ForecastDefault int            `yaml:"forecast_default"`

	AutomationMatrix  []AutomationRule  `yaml:"automation_matrix"`
	AutomationWeights AutomationWeights `yaml:"automation_weights"`
	AutomationSignals AutomationSignals `yaml:"automation_signals"`
	AutomationBase    int               `yaml:"automation_base"`

	Governance Governance   `yaml:"governance"`
	Weights    TotalWeights `yaml:"weights"`
}

// Personas maps total-score thresholds to ordinal tiers. Order lists tiers
// lowest to highest; thresholds must be strictly increasing along it.
type Personas struct {
	Order        []model.Tier          `yaml:"order"`
	Thresholds   map[model.Tier]int    `yaml:"thresholds"`
	Labels       map[model.Tier]string `yaml:"labels"`
	Descriptions map[model.Tier]string `yaml:"descriptions"`
}

// Placeholder binds a template token to the answer it is filled from.
type Placeholder struct {
	QuestionID string `yaml:"question_id"`
	Default    string `yaml:"default"`
}

// Recommendations holds the per-persona templates and the retained but
// default-disabled context override tables.
type Recommendations struct {
	Base map[model.Tier][]string `yaml:"base"`

	// Placeholders maps token names (written {name} in template text) to
	// their answer sources.
	Placeholders map[string]Placeholder `yaml:"placeholders"`

	// OverridesEnabled gates the legacy slot-override behavior. The tables
	// below are kept loadable but the overrides stay off by default.
	OverridesEnabled   bool              `yaml:"overrides_enabled"`
	ChallengeOverrides map[string]string `yaml:"challenge_overrides"`
	GrowthOverrides    map[string]string `yaml:"growth_overrides"`
}

// PriorityBand is one lead-priority classification band.
type PriorityBand struct {
	Threshold int    `yaml:"threshold"`
	Level     string `yaml:"level"`
	Label     string `yaml:"label"`
	Icon      string `yaml:"icon"`
}

// AlertRules configures the sales-alert triggers. The urgent-timeline rule
// is checked before the executive rule; first match wins.
type AlertRules struct {
	UrgentTimeline    string `yaml:"urgent_timeline"`
	ExecutiveOwner    string `yaml:"executive_owner"`
	ExecutiveMinScore int    `yaml:"executive_min_score"`
}

// LeadScoring holds the context modifier tables and priority bands.
type LeadScoring struct {
	OwnerModifiers     map[string]int `yaml:"owner_modifiers"`
	TimelineModifiers  map[string]int `yaml:"timeline_modifiers"`
	ChallengeModifiers map[string]int `yaml:"challenge_modifiers"`
	GrowthModifiers    map[string]int `yaml:"growth_modifiers"`

	High   PriorityBand `yaml:"high"`
	Medium PriorityBand `yaml:"medium"`
	Low    PriorityBand `yaml:"low"`

	Alerts AlertRules `yaml:"alerts"`
}

// CTAOverride replaces the CTA fields for one operational challenge.
type CTAOverride struct {
	ValueProposition string `yaml:"value_proposition"`
	SecondaryCTA     string `yaml:"secondary_cta"`
}

// TextSwap is a single substring rewrite applied to the secondary CTA.
type TextSwap struct {
	Old string `yaml:"old"`
	New string `yaml:"new"`
}

// CTA holds the call-to-action defaults and context adjustments.
type CTA struct {
	DefaultPrimary   string `yaml:"default_primary"`
	DefaultSecondary string `yaml:"default_secondary"`

	// ValueProposition may contain the {persona_label} token.
	ValueProposition string `yaml:"value_proposition"`

	ChallengeOverrides map[string]CTAOverride `yaml:"challenge_overrides"`

	// Timeline adjustments: the urgent value rewrites the secondary CTA to
	// "Priority ... - This Week"; the exploring value replaces it outright.
	UrgentTimeline     string `yaml:"urgent_timeline"`
	ExploringTimeline  string `yaml:"exploring_timeline"`
	ExploringSecondary string `yaml:"exploring_secondary"`

	// Owner adjustments rewrite secondary CTA substrings for two specific
	// authority levels.
	ExecutiveOwner string   `yaml:"executive_owner"`
	ExecutiveSwap  TextSwap `yaml:"executive_swap"`
	FinanceOwner   string   `yaml:"finance_owner"`
	FinanceSwap    TextSwap `yaml:"finance_swap"`
}
