package model

import "time"

// ScoreSet holds the six dimension scores plus derived fields. Every
// sub-score lies in [0,10] after clamping; Governance is 0 when the
// governance dimension is disabled (when enabled its floor is 1, so zero
// is unambiguous).
type ScoreSet struct {
	Coverage   int `json:"coverage"`
	Confidence int `json:"confidence"`
	Latency    int `json:"latency"`
	Automation int `json:"automation"`
	Governance int `json:"governance,omitempty"`
	Forecast   int `json:"forecast"`

	// Total is the weighted sum of the enabled sub-scores, rounded to the
	// nearest integer.
	Total int `json:"total"`

	// MissingKPIs lists reference KPIs the respondent does not track, in
	// reference-catalog order. SelectedKPIs counts valid (non-sentinel)
	// selections.
	MissingKPIs  []string `json:"missing_kpis"`
	SelectedKPIs int      `json:"selected_kpis"`
}

// Tier is an ordinal maturity persona, P0 lowest through P4 highest.
type Tier string

const (
	TierP0 Tier = "P0"
	TierP1 Tier = "P1"
	TierP2 Tier = "P2"
	TierP3 Tier = "P3"
	TierP4 Tier = "P4"
)

// PersonaInfo bundles a tier with its static label and description.
type PersonaInfo struct {
	Persona     Tier   `json:"persona"`
	Label       string `json:"persona_label"`
	Description string `json:"persona_description"`
}

// ProgressionPath describes the next tier up from the current one and the
// total score required to reach it.
type ProgressionPath struct {
	Current       Tier `json:"current"`
	Next          Tier `json:"next"`
	RequiredScore int  `json:"required_score"`
}

// LeadPriority classifies a lead score into one of three fixed bands.
type LeadPriority struct {
	Level string `json:"level"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// LeadModifier records a single context modifier that fired during lead
// scoring, for transparency.
type LeadModifier struct {
	Factor     string `json:"factor"`
	Value      string `json:"value"`
	Adjustment int    `json:"adjustment"`
}

// LeadBreakdown itemizes how a lead score was built from the base total.
type LeadBreakdown struct {
	BaseScore        int            `json:"base_score"`
	Modifiers        []LeadModifier `json:"modifiers"`
	TotalAdjustments int            `json:"total_adjustments"`
	Total            int            `json:"total"`
}

// SalesAlert is the sales-notification decision for one assessment.
type SalesAlert struct {
	Trigger bool   `json:"trigger"`
	Reason  string `json:"reason,omitempty"`
	Urgency string `json:"urgency"`
}

// CTAConfig holds the call-to-action bundle rendered with the result.
type CTAConfig struct {
	PrimaryCTA       string `json:"primary_cta"`
	SecondaryCTA     string `json:"secondary_cta"`
	ValueProposition string `json:"value_proposition"`
}

// KPIImpact describes the cost of untracked KPIs. Nil when nothing is
// missing.
type KPIImpact struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

// Result is the complete, immutable outcome of one assessment.
type Result struct {
	Scores          ScoreSet         `json:"scores"`
	Persona         PersonaInfo      `json:"persona"`
	Recommendations []string         `json:"recommendations"`
	LeadScore       int              `json:"lead_score"`
	LeadPriority    LeadPriority     `json:"lead_priority"`
	SalesAlert      SalesAlert       `json:"sales_alert"`
	CTA             CTAConfig        `json:"cta"`
	KPIImpact       *KPIImpact       `json:"kpi_impact,omitempty"`
	Summary         string           `json:"summary"`
	Context         BusinessContext  `json:"context"`
	Record          SubmissionRecord `json:"record"`
}

// Demographics holds respondent firmographics extracted from answers.
type Demographics struct {
	CompanySize string `json:"company_size,omitempty"`
}

// KPIAssessment echoes the raw per-question responses in named fields for
// downstream systems that cannot key on question IDs.
type KPIAssessment struct {
	Coverage              []string `json:"coverage,omitempty"`
	Confidence            float64  `json:"confidence"`
	ReportingSpeed        string   `json:"reporting_speed,omitempty"`
	ManualWork            string   `json:"manual_work,omitempty"`
	DataQualityIssues     []string `json:"data_quality_issues,omitempty"`
	ReportingTools        []string `json:"reporting_tools,omitempty"`
	DataArchitecture      string   `json:"data_architecture,omitempty"`
	InternalTeam          string   `json:"internal_team,omitempty"`
	VisibilityGaps        []string `json:"visibility_gaps,omitempty"`
	DataUsers             []string `json:"data_users,omitempty"`
	ForecastingCapability string   `json:"forecasting_capability,omitempty"`
}

// RecordResults is the calculated-results section of a SubmissionRecord.
type RecordResults struct {
	Scores          ScoreSet `json:"scores"`
	Persona         Tier     `json:"persona"`
	PersonaLabel    string   `json:"persona_label"`
	TotalScore      int      `json:"total_score"`
	LeadScore       int      `json:"lead_score"`
	Recommendations []string `json:"recommendations"`
}

// Consent captures the respondent's data-processing preferences.
type Consent struct {
	GDPRConsent bool `json:"gdpr_consent"`
	// Marketing opt-in currently mirrors GDPR consent; kept as a separate
	// field so the two can diverge without a schema change.
	MarketingOptIn bool `json:"marketing_opt_in"`
}

// SubmissionRecord is the flat record shape handed to storage, CRM, and
// analytics collaborators. Every string field has been sanitized before the
// record leaves the engine.
type SubmissionRecord struct {
	SessionID         string          `json:"session_id"`
	Timestamp         time.Time       `json:"timestamp"`
	AssessmentVersion string          `json:"assessment_version"`
	Demographics      Demographics    `json:"demographics"`
	BusinessContext   BusinessContext `json:"business_context"`
	KPIAssessment     KPIAssessment   `json:"kpi_assessment"`
	Results           RecordResults   `json:"results"`
	Consent           Consent         `json:"consent"`
	RawAnswers        Answers         `json:"raw_answers"`
}

// Validation is the advisory completion report. It never blocks processing.
type Validation struct {
	IsComplete           bool     `json:"is_complete"`
	MissingFields        []string `json:"missing_fields"`
	CompletionPercentage float64  `json:"completion_percentage"`
}

// Progress summarizes how far a respondent is through the questionnaire.
type Progress struct {
	CompletionPercentage float64  `json:"completion_percentage"`
	SectionsCompleted    int      `json:"sections_completed"`
	TotalSections        int      `json:"total_sections"`
	IsComplete           bool     `json:"is_complete"`
	MissingFields        []string `json:"missing_fields"`
}
