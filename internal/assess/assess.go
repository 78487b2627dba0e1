// Package assess composes the scoring, persona, lead-scoring,
// recommendation, and transformation stages into a single assessment
// pipeline.
package assess

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/assessment-cli/internal/leadscore"
	"github.com/sells-group/assessment-cli/internal/model"
	"github.com/sells-group/assessment-cli/internal/persona"
	"github.com/sells-group/assessment-cli/internal/recommend"
	"github.com/sells-group/assessment-cli/internal/rules"
	"github.com/sells-group/assessment-cli/internal/scoring"
	"github.com/sells-group/assessment-cli/internal/transform"
)

// Processor runs the full assessment pipeline. Every stage is a pure
// function over prior stage outputs, so concurrent Process calls with
// different answer sets never interfere.
type Processor struct {
	scoring   *scoring.Engine
	persona   *persona.Engine
	leadscore *leadscore.Engine
	recommend *recommend.Engine
	transform *transform.Transformer
}

// New creates a Processor over the given tables.
func New(r *rules.Rules) *Processor {
	return &Processor{
		scoring:   scoring.New(r),
		persona:   persona.New(r),
		leadscore: leadscore.New(r),
		recommend: recommend.New(r),
		transform: transform.New(r),
	}
}

// Process runs scoring, persona classification, context extraction,
// recommendation, lead scoring, CTA selection, KPI impact, summary, and
// record shaping in that fixed order, returning one immutable result. Any
// unexpected internal failure is caught at this boundary and re-signaled as
// a single "processing failed" error carrying the original cause; no
// partial result is ever returned.
func (p *Processor) Process(answers model.Answers, gdprConsent bool) (result *model.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = eris.Wrap(eris.Errorf("%v", r), "assess: processing failed")
			zap.L().Error("assess: pipeline panic", zap.Any("cause", r))
		}
	}()

	scores := p.scoring.AllScores(answers)
	personaInfo := p.persona.Info(scores.Total)
	ctx := p.transform.Context(answers)

	recommendations := p.recommend.Personalized(personaInfo.Persona, ctx, answers)

	leadScore := p.leadscore.Calculate(scores.Total, ctx)
	leadPriority := p.leadscore.Priority(leadScore)
	salesAlert := p.leadscore.ShouldAlert(leadScore, ctx)

	cta := p.recommend.ContextualCTA(ctx.Challenge, ctx.Timeline, ctx.Owner, personaInfo.Label)
	kpiImpact := p.recommend.KPIImpact(scores.MissingKPIs)
	summary := p.transform.Summary(scores, answers)

	record := p.transform.PrepareRecord(answers, scores, personaInfo, recommendations, leadScore, gdprConsent)
	record, sanitizeErr := transform.Sanitize(record)
	if sanitizeErr != nil {
		return nil, eris.Wrap(sanitizeErr, "assess: processing failed")
	}

	return &model.Result{
		Scores:          scores,
		Persona:         personaInfo,
		Recommendations: recommendations,
		LeadScore:       leadScore,
		LeadPriority:    leadPriority,
		SalesAlert:      salesAlert,
		CTA:             cta,
		KPIImpact:       kpiImpact,
		Summary:         summary,
		Context:         ctx,
		Record:          record,
	}, nil
}

// Validate reports questionnaire completion. Advisory only; it never gates
// Process.
func (p *Processor) Validate(answers model.Answers) model.Validation {
	return p.transform.Validate(answers)
}

// Progress summarizes wizard progress for the UI layer.
func (p *Processor) Progress(answers model.Answers) model.Progress {
	return p.transform.Progress(answers)
}

// DimensionBreakdown describes one sub-score for the transparency report.
type DimensionBreakdown struct {
	Value       int    `json:"value"`
	Percentage  int    `json:"percentage"`
	Description string `json:"description"`
}

// Breakdown is the detailed scoring report exposed for debugging and
// transparency.
type Breakdown struct {
	Scores      map[string]DimensionBreakdown `json:"scores"`
	Total       int                           `json:"total"`
	LeadScoring model.LeadBreakdown           `json:"lead_scoring"`
	Context     model.BusinessContext         `json:"context"`
}

// DetailedBreakdown recomputes the scores and itemizes every dimension and
// lead-score modifier.
func (p *Processor) DetailedBreakdown(answers model.Answers) Breakdown {
	scores := p.scoring.AllScores(answers)
	ctx := p.transform.Context(answers)

	dims := map[string]DimensionBreakdown{
		"coverage":   {Value: scores.Coverage, Percentage: transform.ScoreAsPercentage(scores.Coverage), Description: "KPI Coverage Score"},
		"confidence": {Value: scores.Confidence, Percentage: transform.ScoreAsPercentage(scores.Confidence), Description: "Data Confidence Score"},
		"latency":    {Value: scores.Latency, Percentage: transform.ScoreAsPercentage(scores.Latency), Description: "Reporting Speed Score"},
		"automation": {Value: scores.Automation, Percentage: transform.ScoreAsPercentage(scores.Automation), Description: "Automation Score"},
		"forecast":   {Value: scores.Forecast, Percentage: transform.ScoreAsPercentage(scores.Forecast), Description: "Forecasting Capability Score"},
	}
	if scores.Governance > 0 {
		dims["governance"] = DimensionBreakdown{Value: scores.Governance, Percentage: transform.ScoreAsPercentage(scores.Governance), Description: "Governance Score"}
	}

	return Breakdown{
		Scores:      dims,
		Total:       scores.Total,
		LeadScoring: p.leadscore.Breakdown(scores.Total, ctx),
		Context:     ctx,
	}
}
