// Package transform shapes assessment data for external consumers: context
// extraction, submission-record assembly, sanitization, summary text, and
// the advisory completion report.
package transform

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/sells-group/assessment-cli/internal/model"
	"github.com/sells-group/assessment-cli/internal/rules"
)

// AssessmentVersion tags every submission record with the questionnaire
// schema revision it was produced under.
const AssessmentVersion = "v4.0"

// Transformer maps raw answers into the derived shapes the engines and
// external collaborators consume.
type Transformer struct {
	rules *rules.Rules
}

// New creates a Transformer over the given tables.
func New(r *rules.Rules) *Transformer {
	return &Transformer{rules: r}
}

// Context extracts the business-context subset of answers. Absent answers
// leave fields empty, which downstream engines treat as no-match.
func (t *Transformer) Context(answers model.Answers) model.BusinessContext {
	ids := t.rules.Catalog.IDs
	return model.BusinessContext{
		Owner:       answers.Single(ids.Owner),
		Timeline:    answers.Single(ids.Timeline),
		Challenge:   answers.Single(ids.Challenge),
		Growth:      answers.Single(ids.Growth),
		CompanySize: answers.Single(ids.CompanySize),
	}
}

// Demographics extracts respondent firmographics.
func (t *Transformer) Demographics(answers model.Answers) model.Demographics {
	return model.Demographics{
		CompanySize: answers.Single(t.rules.Catalog.IDs.CompanySize),
	}
}

// KPIAssessment echoes the raw responses into named fields.
func (t *Transformer) KPIAssessment(answers model.Answers) model.KPIAssessment {
	ids := t.rules.Catalog.IDs
	return model.KPIAssessment{
		Coverage:              answers.Multi(ids.Coverage),
		Confidence:            answers.Rating(ids.Confidence),
		ReportingSpeed:        answers.Single(ids.ReportingSpeed),
		ManualWork:            answers.Single(ids.ManualWork),
		DataQualityIssues:     answers.Multi(ids.QualityIssues),
		ReportingTools:        answers.Multi(ids.Tools),
		DataArchitecture:      answers.Single(ids.Architecture),
		InternalTeam:          answers.Single(ids.Team),
		VisibilityGaps:        answers.Multi(ids.VisibilityGaps),
		DataUsers:             answers.Multi(ids.DataUsers),
		ForecastingCapability: answers.Single(ids.Forecasting),
	}
}

// PrepareRecord assembles the flat submission record for storage/CRM/
// analytics collaborators. The session ID is unique per invocation and the
// timestamp is UTC.
func (t *Transformer) PrepareRecord(
	answers model.Answers,
	scores model.ScoreSet,
	persona model.PersonaInfo,
	recommendations []string,
	leadScore int,
	gdprConsent bool,
) model.SubmissionRecord {
	return model.SubmissionRecord{
		SessionID:         uuid.New().String(),
		Timestamp:         time.Now().UTC(),
		AssessmentVersion: AssessmentVersion,
		Demographics:      t.Demographics(answers),
		BusinessContext:   t.Context(answers),
		KPIAssessment:     t.KPIAssessment(answers),
		Results: model.RecordResults{
			Scores:          scores,
			Persona:         persona.Persona,
			PersonaLabel:    persona.Label,
			TotalScore:      scores.Total,
			LeadScore:       leadScore,
			Recommendations: recommendations,
		},
		Consent: model.Consent{
			GDPRConsent:    gdprConsent,
			MarketingOptIn: gdprConsent,
		},
		RawAnswers: answers,
	}
}

// LatencyLabel returns the display phrasing for a reporting-speed answer.
func (t *Transformer) LatencyLabel(reportingSpeed string) string {
	if label, ok := t.rules.Scoring.LatencyLabels[reportingSpeed]; ok {
		return label
	}
	return t.rules.Scoring.LatencyLabelDefault
}

// ScoreAsPercentage renders a 0-10 sub-score as a whole percentage.
func ScoreAsPercentage(score int) int {
	return int(math.Round(float64(score) / 10 * 100))
}

// Summary renders the one-line assessment summary shown with the result.
func (t *Transformer) Summary(scores model.ScoreSet, answers model.Answers) string {
	ids := t.rules.Catalog.IDs
	return fmt.Sprintf(
		"You're tracking %d of %d core KPIs and publish them %s after month-end. Your confidence in these numbers scored %g/10.",
		scores.SelectedKPIs,
		len(t.rules.Catalog.KPIs),
		t.LatencyLabel(answers.Single(ids.ReportingSpeed)),
		answers.Rating(ids.Confidence),
	)
}

// Validate reports questionnaire completion against the required-field set.
// Advisory only: it never gates processing.
func (t *Transformer) Validate(answers model.Answers) model.Validation {
	required := t.rules.Catalog.RequiredFields

	var missing []string
	for _, field := range required {
		if !answers.Has(field) {
			missing = append(missing, field)
		}
	}

	pct := 100.0
	if len(required) > 0 {
		pct = float64(len(required)-len(missing)) / float64(len(required)) * 100
	}

	return model.Validation{
		IsComplete:           len(missing) == 0,
		MissingFields:        missing,
		CompletionPercentage: pct,
	}
}

/// Progress summarizes completion for the wizard UI: a section counts as
// started once any of its questions is answered.
func (t *Transformer) Progress(answers model.Answers) model.Progress {
	validation := t.Validate(answers)

	answered := map[string]bool{}
	for _, q := range t.rules.Catalog.Questions {
		if answers.Has(q.ID) {
			answered[q.Section] = true
		}
	}

	return model.Progress{
		CompletionPercentage: validation.CompletionPercentage,
		SectionsCompleted:    len(answered),
		TotalSections:        len(t.rules.Catalog.Sections),
		IsComplete:           validation.IsComplete,
		MissingFields:        validation.MissingFields,
	}
}
