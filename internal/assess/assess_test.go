package assess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/assessment-cli/internal/model"
	"github.com/sells-group/assessment-cli/internal/rules"
)

func newTestProcessor() *Processor {
	return New(rules.Default())
}

func perfectAnswers() model.Answers {
	return model.Answers{
		"A1": []string{
			"Billable-utilization %",
			"Average bill / realized rate",
			"Project gross-margin %",
			"Revenue-forecast accuracy",
			"Bench cost (idle hours × loaded rate)",
			"Client satisfaction / NPS",
		},
		"B2":  10.0,
		"B3":  "Same day",
		"B4":  "Nothing",
		"B5":  []string{"None - our data is reliable"},
		"C6":  []string{"BI platform (Tableau / Power BI / Looker)"},
		"C7":  "Modern cloud warehouse with APIs",
		"C8":  "Yes – dedicated",
		"D10": "Executive team (strategy)",
		"D13": "Scenario simulations & what-if analysis",
		"E2":  "101-500 employees",
		"E15": "Project profitability",
		"E16": "Within 3 months",
		"E17": "Win new clients",
	}
}

func TestProcessPerfectAnswers(t *testing.T) {
	p := newTestProcessor()

	result, err := p.Process(perfectAnswers(), true)
	require.NoError(t, err)

	assert.Equal(t, 47, result.Scores.Total)
	assert.Equal(t, model.TierP4, result.Persona.Persona)
	assert.Equal(t, "Strategic / Value Multiplier", result.Persona.Label)
	assert.Len(t, result.Recommendations, 3)

	// 47 base + 15 exec + 15 urgent + 10 profitability + 5 win-new.
	assert.Equal(t, 92, result.LeadScore)
	assert.Equal(t, "HIGH", result.LeadPriority.Level)
	assert.True(t, result.SalesAlert.Trigger)
	assert.Equal(t, "IMMEDIATE", result.SalesAlert.Urgency)

	assert.Nil(t, result.KPIImpact, "no missing KPIs for a full selection")
	assert.Contains(t, result.Summary, "6 of 6 core KPIs")

	assert.NotEmpty(t, result.Record.SessionID)
	assert.Equal(t, "v4.0", result.Record.AssessmentVersion)
	assert.True(t, result.Record.Consent.GDPRConsent)
	assert.Equal(t, 92, result.Record.Results.LeadScore)
}

func TestProcessEmptyAnswers(t *testing.T) {
	p := newTestProcessor()

	result, err := p.Process(model.Answers{}, false)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Scores.Total)
	assert.Equal(t, model.TierP0, result.Persona.Persona)
	assert.Equal(t, 3, result.LeadScore)
	assert.Equal(t, "LOW", result.LeadPriority.Level)
	assert.False(t, result.SalesAlert.Trigger)
	assert.Equal(t, "NORMAL", result.SalesAlert.Urgency)

	require.NotNil(t, result.KPIImpact)
	assert.Len(t, result.Scores.MissingKPIs, 6)

	assert.Equal(t, "Download Your KPI Guide", result.CTA.PrimaryCTA)
	assert.Equal(t, "Book 25-min KPI Review", result.CTA.SecondaryCTA)
	assert.False(t, result.Record.Consent.GDPRConsent)
}

func TestProcessDeterministicApartFromSession(t *testing.T) {
	p := newTestProcessor()
	answers := perfectAnswers()

	a, err := p.Process(answers, true)
	require.NoError(t, err)
	b, err := p.Process(answers, true)
	require.NoError(t, err)

	assert.NotEqual(t, a.Record.SessionID, b.Record.SessionID)

	// Everything except session identity matches.
	a.Record.SessionID = b.Record.SessionID
	a.Record.Timestamp = b.Record.Timestamp
	assert.Equal(t, a, b)
}

func TestProcessSanitizesRecord(t *testing.T) {
	p := newTestProcessor()

	result, err := p.Process(model.Answers{
		"E15": `<script>alert("x")</script>Project profitability`,
	}, true)
	require.NoError(t, err)

	assert.Equal(t, "Project profitability", result.Record.BusinessContext.Challenge)
	assert.Equal(t, "Project profitability", result.Record.RawAnswers.Single("E15"))
}

func TestProcessRecoversFromPanic(t *testing.T) {
	r := rules.Default()
	r.Personas.Order = nil // Determine indexes order[0]
	p := New(r)

	result, err := p.Process(model.Answers{}, false)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "processing failed")
}

func TestValidateAndProgress(t *testing.T) {
	p := newTestProcessor()

	v := p.Validate(model.Answers{})
	assert.False(t, v.IsComplete)
	assert.Len(t, v.MissingFields, 4)

	v = p.Validate(perfectAnswers())
	assert.True(t, v.IsComplete)

	prog := p.Progress(perfectAnswers())
	assert.True(t, prog.IsComplete)
	assert.Equal(t, 5, prog.SectionsCompleted)
}

func TestDetailedBreakdown(t *testing.T) {
	p := newTestProcessor()

	b := p.DetailedBreakdown(perfectAnswers())

	assert.Equal(t, 47, b.Total)
	assert.Len(t, b.Scores, 5, "governance hidden while disabled")
	assert.Equal(t, 10, b.Scores["coverage"].Value)
	assert.Equal(t, 100, b.Scores["coverage"].Percentage)
	assert.Equal(t, 92, b.LeadScoring.Total)
	assert.Len(t, b.LeadScoring.Modifiers, 4)
	assert.Equal(t, "Executive team (strategy)", b.Context.Owner)
}
