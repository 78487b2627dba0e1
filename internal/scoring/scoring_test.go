package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/assessment-cli/internal/model"
	"github.com/sells-group/assessment-cli/internal/rules"
)

func newTestEngine() *Engine {
	return New(rules.Default())
}

const (
	biPlatform  = "BI platform (Tableau / Power BI / Looker)"
	psaTool     = "PSA built-in dashboards"
	modernCloud = "Modern cloud warehouse with APIs"
	dedicated   = "Yes – dedicated"
)

func allKPIs() []string {
	return []string{
		"Billable-utilization %",
		"Average bill / realized rate",
		"Project gross-margin %",
		"Revenue-forecast accuracy",
		"Bench cost (idle hours × loaded rate)",
		"Client satisfaction / NPS",
	}
}

func TestCoverageScore(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name     string
		selected []string
		want     int
	}{
		{"nothing selected", nil, 0},
		{"all six", allKPIs(), 10},
		{"one kpi", allKPIs()[:1], 2},
		{"two kpis", allKPIs()[:2], 3},
		{"three kpis", allKPIs()[:3], 5},
		{"four kpis", allKPIs()[:4], 7},
		{"five kpis", allKPIs()[:5], 8},
		{"sentinel only", []string{"None of the above or I don't know"}, 0},
		{"sentinel ignored among valid", append(allKPIs()[:3], "None of the above or I don't know"), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.CoverageScore(tt.selected))
		})
	}
}

func TestCoverageScoreMonotonic(t *testing.T) {
	e := newTestEngine()
	prev := -1
	for i := 0; i <= len(allKPIs()); i++ {
		got := e.CoverageScore(allKPIs()[:i])
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestConfidenceScore(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name       string
		rating     float64
		manualWork string
		issues     []string
		want       int
	}{
		{"no adjustments", 7, "", nil, 7},
		{"max penalty", 10, "More than half", nil, 4},
		{"half penalty", 8, "Around half", nil, 4},
		{"small penalty", 6, "Very little", nil, 4},
		{"clean data bonus", 5, "", []string{"None - our data is reliable"}, 7},
		{"penalty plus bonus", 7, "Around half", []string{"None - our data is reliable"}, 5},
		{"clamped at zero", 0, "More than half", nil, 0},
		{"clamped at ten", 10, "Nothing", []string{"None - our data is reliable"}, 10},
		{"bonus needs exact sentinel", 5, "", []string{"Duplicate records"}, 5},
		{"unknown manual tier is free", 9, "not a tier", nil, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.ConfidenceScore(tt.rating, tt.manualWork, tt.issues))
		})
	}
}

func TestLatencyScore(t *testing.T) {
	e := newTestEngine()

	assert.Equal(t, 10, e.LatencyScore("Same day"))
	assert.Equal(t, 8, e.LatencyScore("Within 1 week"))
	assert.Equal(t, 5, e.LatencyScore("1–2 weeks"))
	assert.Equal(t, 1, e.LatencyScore("More than 2 weeks / Not sure"))
	assert.Equal(t, 1, e.LatencyScore(""))
	assert.Equal(t, 1, e.LatencyScore("nonsense"))
}

func TestForecastScore(t *testing.T) {
	e := newTestEngine()

	assert.Equal(t, 1, e.ForecastScore("We don't forecast"))
	assert.Equal(t, 4, e.ForecastScore("Manual quarterly forecast in spreadsheets"))
	assert.Equal(t, 7, e.ForecastScore("Automated monthly forecast in BI tool"))
	assert.Equal(t, 10, e.ForecastScore("Scenario simulations & what-if analysis"))
	assert.Equal(t, 1, e.ForecastScore(""))
}

func TestAutomationScoreExactMatch(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name  string
		tools []string
		arch  string
		team  string
		want  int
	}{
		{"perfect automation", []string{biPlatform}, modernCloud, dedicated, 10},
		{"bi limited team", []string{biPlatform}, modernCloud, "Limited bandwidth", 8},
		{"traditional bi", []string{biPlatform}, "Traditional database plus some integrations", "Limited bandwidth", 5},
		{"spreadsheets only", []string{"Spreadsheets"}, "Mainly spreadsheets", "None", 1},
		{"mixed tools disconnected", []string{psaTool, "Spreadsheets"}, "Multiple disconnected systems", "None", 2},
		{"mixed tools order-independent", []string{"Spreadsheets", psaTool}, "Multiple disconnected systems", "None", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.AutomationScore(tt.tools, tt.arch, tt.team))
		})
	}
}

func TestAutomationScoreAdditiveFallback(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name  string
		tools []string
		arch  string
		team  string
		want  int
	}{
		// Extra tool breaks the exact match; additive path takes over.
		{"bi plus spreadsheets modern dedicated", []string{biPlatform, "Spreadsheets"}, modernCloud, dedicated, 9},
		{"capped at ten", []string{biPlatform, psaTool}, modernCloud, dedicated, 10},
		{"no signals at all", nil, "", "", 1},
		{"architecture substring match", nil, "Modern cloud warehouse with APIs", "", 4},
		{"limited team only", nil, "", "Limited bandwidth", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.AutomationScore(tt.tools, tt.arch, tt.team))
		})
	}
}

func TestGovernanceScore(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name  string
		owner string
		users []string
		want  int
	}{
		{"floor at one", "", nil, 1},
		{"no clear owner floors too", "No clear owner", nil, 1},
		{"executive owner", "Executive team (strategy)", nil, 4},
		{"owner plus users", "Executive team (strategy)", []string{"C-suite", "Board of directors", "Department heads"}, 8},
		{"user weight capped", "Executive team (strategy)", []string{
			"Board of directors", "C-suite", "Department heads",
			"Project managers", "Individual contributors", "External stakeholders",
		}, 10},
		{"unknown users ignored", "Operations", []string{"Aliens"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.GovernanceScore(tt.owner, tt.users))
		})
	}
}

func TestTotalScore(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name   string
		scores model.ScoreSet
		want   int
	}{
		{"all zero", model.ScoreSet{}, 0},
		{"perfect", model.ScoreSet{Coverage: 10, Confidence: 10, Latency: 10, Automation: 10, Forecast: 10}, 47},
		{"latency down-weighted", model.ScoreSet{Latency: 10}, 7},
		{"rounded", model.ScoreSet{Latency: 5}, 4}, // 3.5 rounds up
		{"governance ignored while disabled", model.ScoreSet{Governance: 10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.TotalScore(tt.scores))
		})
	}
}

func TestTotalScoreGovernanceEnabled(t *testing.T) {
	r := rules.Default()
	r.Scoring.Governance.Enabled = true
	e := New(r)

	got := e.TotalScore(model.ScoreSet{Coverage: 10, Confidence: 10, Latency: 10, Automation: 10, Forecast: 10, Governance: 10})
	assert.Equal(t, 54, got)
}

func TestAllScoresEmptyAnswers(t *testing.T) {
	e := newTestEngine()

	s := e.AllScores(model.Answers{})

	assert.Equal(t, 0, s.Coverage)
	assert.Equal(t, 0, s.Confidence)
	assert.Equal(t, 1, s.Latency)
	assert.Equal(t, 1, s.Automation)
	assert.Equal(t, 1, s.Forecast)
	assert.Equal(t, 0, s.Governance)
	assert.Equal(t, 3, s.Total) // 0.7 + 1 + 1 rounded
	assert.Equal(t, 0, s.SelectedKPIs)
	assert.Equal(t, allKPIs(), s.MissingKPIs)
}

func TestAllScoresPerfectAnswers(t *testing.T) {
	e := newTestEngine()

	s := e.AllScores(model.Answers{
		"A1": allKPIs(),
		"B2": 10.0,
		"B3": "Same day",
		"B4": "Nothing",
		"B5": []string{"None - our data is reliable"},
		"C6": []string{biPlatform},
		"C7": modernCloud,
		"C8": dedicated,
		"D13": "Scenario simulations & what-if analysis",
	})

	assert.Equal(t, 10, s.Coverage)
	assert.Equal(t, 10, s.Confidence)
	assert.Equal(t, 10, s.Latency)
	assert.Equal(t, 10, s.Automation)
	assert.Equal(t, 10, s.Forecast)
	assert.Equal(t, 47, s.Total)
	assert.Equal(t, 6, s.SelectedKPIs)
	assert.Empty(t, s.MissingKPIs)
}

func TestAllScoresMissingKPIOrder(t *testing.T) {
	e := newTestEngine()

	s := e.AllScores(model.Answers{
		"A1": []string{"Project gross-margin %", "Client satisfaction / NPS"},
	})

	assert.Equal(t, 2, s.SelectedKPIs)
	assert.Equal(t, []string{
		"Billable-utilization %",
		"Average bill / realized rate",
		"Revenue-forecast accuracy",
		"Bench cost (idle hours × loaded rate)",
	}, s.MissingKPIs)
}

func TestAllScoresGovernanceEnabled(t *testing.T) {
	r := rules.Default()
	r.Scoring.Governance.Enabled = true
	e := New(r)

	s := e.AllScores(model.Answers{
		"D10": "Finance (P&L focus)",
		"D11": []string{"C-suite"},
	})

	assert.Equal(t, 5, s.Governance)
}
