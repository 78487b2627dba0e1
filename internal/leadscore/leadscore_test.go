package leadscore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/assessment-cli/internal/model"
	"github.com/sells-group/assessment-cli/internal/rules"
)

func newTestEngine() *Engine {
	return New(rules.Default())
}

func TestCalculate(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name  string
		total int
		ctx   model.BusinessContext
		want  int
	}{
		{"no context", 30, model.BusinessContext{}, 30},
		{"executive owner", 30, model.BusinessContext{Owner: "Executive team (strategy)"}, 45},
		{"finance owner", 30, model.BusinessContext{Owner: "Finance (P&L focus)"}, 40},
		{"no clear owner", 30, model.BusinessContext{Owner: "No clear owner"}, 25},
		{"urgent timeline", 30, model.BusinessContext{Timeline: "Within 3 months"}, 45},
		{"exploring timeline", 30, model.BusinessContext{Timeline: "Later / just exploring"}, 25},
		{"mid timeline unmatched", 30, model.BusinessContext{Timeline: "3–6 months"}, 30},
		{"profitability challenge", 30, model.BusinessContext{Challenge: "Project profitability"}, 40},
		{"cash flow challenge", 30, model.BusinessContext{Challenge: "Cash-flow management"}, 38},
		{"growth win new", 30, model.BusinessContext{Growth: "Win new clients"}, 35},
		{
			"everything stacks",
			47,
			model.BusinessContext{
				Owner:     "Executive team (strategy)",
				Timeline:  "Within 3 months",
				Challenge: "Project profitability",
				Growth:    "Win new clients",
			},
			92,
		},
		{
			"floor at zero",
			3,
			model.BusinessContext{
				Owner:    "No clear owner",
				Timeline: "Later / just exploring",
			},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Calculate(tt.total, tt.ctx))
		})
	}
}

func TestBreakdown(t *testing.T) {
	e := newTestEngine()

	b := e.Breakdown(47, model.BusinessContext{
		Owner:    "Executive team (strategy)",
		Timeline: "Within 3 months",
	})

	assert.Equal(t, 47, b.BaseScore)
	assert.Equal(t, 30, b.TotalAdjustments)
	assert.Equal(t, 77, b.Total)
	assert.Equal(t, []model.LeadModifier{
		{Factor: "KPI Owner", Value: "Executive team (strategy)", Adjustment: 15},
		{Factor: "Implementation Timeline", Value: "Within 3 months", Adjustment: 15},
	}, b.Modifiers)
}

func TestBreakdownFloorKeepsModifiers(t *testing.T) {
	e := newTestEngine()

	b := e.Breakdown(0, model.BusinessContext{Owner: "No clear owner"})
	assert.Equal(t, 0, b.Total)
	assert.Equal(t, -5, b.TotalAdjustments)
	assert.Len(t, b.Modifiers, 1)
}

func TestPriority(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		score     int
		wantLevel string
		wantIcon  string
	}{
		{0, "LOW", "📋"},
		{49, "LOW", "📋"},
		{50, "MEDIUM", "📈"},
		{74, "MEDIUM", "📈"},
		{75, "HIGH", "🎯"},
		{100, "HIGH", "🎯"},
	}

	for _, tt := range tests {
		got := e.Priority(tt.score)
		assert.Equal(t, tt.wantLevel, got.Level, "score=%d", tt.score)
		assert.Equal(t, tt.wantIcon, got.Icon, "score=%d", tt.score)
		assert.NotEmpty(t, got.Label)
	}
}

func TestShouldAlert(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name        string
		score       int
		ctx         model.BusinessContext
		wantTrigger bool
		wantUrgency string
	}{
		{
			"high priority urgent timeline",
			80,
			model.BusinessContext{Timeline: "Within 3 months"},
			true, "IMMEDIATE",
		},
		{
			"immediate outranks executive",
			80,
			model.BusinessContext{Timeline: "Within 3 months", Owner: "Executive team (strategy)"},
			true, "IMMEDIATE",
		},
		{
			"executive at floor",
			60,
			model.BusinessContext{Owner: "Executive team (strategy)"},
			true, "HIGH",
		},
		{
			"executive below floor",
			59,
			model.BusinessContext{Owner: "Executive team (strategy)"},
			false, "NORMAL",
		},
		{
			"high score without urgency or authority",
			80,
			model.BusinessContext{},
			false, "NORMAL",
		},
		{
			"urgent timeline but medium priority",
			60,
			model.BusinessContext{Timeline: "Within 3 months"},
			false, "NORMAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ShouldAlert(tt.score, tt.ctx)
			assert.Equal(t, tt.wantTrigger, got.Trigger)
			assert.Equal(t, tt.wantUrgency, got.Urgency)
			if tt.wantTrigger {
				assert.NotEmpty(t, got.Reason)
			}
		})
	}
}
