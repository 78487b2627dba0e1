package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/assessment-cli/internal/model"
	"github.com/sells-group/assessment-cli/internal/rules"
)

func TestPersonalizedBase(t *testing.T) {
	r := rules.Default()
	e := New(r)

	for _, tier := range r.Personas.Order {
		recs := e.Personalized(tier, model.BusinessContext{}, model.Answers{})
		assert.Len(t, recs, 3, "tier %s", tier)
		assert.Equal(t, r.Recommendations.Base[tier], recs)
	}
}

func TestPersonalizedUnknownTierFallsBack(t *testing.T) {
	r := rules.Default()
	e := New(r)

	recs := e.Personalized(model.Tier("P9"), model.BusinessContext{}, model.Answers{})
	assert.Equal(t, r.Recommendations.Base[model.TierP0], recs)
}

func TestPersonalizedOverridesDisabledByDefault(t *testing.T) {
	r := rules.Default()
	e := New(r)

	ctx := model.BusinessContext{
		Challenge: "Project profitability",
		Growth:    "Win new clients",
	}
	recs := e.Personalized(model.TierP2, ctx, model.Answers{})
	assert.Equal(t, r.Recommendations.Base[model.TierP2], recs)
}

func TestPersonalizedOverridesEnabled(t *testing.T) {
	r := rules.Default()
	r.Recommendations.OverridesEnabled = true
	e := New(r)

	ctx := model.BusinessContext{
		Challenge: "Project profitability",
		Growth:    "Win new clients",
	}

	recs := e.Personalized(model.TierP2, ctx, model.Answers{})
	assert.Equal(t, r.Recommendations.GrowthOverrides["Win new clients"], recs[0])
	assert.Equal(t, r.Recommendations.ChallengeOverrides["Project profitability"], recs[1])
	assert.Equal(t, r.Recommendations.Base[model.TierP2][2], recs[2])

	// Growth override never applies to the lowest tier.
	recs = e.Personalized(model.TierP0, ctx, model.Answers{})
	assert.Equal(t, r.Recommendations.Base[model.TierP0][0], recs[0])
	assert.Equal(t, r.Recommendations.ChallengeOverrides["Project profitability"], recs[1])
}

func TestPersonalizedDoesNotMutateBase(t *testing.T) {
	r := rules.Default()
	r.Recommendations.OverridesEnabled = true
	e := New(r)

	before := r.Recommendations.Base[model.TierP2][1]
	e.Personalized(model.TierP2, model.BusinessContext{Challenge: "Project profitability"}, model.Answers{})
	assert.Equal(t, before, r.Recommendations.Base[model.TierP2][1])
}

func TestPlaceholderSubstitution(t *testing.T) {
	r := rules.Default()
	r.Recommendations.Base[model.TierP0] = []string{
		"Cut manual cleanup from {manual_work_level} to near zero.",
		"second",
		"third",
	}
	e := New(r)

	recs := e.Personalized(model.TierP0, model.BusinessContext{}, model.Answers{"B4": "Around half"})
	assert.Equal(t, "Cut manual cleanup from Around half to near zero.", recs[0])

	// Unanswered question falls back to the placeholder default.
	recs = e.Personalized(model.TierP0, model.BusinessContext{}, model.Answers{})
	assert.Equal(t, "Cut manual cleanup from current level to near zero.", recs[0])
}

func TestContextualCTADefaults(t *testing.T) {
	e := New(rules.Default())

	cta := e.ContextualCTA("", "", "", "Integrated / Insight-driven")
	assert.Equal(t, "Download Your KPI Guide", cta.PrimaryCTA)
	assert.Equal(t, "Book 25-min KPI Review", cta.SecondaryCTA)
	assert.Contains(t, cta.ValueProposition, "Integrated / Insight-driven")
	assert.NotContains(t, cta.ValueProposition, "{persona_label}")
}

func TestContextualCTAChallengeOverride(t *testing.T) {
	e := New(rules.Default())

	cta := e.ContextualCTA("Project profitability", "", "", "x")
	assert.Equal(t, "Book Profitability Assessment", cta.SecondaryCTA)
	assert.Contains(t, cta.ValueProposition, "margin protection playbook")
	assert.Equal(t, "Download Your KPI Guide", cta.PrimaryCTA)
}

func TestContextualCTATimeline(t *testing.T) {
	e := New(rules.Default())

	cta := e.ContextualCTA("", "Within 3 months", "", "x")
	assert.Equal(t, "Priority 25-min KPI Review - This Week", cta.SecondaryCTA)

	cta = e.ContextualCTA("Project profitability", "Within 3 months", "", "x")
	assert.Equal(t, "Priority Profitability Assessment - This Week", cta.SecondaryCTA)

	cta = e.ContextualCTA("", "Later / just exploring", "", "x")
	assert.Equal(t, "Schedule Future Planning Call", cta.SecondaryCTA)
}

func TestContextualCTAOwner(t *testing.T) {
	e := New(rules.Default())

	cta := e.ContextualCTA("", "", "Executive team (strategy)", "x")
	assert.Equal(t, "Book 45-min Executive KPI Review", cta.SecondaryCTA)

	cta = e.ContextualCTA("", "", "Finance (P&L focus)", "x")
	assert.Equal(t, "Book 25-min KPI ROI Discussion", cta.SecondaryCTA)

	// Owner swap applies after the exploring replacement; no "25-min" there.
	cta = e.ContextualCTA("", "Later / just exploring", "Executive team (strategy)", "x")
	assert.Equal(t, "Schedule Future Planning Call", cta.SecondaryCTA)
}

func TestKPIImpact(t *testing.T) {
	e := New(rules.Default())

	assert.Nil(t, e.KPIImpact(nil))
	assert.Nil(t, e.KPIImpact([]string{}))

	impact := e.KPIImpact([]string{"Project gross-margin %", "Client satisfaction / NPS"})
	require.NotNil(t, impact)
	assert.Equal(t, "Consider Adding These KPIs", impact.Title)
	assert.Contains(t, impact.Description, "Project gross-margin %, Client satisfaction / NPS")
	assert.NotEmpty(t, impact.Impact)
}
