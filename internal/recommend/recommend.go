// Package recommend renders the persona-specific recommendation text and
// call-to-action bundle.
package recommend

import (
	"strings"

	"github.com/sells-group/assessment-cli/internal/model"
	"github.com/sells-group/assessment-cli/internal/rules"
)

// Engine selects and personalizes recommendation templates.
type Engine struct {
	rules *rules.Rules
}

// New creates an Engine over the given tables.
func New(r *rules.Rules) *Engine {
	return &Engine{rules: r}
}

// Personalized returns the three recommendation strings for a persona, with
// placeholder tokens substituted from the respondent's answers. When the
// legacy context overrides are enabled, the challenge override replaces slot
// 1 and the growth override replaces slot 0 (growth never applies to the
// lowest tier).
func (e *Engine) Personalized(tier model.Tier, ctx model.BusinessContext, answers model.Answers) []string {
	base := e.base(tier)
	recs := make([]string, len(base))
	copy(recs, base)

	if e.rules.Recommendations.OverridesEnabled {
		if override, ok := e.rules.Recommendations.ChallengeOverrides[ctx.Challenge]; ok && len(recs) > 1 {
			recs[1] = override
		}
		if override, ok := e.rules.Recommendations.GrowthOverrides[ctx.Growth]; ok && tier != e.lowestTier() {
			recs[0] = override
		}
	}

	for i, rec := range recs {
		recs[i] = e.substitute(rec, answers)
	}
	return recs
}

// ContextualCTA builds the CTA bundle: defaults first, a wholesale override
// when the operational challenge matches a known entry, then textual
// adjustments for timeline urgency and owner authority.
func (e *Engine) ContextualCTA(challenge, timeline, owner, personaLabel string) model.CTAConfig {
	cta := e.rules.CTA

	out := model.CTAConfig{
		PrimaryCTA:       cta.DefaultPrimary,
		SecondaryCTA:     cta.DefaultSecondary,
		ValueProposition: strings.ReplaceAll(cta.ValueProposition, "{persona_label}", personaLabel),
	}

	if override, ok := cta.ChallengeOverrides[challenge]; ok {
		out.ValueProposition = override.ValueProposition
		out.SecondaryCTA = override.SecondaryCTA
	}

	switch timeline {
	case cta.UrgentTimeline:
		// "Book Profitability Assessment" -> "Priority Profitability Assessment - This Week"
		words := strings.Fields(out.SecondaryCTA)
		if len(words) > 1 {
			out.SecondaryCTA = "Priority " + strings.Join(words[1:], " ") + " - This Week"
		}
	case cta.ExploringTimeline:
		out.SecondaryCTA = cta.ExploringSecondary
	}

	switch owner {
	case cta.ExecutiveOwner:
		out.SecondaryCTA = strings.Replace(out.SecondaryCTA, cta.ExecutiveSwap.Old, cta.ExecutiveSwap.New, 1)
	case cta.FinanceOwner:
		out.SecondaryCTA = strings.Replace(out.SecondaryCTA, cta.FinanceSwap.Old, cta.FinanceSwap.New, 1)
	}

	return out
}

// KPIImpact describes the cost of untracked reference KPIs, or nil when the
// respondent tracks them all.
func (e *Engine) KPIImpact(missingKPIs []string) *model.KPIImpact {
	if len(missingKPIs) == 0 {
		return nil
	}
	return &model.KPIImpact{
		Title:       "Consider Adding These KPIs",
		Description: strings.Join(missingKPIs, ", ") + ". Firms who track these metrics typically see up to 3-5 percentage points in margin improvement.",
		Impact:      "Missing these KPIs means you're likely reacting to problems rather than preventing them.",
	}
}

func (e *Engine) base(tier model.Tier) []string {
	if recs, ok := e.rules.Recommendations.Base[tier]; ok {
		return recs
	}
	return e.rules.Recommendations.Base[e.lowestTier()]
}

func (e *Engine) lowestTier() model.Tier {
	if len(e.rules.Personas.Order) == 0 {
		return model.TierP0
	}
	return e.rules.Personas.Order[0]
}

// substitute replaces every configured {token} with the answer it is bound
// to, or the token's default phrase when the question is unanswered.
func (e *Engine) substitute(text string, answers model.Answers) string {
	for token, placeholder := range e.rules.Recommendations.Placeholders {
		needle := "{" + token + "}"
		if !strings.Contains(text, needle) {
			continue
		}
		value := answers.Single(placeholder.QuestionID)
		if value == "" {
			value = placeholder.Default
		}
		text = strings.ReplaceAll(text, needle, value)
	}
	return text
}
