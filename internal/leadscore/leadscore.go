// Package leadscore derives a follow-up priority score from the total
// maturity score and the respondent's business context.
package leadscore

import (
	"github.com/sells-group/assessment-cli/internal/model"
	"github.com/sells-group/assessment-cli/internal/rules"
)

// Engine applies the configured context modifiers and priority bands.
type Engine struct {
	rules *rules.Rules
}

// New creates an Engine over the given tables.
func New(r *rules.Rules) *Engine {
	return &Engine{rules: r}
}

// Calculate starts from the total score and adds at most one modifier per
// context field (exact string match; unmatched fields contribute 0). The
// result is floor-clamped at zero no matter how many negative modifiers
// apply.
func (e *Engine) Calculate(total int, ctx model.BusinessContext) int {
	return e.Breakdown(total, ctx).Total
}

// Breakdown exposes the same computation as Calculate with an itemized list
// of which modifiers fired and by how much.
func (e *Engine) Breakdown(total int, ctx model.BusinessContext) model.LeadBreakdown {
	b := model.LeadBreakdown{BaseScore: total}

	apply := func(factor, value string, table map[string]int) {
		if value == "" {
			return
		}
		adj, ok := table[value]
		if !ok {
			return
		}
		b.Modifiers = append(b.Modifiers, model.LeadModifier{
			Factor:     factor,
			Value:      value,
			Adjustment: adj,
		})
		b.TotalAdjustments += adj
	}

	ls := e.rules.LeadScoring
	apply("KPI Owner", ctx.Owner, ls.OwnerModifiers)
	apply("Implementation Timeline", ctx.Timeline, ls.TimelineModifiers)
	apply("Operational Challenge", ctx.Challenge, ls.ChallengeModifiers)
	apply("Growth Strategy", ctx.Growth, ls.GrowthModifiers)

	b.Total = total + b.TotalAdjustments
	if b.Total < 0 {
		b.Total = 0
	}
	return b
}

// Priority classifies a lead score into the HIGH / MEDIUM / LOW bands. The
// bands are non-overlapping and exhaustive over the non-negative integers.
func (e *Engine) Priority(score int) model.LeadPriority {
	ls := e.rules.LeadScoring
	switch {
	case score >= ls.High.Threshold:
		return bandPriority(ls.High)
	case score >= ls.Medium.Threshold:
		return bandPriority(ls.Medium)
	default:
		return bandPriority(ls.Low)
	}
}

// ShouldAlert decides whether an assessment warrants a sales notification.
// Two independent OR-conditions, first match wins: a HIGH-priority lead with
// the urgent timeline fires IMMEDIATE; an executive owner at or above the
// executive score floor fires HIGH.
func (e *Engine) ShouldAlert(score int, ctx model.BusinessContext) model.SalesAlert {
	alerts := e.rules.LeadScoring.Alerts

	if e.Priority(score).Level == e.rules.LeadScoring.High.Level && ctx.Timeline == alerts.UrgentTimeline {
		return model.SalesAlert{
			Trigger: true,
			Reason:  "High-priority lead with immediate timeline",
			Urgency: "IMMEDIATE",
		}
	}

	if ctx.Owner == alerts.ExecutiveOwner && score >= alerts.ExecutiveMinScore {
		return model.SalesAlert{
			Trigger: true,
			Reason:  "Executive decision maker with good fit",
			Urgency: "HIGH",
		}
	}

	return model.SalesAlert{Urgency: "NORMAL"}
}

func bandPriority(b rules.PriorityBand) model.LeadPriority {
	return model.LeadPriority{Level: b.Level, Label: b.Label, Icon: b.Icon}
}
