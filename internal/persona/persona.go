// Package persona classifies a total maturity score into one of five
// ordinal tiers. This is a pure classification: five terminal states, no
// transitions.
package persona

import (
	"github.com/sells-group/assessment-cli/internal/model"
	"github.com/sells-group/assessment-cli/internal/rules"
)

// Engine classifies totals against the configured thresholds.
type Engine struct {
	rules *rules.Rules
}

// New creates an Engine over the given tables.
func New(r *rules.Rules) *Engine {
	return &Engine{rules: r}
}

// Determine walks the tiers from highest to lowest and returns the first
// whose threshold is <= total (inclusive lower bound). The lowest tier is
// the unconditional fallback, covering any score below the second tier's
// threshold, including out-of-range negatives.
func (e *Engine) Determine(total int) model.Tier {
	order := e.rules.Personas.Order
	for i := len(order) - 1; i > 0; i-- {
		if total >= e.rules.Personas.Thresholds[order[i]] {
			return order[i]
		}
	}
	return order[0]
}

// Info bundles the tier for a total with its static label and description.
func (e *Engine) Info(total int) model.PersonaInfo {
	tier := e.Determine(total)
	return model.PersonaInfo{
		Persona:     tier,
		Label:       e.rules.Personas.Labels[tier],
		Description: e.rules.Personas.Descriptions[tier],
	}
}

// EligibleForAdvancedFeatures reports whether a tier qualifies for the
// advanced feature set (the top two tiers).
func (e *Engine) EligibleForAdvancedFeatures(tier model.Tier) bool {
	order := e.rules.Personas.Order
	for i, t := range order {
		if t == tier {
			return i >= len(order)-2
		}
	}
	return false
}

// ProgressionPath returns the next tier up and the total score required to
// reach it, or nil when the tier is already at the top or unrecognized.
func (e *Engine) ProgressionPath(current model.Tier) *model.ProgressionPath {
	order := e.rules.Personas.Order
	for i, t := range order {
		if t != current {
			continue
		}
		if i == len(order)-1 {
			return nil
		}
		next := order[i+1]
		return &model.ProgressionPath{
			Current:       current,
			Next:          next,
			RequiredScore: e.rules.Personas.Thresholds[next],
		}
	}
	return nil
}
