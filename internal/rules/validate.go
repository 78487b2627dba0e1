package rules

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Validate checks that a table set is internally consistent: monotone
// persona thresholds, exactly three recommendations per tier, non-negative
// weights, and sane priority bands.
func Validate(r *Rules) error {
	var errs []string

	// Persona order must start at a zero-threshold catch-all and thresholds
	// must strictly increase along it.
	if len(r.Personas.Order) == 0 {
		errs = append(errs, "personas: order must not be empty")
	} else {
		if r.Personas.Thresholds[r.Personas.Order[0]] != 0 {
			errs = append(errs, "personas: first tier must have threshold 0")
		}
		prev := -1
		for _, tier := range r.Personas.Order {
			threshold, ok := r.Personas.Thresholds[tier]
			if !ok {
				errs = append(errs, fmt.Sprintf("personas: missing threshold for %s", tier))
				continue
			}
			if threshold <= prev {
				errs = append(errs, fmt.Sprintf("personas: threshold for %s must exceed the previous tier", tier))
			}
			prev = threshold
			if _, ok := r.Personas.Labels[tier]; !ok {
				errs = append(errs, fmt.Sprintf("personas: missing label for %s", tier))
			}
			if _, ok := r.Personas.Descriptions[tier]; !ok {
				errs = append(errs, fmt.Sprintf("personas: missing description for %s", tier))
			}
			if recs, ok := r.Recommendations.Base[tier]; !ok || len(recs) != 3 {
				errs = append(errs, fmt.Sprintf("recommendations: %s must have exactly 3 entries", tier))
			}
		}
	}

	weights := map[string]float64{
		"coverage":   r.Scoring.Weights.Coverage,
		"confidence": r.Scoring.Weights.Confidence,
		"latency":    r.Scoring.Weights.Latency,
		"automation": r.Scoring.Weights.Automation,
		"governance": r.Scoring.Weights.Governance,
		"forecast":   r.Scoring.Weights.Forecast,
	}
	for name, w := range weights {
		if w < 0 {
			errs = append(errs, fmt.Sprintf("scoring: %s weight must be >= 0", name))
		}
	}

	for _, rule := range r.Scoring.AutomationMatrix {
		if len(rule.Tools) == 0 {
			errs = append(errs, fmt.Sprintf("scoring: automation rule %q must list at least one tool", rule.Name))
		}
		if rule.Score < 1 || rule.Score > 10 {
			errs = append(errs, fmt.Sprintf("scoring: automation rule %q score must be in [1,10]", rule.Name))
		}
	}

	if r.Scoring.Governance.UserWeightCap < 0 {
		errs = append(errs, "scoring: governance user_weight_cap must be >= 0")
	}

	if r.LeadScoring.High.Threshold <= r.LeadScoring.Medium.Threshold {
		errs = append(errs, "lead_scoring: high threshold must exceed medium threshold")
	}
	if r.LeadScoring.Medium.Threshold <= 0 {
		errs = append(errs, "lead_scoring: medium threshold must be > 0")
	}

	if len(r.Catalog.KPIs) == 0 {
		errs = append(errs, "catalog: reference KPI list must not be empty")
	}
	if r.Catalog.KPISentinel == "" {
		errs = append(errs, "catalog: kpi_sentinel must not be empty")
	}

	if len(errs) > 0 {
		return eris.Errorf("rules: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
