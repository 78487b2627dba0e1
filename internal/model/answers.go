// Package model defines the value objects shared by the assessment engines.
package model

// Answers maps question IDs to raw responses. Values are one of: a string
// (single-select), a []string or []any of strings (multi-select), or a
// number (slider, 0-10). Unanswered questions are absent from the map, not
// nil-valued. The map is owned by the caller and must not be mutated by any
// engine.
type Answers map[string]any

// Has reports whether the question was answered at all.
func (a Answers) Has(id string) bool {
	_, ok := a[id]
	return ok
}

// Single returns the selected option for a single-select question, or ""
// when unanswered or answered with a non-string value.
func (a Answers) Single(id string) string {
	s, _ := a[id].(string)
	return s
}

// Multi returns the selected options for a multi-select question. JSON
// decoding produces []any, so both []string and []any are accepted.
// Unanswered questions yield nil.
func (a Answers) Multi(id string) []string {
	switch v := a[id].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Rating returns the slider value for a question. JSON numbers decode as
// float64; native ints are accepted too. Unanswered or malformed values
// yield 0, matching the engine's no-answer default.
func (a Answers) Rating(id string) float64 {
	switch v := a[id].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

// BusinessContext is the subset of answers consumed by lead scoring and
// recommendation personalization. Computed once per assessment, never
// mutated, discarded after the call.
type BusinessContext struct {
	Owner       string `json:"owner"`
	Timeline    string `json:"timeline"`
	Challenge   string `json:"challenge"`
	Growth      string `json:"growth"`
	CompanySize string `json:"company_size"`
}
