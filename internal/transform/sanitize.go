package transform

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/assessment-cli/internal/model"
)

var (
	scriptTagRE     = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	javascriptURIRE = regexp.MustCompile(`(?i)javascript:`)
)

// Sanitize strips executable markup (script tags, javascript: URI prefixes)
// from every string-valued field of the record, recursively, before it
// leaves the engine. The walk goes through a JSON round-trip so nested maps
// and slices inside the raw answers are covered too.
func Sanitize(record model.SubmissionRecord) (model.SubmissionRecord, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return record, eris.Wrap(err, "transform: marshal record")
	}

	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return record, eris.Wrap(err, "transform: decode record")
	}

	cleaned, err := json.Marshal(cleanValue(tree))
	if err != nil {
		return record, eris.Wrap(err, "transform: marshal cleaned record")
	}

	var out model.SubmissionRecord
	if err := json.Unmarshal(cleaned, &out); err != nil {
		return record, eris.Wrap(err, "transform: rebuild record")
	}
	return out, nil
}

func cleanValue(v any) any {
	switch val := v.(type) {
	case string:
		return CleanString(val)
	case []any:
		for i, item := range val {
			val[i] = cleanValue(item)
		}
		return val
	case map[string]any:
		for k, item := range val {
			val[k] = cleanValue(item)
		}
		return val
	default:
		return v
	}
}

// CleanString removes script tags and javascript: prefixes from a single
// string and trims surrounding whitespace.
func CleanString(s string) string {
	s = scriptTagRE.ReplaceAllString(s, "")
	s = javascriptURIRE.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
