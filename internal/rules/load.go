package rules

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// LoadFile returns the default table set overlaid with the YAML document at
// path. Sections absent from the document keep their defaults, so a rules
// file only needs to state what it changes.
func LoadFile(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "rules: read %s", path)
	}

	r := Default()
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, eris.Wrapf(err, "rules: parse %s", path)
	}

	if err := Validate(r); err != nil {
		return nil, err
	}
	return r, nil
}
