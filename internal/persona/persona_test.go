package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/assessment-cli/internal/model"
	"github.com/sells-group/assessment-cli/internal/rules"
)

func newTestEngine() *Engine {
	return New(rules.Default())
}

func TestDetermine(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		total int
		want  model.Tier
	}{
		{-5, model.TierP0},
		{0, model.TierP0},
		{10, model.TierP0},
		{11, model.TierP1},
		{21, model.TierP1},
		{22, model.TierP2},
		{31, model.TierP2},
		{32, model.TierP3},
		{41, model.TierP3},
		{42, model.TierP4},
		{47, model.TierP4},
		{100, model.TierP4},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, e.Determine(tt.total), "total=%d", tt.total)
	}
}

func TestInfo(t *testing.T) {
	e := newTestEngine()

	info := e.Info(25)
	assert.Equal(t, model.TierP2, info.Persona)
	assert.Equal(t, "Integrated / Insight-driven", info.Label)
	assert.NotEmpty(t, info.Description)
}

func TestEligibleForAdvancedFeatures(t *testing.T) {
	e := newTestEngine()

	assert.False(t, e.EligibleForAdvancedFeatures(model.TierP0))
	assert.False(t, e.EligibleForAdvancedFeatures(model.TierP1))
	assert.False(t, e.EligibleForAdvancedFeatures(model.TierP2))
	assert.True(t, e.EligibleForAdvancedFeatures(model.TierP3))
	assert.True(t, e.EligibleForAdvancedFeatures(model.TierP4))
	assert.False(t, e.EligibleForAdvancedFeatures(model.Tier("P9")))
}

func TestProgressionPath(t *testing.T) {
	e := newTestEngine()

	path := e.ProgressionPath(model.TierP1)
	require.NotNil(t, path)
	assert.Equal(t, model.TierP1, path.Current)
	assert.Equal(t, model.TierP2, path.Next)
	assert.Equal(t, 22, path.RequiredScore)

	assert.Nil(t, e.ProgressionPath(model.TierP4), "top tier has nowhere to go")
	assert.Nil(t, e.ProgressionPath(model.Tier("P9")), "unknown tier")
}
