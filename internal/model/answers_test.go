package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswersAccessors(t *testing.T) {
	a := Answers{
		"single": "Same day",
		"multi":  []string{"x", "y"},
		"rating": 7.5,
		"intval": 3,
		"wrong":  42,
		"mixed":  []any{"a", 1, "b"},
	}

	assert.True(t, a.Has("single"))
	assert.False(t, a.Has("absent"))

	assert.Equal(t, "Same day", a.Single("single"))
	assert.Empty(t, a.Single("wrong"), "non-string yields empty")
	assert.Empty(t, a.Single("absent"))

	assert.Equal(t, []string{"x", "y"}, a.Multi("multi"))
	assert.Equal(t, []string{"a", "b"}, a.Multi("mixed"), "non-strings are dropped")
	assert.Nil(t, a.Multi("single"))
	assert.Nil(t, a.Multi("absent"))

	assert.Equal(t, 7.5, a.Rating("rating"))
	assert.Equal(t, 3.0, a.Rating("intval"))
	assert.Zero(t, a.Rating("single"))
	assert.Zero(t, a.Rating("absent"))
}

func TestAnswersFromJSON(t *testing.T) {
	var a Answers
	require.NoError(t, json.Unmarshal([]byte(`{
		"A1": ["Project gross-margin %"],
		"B2": 8,
		"B3": "Within 1 week"
	}`), &a))

	assert.Equal(t, []string{"Project gross-margin %"}, a.Multi("A1"))
	assert.Equal(t, 8.0, a.Rating("B2"), "JSON numbers decode as float64")
	assert.Equal(t, "Within 1 week", a.Single("B3"))
}
