package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAM07_MismatchedColumnCounts_FlaggedNoFix(t *testing.T) {
	v := lintRule(t, NewAM07(), "select a,b from t union select a,b,c from u\n")
	require.Len(t, v, 1)
	assert.Equal(t, "AM07", v[0].RuleCode)
	assert.Empty(t, v[0].Fixes)
}

func TestAM07_MatchingColumnCounts_NoViolation(t *testing.T) {
	v := lintRule(t, NewAM07(), "select a,b from t union select a,b from u\n")
	assert.Empty(t, v)
}
