package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCV01_AnsiPreference_RewritesCStyle(t *testing.T) {
	got := fixRule(t, NewCV01(CV01Options{Preferred: NotEqualAnsi}), "select a from t where a != 1\n")
	assert.Contains(t, got, "a <> 1")
	assert.NotContains(t, got, "!=")
}

func TestCV01_ConsistentPreference_MatchesFirstStyleSeen(t *testing.T) {
	got := fixRule(t, NewCV01(CV01Options{Preferred: NotEqualConsistent}),
		"select a from t where a != 1 and b <> 2\n")
	assert.Contains(t, got, "a != 1")
	assert.Contains(t, got, "b != 2")
	assert.NotContains(t, got, "<>")
}
