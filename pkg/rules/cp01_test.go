package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCP01_UpperPolicy_UppercasesKeywords(t *testing.T) {
	got := fixRule(t, NewCP01(CapitalisationOptions{Policy: PolicyUpper}), "select a from t\n")
	assert.Contains(t, got, "SELECT")
	assert.Contains(t, got, "FROM")
}

func TestCP01_ConsistentPolicy_MatchesFirstKeywordSeen(t *testing.T) {
	got := fixRule(t, NewCP01(CapitalisationOptions{Policy: PolicyConsistent}), "SELECT a from t\n")
	assert.Contains(t, got, "SELECT")
	assert.Contains(t, got, "FROM")
	assert.NotContains(t, got, "from")
}
