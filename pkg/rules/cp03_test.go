package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCP03_UpperPolicy_UppercasesFunctionName(t *testing.T) {
	got := fixRule(t, NewCP03(CapitalisationOptions{Policy: PolicyUpper}), "select count(a) from t\n")
	assert.Contains(t, got, "COUNT(a)")
}

func TestCP03_AlreadyMatchingPolicy_NoChange(t *testing.T) {
	got := fixRule(t, NewCP03(CapitalisationOptions{Policy: PolicyUpper}), "select COUNT(a) from t\n")
	assert.Equal(t, "select COUNT(a) from t\n", got)
}
