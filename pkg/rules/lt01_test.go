package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLT01_CollapsesExtraSpacing(t *testing.T) {
	got := fixRule(t, NewLT01(), "select   1+2   from t\n")
	assert.Contains(t, got, "select 1 + 2 from t")
}

func TestLT01_AlreadySingleSpaced_NoChange(t *testing.T) {
	v := lintRule(t, NewLT01(), "select 1 from t\n")
	assert.Empty(t, v)
}
