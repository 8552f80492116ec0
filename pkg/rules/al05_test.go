package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAL05_UnusedAlias_IsRemoved(t *testing.T) {
	got := fixRule(t, NewAL05(), "select 1 from t as x\n")
	assert.NotContains(t, got, "x")
	assert.Contains(t, got, "from t")
}

func TestAL05_ReferencedAlias_IsKept(t *testing.T) {
	got := fixRule(t, NewAL05(), "select x.a from t as x\n")
	assert.Contains(t, got, "as x")
}
