package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCV05_EqualsNull_RewrittenToIsNull(t *testing.T) {
	got := fixRule(t, NewCV05(), "select a from t where a = NULL\n")
	assert.Contains(t, got, "IS NULL")
	assert.NotContains(t, got, "= NULL")
}

func TestCV05_NotEqualsNull_RewrittenToIsNotNull(t *testing.T) {
	got := fixRule(t, NewCV05(), "select a from t where a != NULL\n")
	assert.Contains(t, got, "IS NOT NULL")
}
