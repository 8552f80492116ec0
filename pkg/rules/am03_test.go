package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAM03_FillsMissingDirectionOnceOneIsExplicit(t *testing.T) {
	got := fixRule(t, NewAM03(), "select a from t order by a, b desc\n")
	assert.Contains(t, got, "a ASC, b desc")
}

func TestAM03_NoExplicitDirectionAnywhere_NoViolation(t *testing.T) {
	v := lintRule(t, NewAM03(), "select a from t order by a, b\n")
	assert.Empty(t, v)
}
