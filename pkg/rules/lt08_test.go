package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLT08_MissingBlankLineBetweenCTEs_FlaggedAndFixed(t *testing.T) {
	sql := "with a as (select 1),\nb as (select 2)\nselect * from a,b\n"
	v := lintRule(t, NewLT08(), sql)
	require.Len(t, v, 1)
	assert.Equal(t, "LT08", v[0].RuleCode)
	require.Len(t, v[0].Fixes, 1)

	got := fixRule(t, NewLT08(), sql)
	assert.Equal(t, "with a as (select 1),\n\nb as (select 2)\nselect * from a,b\n", got)
}

func TestLT08_AlreadyBlank_NoViolation(t *testing.T) {
	sql := "with a as (select 1),\n\nb as (select 2)\nselect * from a,b\n"
	v := lintRule(t, NewLT08(), sql)
	assert.Empty(t, v)
}

func TestLT08_SingleCTE_NoViolation(t *testing.T) {
	v := lintRule(t, NewLT08(), "with a as (select 1) select * from a\n")
	assert.Empty(t, v)
}
