package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_AppliesDefaults(t *testing.T) {
	cfg, err := Decode([]byte(``))
	require.NoError(t, err)
	assert.Equal(t, "ansi", cfg.Dialect)
	assert.Equal(t, "raw", cfg.Templater)
	assert.Equal(t, 80, cfg.MaxLineLength)
	assert.Equal(t, "    ", cfg.RuleOptions.Indentation.Unit)
}

func TestDecode_RejectsInvalidEnum(t *testing.T) {
	_, err := Decode([]byte("rules:\n  capitalisation:\n    keywords:\n      capitalisation_policy: shouty\n"))
	require.Error(t, err)
}

func TestDecode_ResolvesExplicitValues(t *testing.T) {
	yaml := `
core:
  dialect: ansi
  max_line_length: 120
indentation:
  indent_unit: tab
rules:
  allow_scalar: true
  capitalisation:
    keywords:
      capitalisation_policy: upper
  convention:
    not_equal:
      preferred_not_equal_style: ansi
  references:
    qualification:
      ignore_words: [id]
`
	cfg, err := Decode([]byte(yaml))
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.MaxLineLength)
	assert.Equal(t, "\t", cfg.RuleOptions.Indentation.Unit)
	assert.True(t, cfg.RuleOptions.AL03.AllowScalar)
	assert.Equal(t, []string{"id"}, cfg.RuleOptions.RF01.IgnoreWords)
}
