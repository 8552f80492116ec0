package rules

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/sqllint/sqllint/internal/parse"
	"github.com/sqllint/sqllint/pkg/engine"
	"github.com/sqllint/sqllint/pkg/segment"
	"github.com/sqllint/sqllint/pkg/templatefile"
)

// parseFile parses sql under the ansi dialect into a segment.File, the same
// way lintctx.Linter builds one, so each rule test exercises the rule
// against a real parse tree instead of a hand-built one.
func parseFile(t *testing.T, sql string) *segment.File {
	t.Helper()
	p, err := parse.New("ansi")
	require.NoError(t, err)
	arena := segment.NewArena()
	root, _ := p.Tree(arena, sql)
	return &segment.File{Root: root, Arena: arena}
}

// lintRule runs a single rule over sql in lint-only mode and returns the
// violations found.
func lintRule(t *testing.T, rule engine.Rule, sql string) []engine.Violation {
	t.Helper()
	file := parseFile(t, sql)
	d := &engine.Driver{Main: []engine.Rule{rule}, Logger: log.New(nil)}
	result := d.Run(file, templatefile.NewRaw(sql), engine.NewMemory(), false)
	return result.Violations
}

// fixRule runs a single rule over sql to a fixed point and returns the
// rewritten source.
func fixRule(t *testing.T, rule engine.Rule, sql string) string {
	t.Helper()
	file := parseFile(t, sql)
	tf := templatefile.NewRaw(sql)
	d := &engine.Driver{Main: []engine.Rule{rule}, Logger: log.New(nil)}
	d.Run(file, tf, engine.NewMemory(), true)
	patches := segment.IterPatches(file.Root, tf)
	out, err := segment.Render(tf.SourceStr(), patches)
	require.NoError(t, err)
	return out
}
