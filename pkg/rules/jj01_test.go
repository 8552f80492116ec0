package rules

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqllint/sqllint/pkg/engine"
	"github.com/sqllint/sqllint/pkg/segment"
	"github.com/sqllint/sqllint/pkg/templatefile"
)

// taggedFile builds a one-leaf file whose single leaf spans tag exactly,
// paired with a TemplatedFile recording that same span as a templated
// slice — the shape leafForTemplatedSlice expects, since the dialect lexer
// has no notion of a Jinja tag as a single token. This isolates JJ01's own
// padding logic from the (separate, unwired) question of how a tag should
// be lexed, the same way reflow_test.go hand-builds trees to isolate
// Flatten/Respace from the parser.
func taggedFile(tag string) (*segment.File, *templatefile.TemplatedFile) {
	arena := segment.NewArena()
	leaf := arena.NewLeaf(segment.KindLiteral, tag, nil)
	sl := segment.Slice{Start: 0, Stop: len(tag)}
	segment.SetPosition(leaf, segment.PositionMarker{
		SourceSlice: sl, TemplatedSlice: sl, WorkingLine: 1, WorkingCol: 1,
	})
	root := arena.NewNode("file", []segment.Segment{leaf})
	tf := templatefile.New(tag, tag, []templatefile.SliceRecord{
		{Type: templatefile.SliceTemplated, SourceSlice: sl, TemplatedSlice: sl},
	})
	return &segment.File{Root: root, Arena: arena}, tf
}

func TestJJ01_MissingPadding_IsFixed(t *testing.T) {
	file, tf := taggedFile("{{a}}")
	d := &engine.Driver{Main: []engine.Rule{NewJJ01()}, Logger: log.New(nil)}
	result := d.Run(file, tf, engine.NewMemory(), true)
	require.Equal(t, 1, result.FixesMade)
	assert.Equal(t, "{{ a }}", file.Root.Raw())
}

func TestJJ01_AlreadyPadded_NoViolation(t *testing.T) {
	file, tf := taggedFile("{{ a }}")
	d := &engine.Driver{Main: []engine.Rule{NewJJ01()}, Logger: log.New(nil)}
	result := d.Run(file, tf, engine.NewMemory(), false)
	assert.Empty(t, result.Violations)
}
