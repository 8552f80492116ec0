package engine

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/sqllint/sqllint/pkg/segment"
	"github.com/sqllint/sqllint/pkg/templatefile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// upperKeywordRule uppercases every lowercase keyword leaf it finds, one fix
// per pass, exercising the Main-phase converge loop end to end.
type upperKeywordRule struct{ arena *segment.Arena }

func (upperKeywordRule) Code() string    { return "TEST01" }
func (upperKeywordRule) Name() string    { return "test uppercase keywords" }
func (upperKeywordRule) Crawler() Crawler { return SegmentSeeker{Types: []segment.Kind{segment.KindKeyword}} }

func (r upperKeywordRule) Eval(ctx *RuleContext) []Violation {
	leaf := ctx.Segment.(*segment.Leaf)
	raw := leaf.Raw()
	upper := upperASCII(raw)
	if upper == raw {
		return nil
	}
	fixed := r.arena.NewLeaf(segment.KindKeyword, upper, nil)
	return []Violation{{
		RuleCode:    "TEST01",
		Description: "keyword should be uppercase",
		Anchor:      leaf,
		Fixes: []segment.LintFix{{
			Type:        segment.Replace,
			Anchor:      leaf,
			Replacement: []segment.Segment{fixed},
		}},
	}}
}

func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 32
		}
	}
	return string(b)
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 32
		}
	}
	return string(b)
}

// flipCaseRule toggles a keyword's case every round, forever — a genuine
// A→B→A oscillation that never converges, exercising hashState's
// oscillation detection.
type flipCaseRule struct{ arena *segment.Arena }

func (flipCaseRule) Code() string { return "TEST02" }
func (flipCaseRule) Name() string { return "test flip keyword case" }
func (flipCaseRule) Crawler() Crawler {
	return SegmentSeeker{Types: []segment.Kind{segment.KindKeyword}}
}

func (r flipCaseRule) Eval(ctx *RuleContext) []Violation {
	leaf := ctx.Segment.(*segment.Leaf)
	raw := leaf.Raw()
	flipped := lowerASCII(raw)
	if raw == flipped {
		flipped = upperASCII(raw)
	}
	fixed := r.arena.NewLeaf(segment.KindKeyword, flipped, nil)
	return []Violation{{
		RuleCode:    "TEST02",
		Description: "flip case forever",
		Anchor:      leaf,
		Fixes: []segment.LintFix{{
			Type:        segment.Replace,
			Anchor:      leaf,
			Replacement: []segment.Segment{fixed},
		}},
	}}
}

// fakeReparser lets tests control which rendered sources are treated as
// unparseable, without depending on internal/parse.
type fakeReparser struct {
	shouldFail func(source string) bool
}

func (f fakeReparser) Tree(arena *segment.Arena, source string) (segment.Segment, bool) {
	leaf := arena.NewLeaf(segment.KindCode, source, nil)
	return leaf, !f.shouldFail(source)
}

func buildKeywordTree(arena *segment.Arena, kw string) *segment.File {
	leaf := arena.NewLeaf(segment.KindKeyword, kw, nil)
	root := arena.NewNode("statement", []segment.Segment{leaf})
	return &segment.File{Root: root, Arena: arena}
}

func TestDriver_FixesConverge(t *testing.T) {
	arena := segment.NewArena()
	file := buildKeywordTree(arena, "select")
	tf := templatefile.NewRaw("select")

	d := &Driver{Main: []Rule{upperKeywordRule{arena: arena}}, Logger: log.New(nil)}
	result := d.Run(file, tf, NewMemory(), true)

	assert.Equal(t, 1, result.FixesMade)
	assert.Equal(t, "SELECT", file.Root.Raw())
}

func TestDriver_LintOnlyDoesNotMutate(t *testing.T) {
	arena := segment.NewArena()
	file := buildKeywordTree(arena, "select")
	tf := templatefile.NewRaw("select")

	d := &Driver{Main: []Rule{upperKeywordRule{arena: arena}}, Logger: log.New(nil)}
	result := d.Run(file, tf, NewMemory(), false)

	require.Len(t, result.Violations, 1)
	assert.Equal(t, "select", file.Root.Raw())
}

func TestApply_ConflictingFixesAreSkipped(t *testing.T) {
	arena := segment.NewArena()
	leaf := arena.NewLeaf(segment.KindKeyword, "select", nil)
	root := arena.NewNode("statement", []segment.Segment{leaf})
	file := &segment.File{Root: root, Arena: arena}

	fixA := segment.LintFix{Type: segment.Replace, Anchor: leaf, Replacement: []segment.Segment{arena.NewLeaf(segment.KindKeyword, "SELECT", nil)}}
	fixB := segment.LintFix{Type: segment.Replace, Anchor: leaf, Replacement: []segment.Segment{arena.NewLeaf(segment.KindKeyword, "Select", nil)}}

	applied, conflicts := Apply(file, []Violation{
		{RuleCode: "A", Anchor: leaf, Fixes: []segment.LintFix{fixA}},
		{RuleCode: "B", Anchor: leaf, Fixes: []segment.LintFix{fixB}},
	})
	assert.Equal(t, 0, applied)
	assert.Equal(t, 1, conflicts)
	assert.Equal(t, "select", file.Root.Raw())
}

func TestDriver_OscillationDetected(t *testing.T) {
	arena := segment.NewArena()
	file := buildKeywordTree(arena, "select")
	tf := templatefile.NewRaw("select")

	d := &Driver{Main: []Rule{flipCaseRule{arena: arena}}, Logger: log.New(nil)}
	result := d.Run(file, tf, NewMemory(), true)

	assert.True(t, result.Oscillated)
}

func TestDriver_FixWouldBreakReverts(t *testing.T) {
	arena := segment.NewArena()
	file := buildKeywordTree(arena, "select")
	tf := templatefile.NewRaw("select")

	reparser := fakeReparser{shouldFail: func(source string) bool { return source == "SELECT" }}
	d := &Driver{Main: []Rule{upperKeywordRule{arena: arena}}, Logger: log.New(nil), Reparser: reparser}
	result := d.Run(file, tf, NewMemory(), true)

	assert.True(t, result.FixWouldBreak)
	assert.Equal(t, 0, result.FixesMade)
	assert.Equal(t, "select", file.Root.Raw())
}

func TestMemory_SetGetIsolatedByRuleCode(t *testing.T) {
	mem := NewMemory()
	mem.Set("CP01", "upper")
	mem.Set("CP03", "lower")

	var a, b string
	require.True(t, mem.Get("CP01", &a))
	require.True(t, mem.Get("CP03", &b))
	assert.Equal(t, "upper", a)
	assert.Equal(t, "lower", b)

	var missing int
	assert.False(t, mem.Get("CP01", &missing))
}
