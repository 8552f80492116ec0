package reflow

import (
	"testing"

	"github.com/sqllint/sqllint/pkg/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alwaysSingle([]segment.Segment) Constraint { return ConstraintSingle }

func TestFlatten_GroupsBlocksAndPoints(t *testing.T) {
	arena := segment.NewArena()
	a := arena.NewLeaf(segment.KindKeyword, "select", nil)
	ws := arena.NewLeaf(segment.KindWhitespace, "  ", nil)
	b := arena.NewLeaf(segment.KindIdentifier, "x", nil)
	root := arena.NewNode("statement", []segment.Segment{a, ws, b})

	seq := Flatten(root, alwaysSingle)
	require.Len(t, seq, 3)
	assert.Equal(t, ElementBlock, seq[0].Kind)
	assert.Equal(t, ElementPoint, seq[1].Kind)
	assert.Equal(t, ElementBlock, seq[2].Kind)
}

func TestRespace_CollapsesExtraSpaces(t *testing.T) {
	arena := segment.NewArena()
	a := arena.NewLeaf(segment.KindKeyword, "select", nil)
	ws := arena.NewLeaf(segment.KindWhitespace, "   ", nil)
	b := arena.NewLeaf(segment.KindIdentifier, "x", nil)
	root := arena.NewNode("statement", []segment.Segment{a, ws, b})

	seq := Flatten(root, alwaysSingle)
	fixes := Respace(arena, seq)
	require.Len(t, fixes, 1)
	assert.Equal(t, segment.Replace, fixes[0].Type)
	assert.Equal(t, " ", fixes[0].Replacement[0].Raw())
}

func TestReindent_FirstLineLeadingWhitespaceIsDeleted(t *testing.T) {
	arena := segment.NewArena()
	lead := arena.NewLeaf(segment.KindWhitespace, "  ", nil)
	sel := arena.NewLeaf(segment.KindKeyword, "select", nil)
	root := arena.NewNode("statement", []segment.Segment{lead, sel})

	seq := Flatten(root, alwaysSingle)
	fixes := Reindent(arena, seq, IndentConfig{Unit: "    "})
	require.Len(t, fixes, 1)
	assert.Equal(t, segment.Delete, fixes[0].Type)
	assert.Equal(t, lead.ID(), fixes[0].Anchor.ID())
}

func TestRebreakLongLines_BreaksAtEligiblePoint(t *testing.T) {
	arena := segment.NewArena()
	sel := arena.NewLeaf(segment.KindKeyword, "select", nil)
	ws1 := arena.NewLeaf(segment.KindWhitespace, " ", nil)
	cols := arena.NewLeaf(segment.KindIdentifier, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", nil)
	ws2 := arena.NewLeaf(segment.KindWhitespace, " ", nil)
	from := arena.NewLeaf(segment.KindKeyword, "from", nil)
	ws3 := arena.NewLeaf(segment.KindWhitespace, " ", nil)
	tbl := arena.NewLeaf(segment.KindIdentifier, "t", nil)
	root := arena.NewNode("statement", []segment.Segment{sel, ws1, cols, ws2, from, ws3, tbl})

	seq := Flatten(root, alwaysSingle)
	fixes := RebreakLongLines(arena, seq, IndentConfig{Unit: "    "}, 20)
	require.NotEmpty(t, fixes)
	assert.Equal(t, segment.Replace, fixes[0].Type)
	assert.Equal(t, "\n", fixes[0].Replacement[0].Raw())
}

func TestRebreakLongLines_ShortLineUntouched(t *testing.T) {
	arena := segment.NewArena()
	sel := arena.NewLeaf(segment.KindKeyword, "select", nil)
	ws := arena.NewLeaf(segment.KindWhitespace, " ", nil)
	col := arena.NewLeaf(segment.KindIdentifier, "a", nil)
	root := arena.NewNode("statement", []segment.Segment{sel, ws, col})

	seq := Flatten(root, alwaysSingle)
	fixes := RebreakLongLines(arena, seq, IndentConfig{Unit: "    "}, 80)
	assert.Empty(t, fixes)
}

// alwaysInline models a scope configured with strip_newlines=true (spec.md
// §8 scenario S2): every gap collapses to a single space even across a
// literal newline, instead of being left for Reindent to own.
func alwaysInline([]segment.Segment) Constraint { return ConstraintInline }

func TestRespace_ConstraintInline_CollapsesNewline(t *testing.T) {
	arena := segment.NewArena()
	sel := arena.NewLeaf(segment.KindKeyword, "select", nil)
	nl := arena.NewLeaf(segment.KindNewline, "\n", nil)
	ws := arena.NewLeaf(segment.KindWhitespace, "    ", nil)
	one := arena.NewLeaf(segment.KindLiteral, "1", nil)
	root := arena.NewNode("statement", []segment.Segment{sel, nl, ws, one})

	seq := Flatten(root, alwaysInline)
	fixes := Respace(arena, seq)
	require.Len(t, fixes, 2)
	assert.Equal(t, segment.Replace, fixes[0].Type)
	assert.Equal(t, " ", fixes[0].Replacement[0].Raw())
	assert.Equal(t, segment.Delete, fixes[1].Type)
}

func TestRespace_ConstraintSingle_LeavesNewlinePointAlone(t *testing.T) {
	arena := segment.NewArena()
	sel := arena.NewLeaf(segment.KindKeyword, "select", nil)
	ws := arena.NewLeaf(segment.KindWhitespace, "   ", nil) // redundant trailing whitespace
	nl := arena.NewLeaf(segment.KindNewline, "\n", nil)
	one := arena.NewLeaf(segment.KindLiteral, "1", nil)
	root := arena.NewNode("statement", []segment.Segment{sel, ws, nl, one})

	seq := Flatten(root, alwaysSingle)
	fixes := Respace(arena, seq)
	require.Len(t, fixes, 1)
	assert.Equal(t, segment.Delete, fixes[0].Type)
	assert.Equal(t, ws.ID(), fixes[0].Anchor.ID())
}

func TestReindent_FixesMismatchedIndentAfterIndentMeta(t *testing.T) {
	arena := segment.NewArena()
	sel := arena.NewLeaf(segment.KindKeyword, "select", nil)
	indent := arena.NewLeaf(segment.KindIndent, "", nil)
	nl := arena.NewLeaf(segment.KindNewline, "\n", nil)
	ws := arena.NewLeaf(segment.KindWhitespace, "  ", nil) // only 2 spaces, expect 4
	col := arena.NewLeaf(segment.KindIdentifier, "a", nil)
	dedent := arena.NewLeaf(segment.KindDedent, "", nil)
	root := arena.NewNode("statement", []segment.Segment{sel, indent, nl, ws, col, dedent})

	seq := Flatten(root, alwaysSingle)
	fixes := Reindent(arena, seq, IndentConfig{Unit: "    "})
	require.Len(t, fixes, 1)
	assert.Equal(t, "    ", fixes[0].Replacement[0].Raw())
}
