package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTemplatedFile struct {
	source     string
	templated  string
}

func (f fakeTemplatedFile) SourceStr() string     { return f.source }
func (f fakeTemplatedFile) TemplatedStr() string  { return f.templated }

func TestIterPatches_LiteralReplace(t *testing.T) {
	src := "select 1+2"
	tf := fakeTemplatedFile{source: src, templated: src}
	a := NewArena()
	head := a.NewLeaf(KindCode, "select 1", nil)
	SetPosition(head, PositionMarker{SourceSlice: Slice{Start: 0, Stop: 8}, TemplatedSlice: Slice{Start: 0, Stop: 8}})
	plus := a.NewLeaf(KindSymbol, "+", nil)
	expr := a.NewNode(Kind("expr"), []Segment{plus})
	SetPosition(plus, PositionMarker{SourceSlice: Slice{Start: 8, Stop: 9}, TemplatedSlice: Slice{Start: 8, Stop: 9}})
	SetPosition(expr, PositionMarker{SourceSlice: Slice{Start: 7, Stop: 10}, TemplatedSlice: Slice{Start: 7, Stop: 10}})
	root := a.NewNode(Kind("statement"), []Segment{head, expr})

	edited := plus.Edit(a, " + ", nil)
	SetPosition(edited, plus.Position())
	expr.SetChildren([]Segment{edited})

	patches := IterPatches(root, tf)
	assert.Len(t, patches, 1)
	assert.Equal(t, " + ", patches[0].ReplacementText)

	out, err := Render(src, patches)
	assert.NoError(t, err)
	assert.Equal(t, "select 1 + 2", out)
}

func TestIterPatches_DeletedLeafProducesDeletePatch(t *testing.T) {
	src := "select a as b from t"
	tf := fakeTemplatedFile{source: src, templated: src}
	a := NewArena()

	head := a.NewLeaf(KindCode, "select a", nil)
	SetPosition(head, PositionMarker{SourceSlice: Slice{Start: 0, Stop: 8}, TemplatedSlice: Slice{Start: 0, Stop: 8}})
	// " as b" (8:13) is removed wholesale from the tree, the way AL05 deletes
	// an entire alias_expression node — no leaf survives to carry a patch for
	// this span on its own.
	tail := a.NewLeaf(KindCode, " from t", nil)
	SetPosition(tail, PositionMarker{SourceSlice: Slice{Start: 13, Stop: 20}, TemplatedSlice: Slice{Start: 13, Stop: 20}})
	root := a.NewNode(Kind("statement"), []Segment{head, tail})

	patches := IterPatches(root, tf)
	require.Len(t, patches, 1)
	assert.Equal(t, CategoryDelete, patches[0].Category)
	assert.Equal(t, Slice{Start: 8, Stop: 13}, patches[0].SourceSlice)
	assert.Equal(t, "", patches[0].ReplacementText)

	out, err := Render(src, patches)
	assert.NoError(t, err)
	assert.Equal(t, "select a from t", out)
}

func TestRender_RejectsOverlap(t *testing.T) {
	patches := []FixPatch{
		{SourceSlice: Slice{Start: 0, Stop: 5}, ReplacementText: "a"},
		{SourceSlice: Slice{Start: 3, Stop: 8}, ReplacementText: "b"},
	}
	_, err := Render("0123456789", patches)
	assert.Error(t, err)
}

func TestNormalizeNewlines(t *testing.T) {
	assert.Equal(t, "a\nb\nc", NormalizeNewlines("a\r\nb\rc"))
}
