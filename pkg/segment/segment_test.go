package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildSelect(a *Arena) *Node {
	kw := a.NewLeaf(KindKeyword, "SELECT", nil)
	ws := a.NewLeaf(KindWhitespace, " ", nil)
	id := a.NewIdentifier("1", "naked_identifier")
	return a.NewNode(Kind("select_statement"), []Segment{kw, ws, id})
}

func TestNode_Raw_IsContiguous(t *testing.T) {
	a := NewArena()
	n := buildSelect(a)
	assert.Equal(t, "SELECT 1", n.Raw())
}

func TestClassTypes_MultipleClassTypes(t *testing.T) {
	a := NewArena()
	id := a.NewIdentifier("foo", "naked_identifier")
	assert.True(t, id.ClassTypes().Has(ClassIdentifier))
	assert.True(t, id.ClassTypes().Has("naked_identifier"))
	assert.False(t, id.ClassTypes().Has("quoted_identifier"))
}

func TestEdit_PreservesKindNotID(t *testing.T) {
	a := NewArena()
	leaf := a.NewLeaf(KindKeyword, "select", nil)
	edited := leaf.Edit(a, "SELECT", nil)
	assert.Equal(t, leaf.Kind(), edited.Kind())
	assert.NotEqual(t, leaf.ID(), edited.ID())
	assert.Equal(t, "SELECT", edited.Raw())
}

func TestRecursiveCrawl_NoRecurseIntoMatch(t *testing.T) {
	a := NewArena()
	inner := a.NewNode(Kind("bracketed"), []Segment{a.NewLeaf(KindSymbol, "(", nil)})
	outer := a.NewNode(Kind("bracketed"), []Segment{inner})

	matches := RecursiveCrawl(outer, []Kind{"bracketed"}, false, nil, true)
	assert.Len(t, matches, 1)
	assert.Equal(t, outer.ID(), matches[0].ID())

	matchesRecurse := RecursiveCrawl(outer, []Kind{"bracketed"}, true, nil, true)
	assert.Len(t, matchesRecurse, 2)
}

func TestPathTo(t *testing.T) {
	a := NewArena()
	leafA := a.NewLeaf(KindKeyword, "SELECT", nil)
	leafB := a.NewIdentifier("x", "naked_identifier")
	inner := a.NewNode(Kind("select_clause"), []Segment{leafB})
	root := a.NewNode(Kind("select_statement"), []Segment{leafA, inner})

	path := PathTo(root, leafB)
	assert.Len(t, path, 2)
	assert.Equal(t, root.ID(), path[0].Parent.ID())
	assert.Equal(t, inner.ID(), path[1].Parent.ID())
}

func TestDescendantTypeSet_Caches(t *testing.T) {
	a := NewArena()
	n := buildSelect(a)
	first := DescendantTypeSet(n)
	assert.True(t, first.Has(ClassKeyword))
	assert.True(t, first.Has("naked_identifier"))

	// Mutating children invalidates the cache.
	n.SetChildren([]Segment{a.NewLeaf(KindKeyword, "SELECT", nil)})
	second := DescendantTypeSet(n)
	assert.False(t, second.Has("naked_identifier"))
}
