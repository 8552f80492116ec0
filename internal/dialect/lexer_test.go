package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLex_EveryByteAccountedFor(t *testing.T) {
	src := "select  a.b -- comment\nfrom t\n"
	items := Lex(src)
	var rebuilt string
	for _, it := range items {
		rebuilt += it.Value
	}
	assert.Equal(t, src, rebuilt)
	require.NotEmpty(t, items)
	assert.Equal(t, ItemEOF, items[len(items)-1].Type)
}

func TestLex_StringEscapedQuote(t *testing.T) {
	items := Lex("'it''s'")
	require.Len(t, items, 2)
	assert.Equal(t, ItemString, items[0].Type)
	assert.Equal(t, "'it''s'", items[0].Value)
}

func TestLex_TwoCharSymbols(t *testing.T) {
	for _, sym := range twoCharSymbols {
		items := Lex("a " + sym + " b")
		var found bool
		for _, it := range items {
			if it.Type == ItemSymbol && it.Value == sym {
				found = true
			}
		}
		assert.True(t, found, "expected to find symbol %q", sym)
	}
}

func TestClassify_ReclassifiesKeywords(t *testing.T) {
	items := Classify(Lex("select Foo from Bar"))
	var kinds []ItemType
	for _, it := range items {
		if it.Type != ItemWhitespace {
			kinds = append(kinds, it.Type)
		}
	}
	assert.Equal(t, []ItemType{ItemKeyword, ItemIdentifier, ItemKeyword, ItemIdentifier, ItemEOF}, kinds)
}

func TestIsReservedIsUnreserved(t *testing.T) {
	assert.True(t, IsReserved("SELECT"))
	assert.False(t, IsReserved("VALUE"))
	assert.True(t, IsUnreserved("VALUE"))
	assert.False(t, IsUnreserved("SELECT"))
}
