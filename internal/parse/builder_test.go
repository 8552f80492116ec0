package parse

import (
	"testing"

	"github.com/sqllint/sqllint/internal/dialect"
	"github.com/sqllint/sqllint/pkg/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDialect(t *testing.T) *dialect.Dialect {
	t.Helper()
	d, err := dialect.New("ansi")
	require.NoError(t, err)
	return d
}

func TestParse_RawReproducesSourceExactly(t *testing.T) {
	d := mustDialect(t)
	src := "select a, b\nfrom t\nwhere a = 1\norder by a desc\n"
	arena := segment.NewArena()
	root, ok := Parse(arena, d, src)
	require.True(t, ok)
	assert.Equal(t, src, root.Raw())
}

func TestParse_FallsBackToUnparsableOnGarbage(t *testing.T) {
	d := mustDialect(t)
	src := "select from from where"
	arena := segment.NewArena()
	root, ok := Parse(arena, d, src)
	assert.False(t, ok)
	assert.Equal(t, src, root.Raw())

	file := root.(*segment.Node)
	require.Len(t, file.Segments(), 1)
	assert.Equal(t, KindUnparsable, file.Segments()[0].Kind())
}

func TestParse_SelectClauseHasIndentDedentMeta(t *testing.T) {
	d := mustDialect(t)
	arena := segment.NewArena()
	root, ok := Parse(arena, d, "select a, b from t\n")
	require.True(t, ok)

	selectClause := segment.RecursiveCrawl(root, []segment.Kind{KindSelectClause}, false, nil, true)
	require.Len(t, selectClause, 1)
	children := selectClause[0].Segments()
	require.NotEmpty(t, children)
	assert.Equal(t, segment.KindIndent, children[0].Kind())
	assert.Equal(t, segment.KindDedent, children[len(children)-1].Kind())
}

func TestParse_JoinClauseCapturesKind(t *testing.T) {
	d := mustDialect(t)
	arena := segment.NewArena()
	root, ok := Parse(arena, d, "select a from x left join y on x.id = y.id\n")
	require.True(t, ok)

	joins := segment.RecursiveCrawl(root, []segment.Kind{KindJoinClause}, false, nil, true)
	require.Len(t, joins, 1)
}
