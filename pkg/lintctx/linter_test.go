package lintctx

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqllint/sqllint/pkg/config"
)

func writeTempSQL(t *testing.T, sql string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "query.sql")
	require.NoError(t, os.WriteFile(path, []byte(sql), 0o644))
	return path
}

func TestLinter_Lint_DoesNotMutateFile(t *testing.T) {
	path := writeTempSQL(t, "select a from t\n")
	cfg, err := config.Decode(nil)
	require.NoError(t, err)
	linter, err := New(cfg)
	require.NoError(t, err)

	outcomes := linter.Lint(context.Background(), []string{path})
	require.Len(t, outcomes, 1)
	assert.Equal(t, path, outcomes[0].Path)
	assert.Empty(t, outcomes[0].Fixed)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "select a from t\n", string(raw))
}

func TestLinter_Fix_ReturnsRewrittenSource(t *testing.T) {
	path := writeTempSQL(t, "select a from t where a <> 1\n")
	cfg, err := config.Decode([]byte("rules:\n  convention:\n    not_equal:\n      preferred_not_equal_style: c_style\n"))
	require.NoError(t, err)
	linter, err := New(cfg)
	require.NoError(t, err)

	outcomes := linter.Fix(context.Background(), []string{path})
	require.Len(t, outcomes, 1)
	assert.Contains(t, outcomes[0].Fixed, "!=")
}
