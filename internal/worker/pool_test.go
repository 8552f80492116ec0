package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_PopulatesEverySlotExactlyOnce(t *testing.T) {
	paths := []string{"a.sql", "b.sql", "c.sql", "d.sql"}
	results := Run(context.Background(), paths, 2, func(_ context.Context, job Job) (interface{}, error) {
		return job.Path, nil
	})
	require.Len(t, results, len(paths))
	for i, p := range paths {
		assert.Equal(t, i, results[i].Index)
		assert.Equal(t, p, results[i].Value)
		assert.NoError(t, results[i].Err)
	}
}

func TestRun_StopsDispatchingAfterCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	paths := []string{"a.sql", "b.sql"}
	results := Run(ctx, paths, 1, func(_ context.Context, job Job) (interface{}, error) {
		return job.Path, nil
	})
	require.Len(t, results, 2)
}
