// Package worker implements the bounded work-stealing pool spec.md §5
// requires: at most min(concurrency, number of files) worker goroutines pull
// files from a shared job channel, each file handled by exactly one worker
// (the job handler builds that file's segment arena and memory bag), feeding
// a single pre-sized result slice that needs no locking because every job
// writes to a distinct index — the same build-once, read-only-at-serve-time ownership
// discipline the teacher applies to router.routeTrees.
package worker

import (
	"context"
	"sync"
)

// Job is one unit of work the pool dispatches to a worker: lint or fix a
// single file, identified by its index in the caller's input slice.
type Job struct {
	Index int
	Path  string
}

// Result is one Job's outcome, written back to the slot Index names.
type Result struct {
	Index int
	Value interface{}
	Err   error
}

// Run dispatches one job per path to a bounded pool of workers and returns
// results indexed identically to paths, each slot populated exactly once.
// ctx is polled between files only, never inside a single file's fix loop
// (spec.md §5 "a context.Context carries the SIGINT-derived cancellation
// token, polled between files only"); a job in flight when ctx is
// cancelled still runs to completion; no further jobs are started after.
func Run(ctx context.Context, paths []string, concurrency int, handle func(ctx context.Context, job Job) (interface{}, error)) []Result {
	if concurrency <= 0 {
		concurrency = 1
	}
	if concurrency > len(paths) {
		concurrency = len(paths)
	}

	results := make([]Result, len(paths))
	for i := range results {
		results[i].Index = i
	}
	jobs := make(chan Job)

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for w := 0; w < concurrency; w++ {
		go func() {
			defer wg.Done()
			for job := range jobs {
				value, err := handle(ctx, job)
				results[job.Index] = Result{Index: job.Index, Value: value, Err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, p := range paths {
			select {
			case <-ctx.Done():
				return
			case jobs <- Job{Index: i, Path: p}:
			}
		}
	}()

	wg.Wait()
	return results
}
