package concurrency

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// ThrottledWorker runs a job for each argument on at most limit goroutines,
// starting at most one job per interval when interval is non zero
type ThrottledWorker[T any, R any] struct {
	limit       int
	interval    time.Duration
	jobCallback func(ctx context.Context, arg T) (R, error)
}

func NewThrottledWorker[T any, R any](limit int, interval time.Duration, jobCallback func(ctx context.Context, arg T) (R, error)) ThrottledWorker[T, R] {
	if limit < 1 {
		limit = 1
	}
	return ThrottledWorker[T, R]{limit: limit, interval: interval, jobCallback: jobCallback}
}

// Run returns the results in the order of jobArgs. The first job error cancels
// the jobs still waiting and is returned.
func (w *ThrottledWorker[T, R]) Run(ctx context.Context, jobArgs []T) ([]R, error) {
	results := make([]R, len(jobArgs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.limit)

	var limiter <-chan time.Time
	if w.interval > 0 {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		limiter = ticker.C
	}

	for i, arg := range jobArgs {
		if limiter != nil && i > 0 {
			select {
			case <-limiter:
			case <-gctx.Done():
			}
		}
		if gctx.Err() != nil {
			break
		}

		i, arg := i, arg
		g.Go(func() error {
			result, err := w.jobCallback(gctx, arg)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
