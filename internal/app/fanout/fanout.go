// Package fanout runs a function over a slice of items on a bounded number
// of goroutines and keeps results in input order. The period service uses it
// to build batch items concurrently.
package fanout

import (
	"context"
	"sync"
)

// Result holds the outcome for one item. Exactly one of Value or Err is
// meaningful.
type Result[R any] struct {
	Value R
	Err   error
}

// Failure identifies an item that failed by its position in the input.
type Failure struct {
	Index int
	Err   error
}

// Run calls fn for each item using at most workers goroutines at a time and
// returns the results in input order.
//
// An item still waiting for a slot when ctx is canceled records ctx.Err()
// without calling fn. Items that already hold a slot run to completion, so fn
// should watch ctx itself if it can block.
//
// A workers value below 1 is treated as 1. An empty items slice returns an
// empty, non-nil slice.
func Run[T, R any](ctx context.Context, workers int, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	if len(items) == 0 {
		return []Result[R]{}
	}
	workers = max(workers, 1)

	results := make([]Result[R], len(items))
	slots := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Go(func() {
			select {
			case slots <- struct{}{}:
				defer func() { <-slots }()
			case <-ctx.Done():
				results[i] = Result[R]{Err: ctx.Err()}
				return
			}

			val, err := fn(ctx, item)
			results[i] = Result[R]{Value: val, Err: err}
		})
	}

	wg.Wait()
	return results
}

// Split separates results into values and failures. Values stays aligned
// with the input and holds the zero value at every failed position.
func Split[R any](results []Result[R]) ([]R, []Failure) {
	values := make([]R, len(results))
	var failures []Failure
	for i, r := range results {
		if r.Err != nil {
			failures = append(failures, Failure{Index: i, Err: r.Err})
			continue
		}
		values[i] = r.Value
	}
	return values, failures
}
