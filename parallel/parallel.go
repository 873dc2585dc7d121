// Package parallel provides reductions over ranges and slices that
// decide on their own whether the input is large enough to be split
// across the available workers.
//
// A reduction with W workers and threshold k runs sequentially when the
// input has fewer than W*k elements. Otherwise the input is divided into
// W contiguous chunks, W-1 of which are reduced in their own goroutines
// while the calling goroutine reduces the last one. Each partial result
// is folded into a shared accumulator that was seeded with init exactly
// once.
//
// The combine function must be associative and commutative, and free of
// side effects: partial results are merged in no particular order, and
// combine may be invoked again for the same pair when concurrent updates
// of the accumulator collide. For other combine functions the result is
// implementation-defined.
package parallel

import (
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/exascience/paraccum/internal"
	"github.com/exascience/paraccum/sequential"
)

// Number is the set of types Sum can add.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 | ~complex64 | ~complex128
}

// RangeReduce receives a range, an initial value, a range reducer reduce,
// and a pair reducer combine, and reduces the half-open interval from low
// to high, including low but excluding high.
//
// If the range is too small to be split, reduce is invoked once for the
// whole range and its result is combined with init. Otherwise the range is
// divided into as many chunks as there are workers, reduce is invoked for
// each chunk in parallel, and the partial results are combined with init.
// An empty range yields init.
//
// RangeReduce returns only when all range reducers have terminated. If any
// of them fails, RangeReduce returns the first error returned by a spawned
// worker, or else the error of the chunk reduced by the calling goroutine.
//
// If one or more reducer invocations panic, the corresponding goroutines
// recover the panics, and RangeReduce eventually panics with the
// left-most recovered panic value. Panics of spawned workers carry the
// worker's stack trace; a panic in the chunk reduced by the calling
// goroutine is re-raised unchanged.
func RangeReduce[T any](
	low, high int,
	init T,
	reduce func(low, high int) (T, error),
	combine func(x, y T) (T, error),
	opts ...Option,
) (result T, err error) {
	if (low < 0) || (high < low) {
		err = fmt.Errorf("%w: %v:%v", ErrInvalidRange, low, high)
		return
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return
	}
	if !cfg.split(high - low) {
		return sequential.RangeReduce(low, high, init, reduce, combine)
	}
	return splitReduce(cfg.workers, low, high, init, reduce, combine)
}

// Reduce folds all elements of s into init using combine, in parallel
// when s is large enough.
//
// The only errors Reduce returns are configuration errors.
func Reduce[T any](s []T, init T, combine func(x, y T) T, opts ...Option) (T, error) {
	return ReduceErr(s, init, func(x, y T) (T, error) {
		return combine(x, y), nil
	}, opts...)
}

// ReduceErr is like Reduce, but combine may fail. The first error
// is returned after all workers have terminated.
func ReduceErr[T any](s []T, init T, combine func(x, y T) (T, error), opts ...Option) (result T, err error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return
	}
	if !cfg.split(len(s)) {
		return sequential.ReduceErr(s, init, combine)
	}
	return splitReduce(cfg.workers, 0, len(s), init, func(low, high int) (T, error) {
		return sequential.Fold(s[low:high], combine)
	}, combine)
}

// Sum adds all elements of s.
func Sum[T Number](s []T, opts ...Option) (T, error) {
	return Reduce(s, 0, func(x, y T) T { return x + y }, opts...)
}

// Float64Sum adds all elements of s, using gonum's floats.Sum for each
// chunk.
func Float64Sum(s []float64, opts ...Option) (float64, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return 0, err
	}
	if !cfg.split(len(s)) {
		return floats.Sum(s), nil
	}
	return splitReduce(cfg.workers, 0, len(s), 0,
		func(low, high int) (float64, error) {
			return floats.Sum(s[low:high]), nil
		},
		func(x, y float64) (float64, error) {
			return x + y, nil
		},
	)
}

func splitReduce[T any](
	workers, low, high int,
	init T,
	reduce func(low, high int) (T, error),
	combine func(x, y T) (T, error),
) (result T, err error) {
	acc := newAccumulator(init)
	chunk := func(i int) error {
		clow, chigh := internal.ChunkBounds(high-low, workers, i)
		partial, err := reduce(low+clow, low+chigh)
		if err != nil {
			return err
		}
		return acc.add(partial, combine)
	}

	var g errgroup.Group
	panics := make([]interface{}, workers-1)
	for i := 0; i < workers-1; i++ {
		g.Go(func() error {
			defer func() {
				panics[i] = internal.WrapPanic(recover())
			}()
			return chunk(i)
		})
	}

	var lastErr error
	lastPanic := func() (p interface{}) {
		defer func() {
			p = recover()
		}()
		lastErr = chunk(workers - 1)
		return
	}()

	err = g.Wait()
	for _, p := range panics {
		if p != nil {
			panic(p)
		}
	}
	if lastPanic != nil {
		panic(lastPanic)
	}
	if err == nil {
		err = lastErr
	}
	if err != nil {
		return
	}
	return acc.load(), nil
}
