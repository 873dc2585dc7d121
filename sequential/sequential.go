// Package sequential provides sequential implementations of the
// reductions provided by the parallel package. This is useful for
// testing and debugging, and the parallel package falls back to it for
// ranges that are too small to be worth splitting.
package sequential

import (
	"fmt"
)

// RangeReduce invokes the range reducer once for the whole half-open
// interval from low to high, and combines its result with init.
//
// RangeReduce panics if low < 0 or high < low.
func RangeReduce[T any](
	low, high int,
	init T,
	reduce func(low, high int) (T, error),
	combine func(x, y T) (T, error),
) (result T, err error) {
	if (low < 0) || (high < low) {
		panic(fmt.Sprintf("invalid range: %v:%v", low, high))
	}
	if low == high {
		return init, nil
	}
	partial, err := reduce(low, high)
	if err != nil {
		return
	}
	return combine(init, partial)
}

// Reduce folds the slice from left to right, starting with init.
func Reduce[T any](s []T, init T, combine func(x, y T) T) T {
	result := init
	for _, x := range s {
		result = combine(result, x)
	}
	return result
}

// ReduceErr folds the slice from left to right, starting with init,
// and stops at the first error returned by combine.
func ReduceErr[T any](s []T, init T, combine func(x, y T) (T, error)) (result T, err error) {
	result = init
	for _, x := range s {
		if result, err = combine(result, x); err != nil {
			var zero T
			return zero, err
		}
	}
	return
}

// Fold folds a non-empty slice from left to right, starting with its
// first element.
//
// Fold panics if s is empty.
func Fold[T any](s []T, combine func(x, y T) (T, error)) (result T, err error) {
	if len(s) == 0 {
		panic("empty fold")
	}
	return ReduceErr(s[1:], s[0], combine)
}
