package parallel

import "sync/atomic"

// accumulator holds the shared result of a reduction. Partial results are
// folded in with a compare-and-swap loop, so concurrent updates are never
// lost. combine may run more than once for the same partial result when
// updates collide.
type accumulator[T any] struct {
	value atomic.Pointer[T]
}

func newAccumulator[T any](init T) *accumulator[T] {
	acc := &accumulator[T]{}
	acc.value.Store(&init)
	return acc
}

func (acc *accumulator[T]) add(partial T, combine func(x, y T) (T, error)) error {
	for {
		old := acc.value.Load()
		next, err := combine(*old, partial)
		if err != nil {
			return err
		}
		if acc.value.CompareAndSwap(old, &next) {
			return nil
		}
	}
}

func (acc *accumulator[T]) load() T {
	return *acc.value.Load()
}
