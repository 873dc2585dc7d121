package internal

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
)

// HostWorkers returns the number of workers the host can run in parallel,
// as reported by runtime.GOMAXPROCS(0), but never less than 1.
func HostWorkers() int {
	return FloorWorkers(runtime.GOMAXPROCS(0))
}

// FloorWorkers returns n, or 1 if n < 1.
func FloorWorkers(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// ShouldSplit reports whether a range of size n is large enough to be divided
// among the given number of workers, each receiving at least threshold
// elements.
func ShouldSplit(n, workers, threshold int) bool {
	if workers < 2 {
		return false
	}
	return n/workers >= threshold
}

// ChunkBounds returns the half-open bounds of chunk i when a range of size n
// is divided into the given number of contiguous chunks. The remainder n %
// chunks is spread over the first chunks, one extra element each, so chunk
// sizes differ by at most one.
func ChunkBounds(n, chunks, i int) (low, high int) {
	if chunks <= 0 || i < 0 || i >= chunks {
		panic(fmt.Sprintf("invalid chunk %v of %v", i, chunks))
	}
	size, rem := n/chunks, n%chunks
	low = i*size + min(i, rem)
	high = low + size
	if i < rem {
		high++
	}
	return
}

type runtimeError struct{ error }

func (runtimeError) RuntimeError() {}

// WrapPanic adds stack trace information to a recovered panic.
func WrapPanic(p interface{}) interface{} {
	if p != nil {
		s := fmt.Sprintf("%v\n%s\nrethrown at", p, debug.Stack())
		if _, isError := p.(error); isError {
			r := errors.New(s)
			if _, isRuntimeError := p.(runtime.Error); isRuntimeError {
				return runtimeError{r}
			}
			return r
		}
		return s
	}
	return nil
}
