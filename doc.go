// Package paraccum provides two small building blocks for parallel
// programs: reductions that split their input across the available
// workers only when the input is large enough, and a FIFO queue that
// can be mutated from many goroutines.
//
// Paraccum provides the following subpackages:
//
// paraccum/parallel provides reductions over index ranges and slices.
// Inputs below a configurable number of elements per worker are reduced
// sequentially; larger inputs are divided into one contiguous chunk per
// worker, and the partial results are combined into a shared
// accumulator.
//
// paraccum/sequential provides sequential implementations of the
// reductions from paraccum/parallel, for testing and debugging.
//
// paraccum/sync provides a queue whose push, pop, swap, and emplace
// operations are serialized by a per-queue lock.
//
// The command paraccum in cmd/paraccum demonstrates both.
package paraccum
