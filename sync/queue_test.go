package sync_test

import (
	"fmt"
	"sort"
	gosync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exascience/paraccum/sync"
)

func ExampleQueue() {
	var q sync.Queue[string]
	q.Push("first")
	q.Push("second")
	q.Emplace(func() string { return fmt.Sprintf("%s-%d", "third", 3) })

	for !q.Empty() {
		v, _ := q.Pop()
		fmt.Println(v)
	}

	// Output:
	// first
	// second
	// third-3
}

func TestPopEmpty(t *testing.T) {
	t.Parallel()

	var q sync.Queue[int]
	_, err := q.Pop()
	require.ErrorIs(t, err, sync.ErrEmptyQueue)

	q.Push(1)
	v, err := q.Pop()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = q.Pop()
	require.ErrorIs(t, err, sync.ErrEmptyQueue)
}

func TestFIFOOrder(t *testing.T) {
	t.Parallel()

	q := sync.NewQueue(0, 1, 2)
	for i := 3; i < 1000; i++ {
		q.Push(i)
		if i%3 == 0 {
			v, err := q.Pop()
			require.NoError(t, err)
			require.Equal(t, i/3-1, v)
		}
	}
	next := 1000/3 - 1 + 1
	for !q.Empty() {
		v, err := q.Pop()
		require.NoError(t, err)
		require.Equal(t, next, v)
		next++
	}
	assert.Equal(t, 1000, next)
}

func TestConcurrentPush(t *testing.T) {
	t.Parallel()

	const goroutines, perGoroutine = 8, 125

	var q sync.Queue[int]
	var wg gosync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				q.Push(g*perGoroutine + i)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, goroutines*perGoroutine, q.Len())

	got := make([]int, 0, goroutines*perGoroutine)
	for i := 0; i < goroutines*perGoroutine; i++ {
		v, err := q.Pop()
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.True(t, q.Empty())

	// Values of a single goroutine keep their relative order.
	last := make([]int, goroutines)
	for i := range last {
		last[i] = -1
	}
	for _, v := range got {
		g := v / perGoroutine
		require.Greater(t, v, last[g])
		last[g] = v
	}

	sort.Ints(got)
	for i, v := range got {
		require.Equal(t, i, v, "pushed values must be popped exactly once")
	}
}

func TestConcurrentPushPop(t *testing.T) {
	t.Parallel()

	const n = 4000

	var q sync.Queue[int]
	var wg gosync.WaitGroup
	popped := make(chan int, n)
	for g := 0; g < 4; g++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < n/4; i++ {
				q.Emplace(func() int { return g*(n/4) + i })
			}
		}()
		go func() {
			defer wg.Done()
			for count := 0; count < n/4; {
				if v, err := q.Pop(); err == nil {
					popped <- v
					count++
				}
			}
		}()
	}
	wg.Wait()
	close(popped)

	seen := make(map[int]bool, n)
	for v := range popped {
		require.False(t, seen[v], "duplicate value %d", v)
		seen[v] = true
	}
	assert.Len(t, seen, n)
	assert.True(t, q.Empty())
}

func TestSwap(t *testing.T) {
	t.Parallel()

	a := sync.NewQueue(1, 2, 3)
	b := sync.NewQueue(10, 20)
	_, err := a.Pop()
	require.NoError(t, err)

	a.Swap(b)
	assert.Equal(t, []int{10, 20}, a.Drain())
	assert.Equal(t, []int{2, 3}, b.Drain())

	c := sync.NewQueue(7)
	c.Swap(c)
	assert.Equal(t, []int{7}, c.Drain())
}

func TestConcurrentSwapDoesNotDeadlock(t *testing.T) {
	t.Parallel()

	a := sync.NewQueue(1, 2, 3)
	b := sync.NewQueue(4, 5)

	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg gosync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 1000; i++ {
					if g%2 == 0 {
						a.Swap(b)
					} else {
						b.Swap(a)
					}
				}
			}()
		}
		wg.Wait()
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("concurrent swaps did not complete")
	}

	// 8000 swaps in total, an even number, so both queues are back.
	assert.Equal(t, []int{1, 2, 3}, a.Drain())
	assert.Equal(t, []int{4, 5}, b.Drain())
}

type point struct{ x, y int }

func newPoint(x, y int) point { return point{x, y} }

func TestEmplace(t *testing.T) {
	t.Parallel()

	var q sync.Queue[point]
	q.Emplace(func() point { return newPoint(3, 4) })

	v, err := q.Pop()
	require.NoError(t, err)
	assert.Equal(t, newPoint(3, 4), v)
}

func TestDrainAndLen(t *testing.T) {
	t.Parallel()

	q := sync.NewQueue[int]()
	assert.True(t, q.Empty())
	assert.Empty(t, q.Drain())

	for i := 0; i < 5; i++ {
		q.Push(i)
	}
	_, err := q.Pop()
	require.NoError(t, err)
	assert.Equal(t, 4, q.Len())
	assert.Equal(t, []int{1, 2, 3, 4}, q.Drain())
	assert.Equal(t, 0, q.Len())

	q.Push(9)
	v, err := q.Pop()
	require.NoError(t, err)
	assert.Equal(t, 9, v)
}

func BenchmarkPushPop(b *testing.B) {
	var q sync.Queue[int]
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			q.Push(1)
			_, _ = q.Pop()
		}
	})
}
