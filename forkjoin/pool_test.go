package forkjoin

import (
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToGOMAXPROCS(t *testing.T) {
	p := New(0)
	assert.Equal(t, runtime.GOMAXPROCS(0), p.Workers())

	p = New(-3)
	assert.Equal(t, runtime.GOMAXPROCS(0), p.Workers())

	p = New(4)
	assert.Equal(t, 4, p.Workers())
}

func TestDefaultIsShared(t *testing.T) {
	require.Same(t, Default(), Default())
}

func TestDoRunsBothBranches(t *testing.T) {
	p := New(4)
	var left, right bool
	p.Do(func() { left = true }, func() { right = true })
	assert.True(t, left)
	assert.True(t, right)
}

func TestDoSingleWorkerInlines(t *testing.T) {
	p := New(1)
	order := make([]string, 0, 2)
	p.Do(
		func() { order = append(order, "left") },
		func() { order = append(order, "right") },
	)
	assert.Equal(t, []string{"left", "right"}, order)
	assert.Equal(t, Stats{Forked: 0, Inlined: 1}, p.Stats())
}

func TestDoForksLeftWhenSlotFree(t *testing.T) {
	p := New(2)
	rightDone := make(chan struct{})
	var sawRight bool

	p.Do(
		func() {
			select {
			case <-rightDone:
				sawRight = true
			case <-time.After(5 * time.Second):
			}
		},
		func() { close(rightDone) },
	)

	assert.True(t, sawRight, "left did not run concurrently with right")
	assert.Equal(t, Stats{Forked: 1, Inlined: 0}, p.Stats())
	assert.Equal(t, int64(0), p.Active())
}

// fib 은 이진 태스크 트리를 만든다.
func fib(p *Pool, n int, maxActive *atomic.Int64) int {
	if n < 2 {
		return n
	}
	var a, b int
	p.Do(
		func() { a = fib(p, n-1, maxActive) },
		func() { b = fib(p, n-2, maxActive) },
	)
	for {
		cur, seen := p.Active(), maxActive.Load()
		if cur <= seen || maxActive.CompareAndSwap(seen, cur) {
			break
		}
	}
	return a + b
}

func TestDoJoinsNestedTasks(t *testing.T) {
	p := New(4)
	var maxActive atomic.Int64
	assert.Equal(t, 6765, fib(p, 20, &maxActive))

	assert.LessOrEqual(t, maxActive.Load(), int64(3))
	assert.Equal(t, int64(0), p.Active())

	stats := p.Stats()
	assert.Positive(t, stats.Forked+stats.Inlined)
}

func TestGroupWaitsForAllTasks(t *testing.T) {
	p := New(3)
	g := p.Group()

	var count atomic.Int64
	for range 100 {
		g.Go(func() { count.Add(1) })
	}
	g.Wait()

	assert.Equal(t, int64(100), count.Load())
	assert.Equal(t, int64(0), p.Active())
	assert.Equal(t, int64(100), p.Stats().Forked+p.Stats().Inlined)
}
