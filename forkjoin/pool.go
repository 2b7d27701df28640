// Package forkjoin 재귀 분할 정복용 포크-조인 스케줄러.
//
// Pool 은 동시에 살아 있는 태스크 수를 세마포로 제한한다. 슬롯이 없으면
// 태스크는 버려지지 않고 호출한 고루틴에서 바로 실행된다. 고루틴 자체의
// 부하 분산은 Go 런타임의 work-stealing 스케줄러가 맡는다.
//
// 사용 예:
//
//	pool := forkjoin.New(runtime.GOMAXPROCS(0))
//	pool.Do(
//		func() { solve(left) },
//		func() { solve(right) },
//	)
package forkjoin

import (
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// 전역 풀 (재사용을 위해)
var (
	defaultPool     *Pool
	defaultPoolOnce sync.Once
)

// Default 프로세스 전역 풀. GOMAXPROCS 크기로 한 번만 만든다.
func Default() *Pool {
	defaultPoolOnce.Do(func() {
		defaultPool = New(0)
	})
	return defaultPool
}

// Pool 포크-조인 태스크 스케줄러.
// * 호출한 고루틴이 첫 번째 워커이므로 추가 슬롯은 workers-1 개다.
type Pool struct {
	workers int
	slots   *semaphore.Weighted

	active  atomic.Int64
	forked  atomic.Int64
	inlined atomic.Int64
}

// Stats 풀이 지금까지 처리한 태스크 통계
type Stats struct {
	Forked  int64 `json:"forked" yaml:"forked"`
	Inlined int64 `json:"inlined" yaml:"inlined"`
}

// New workers 개의 실행 단위를 쓰는 풀을 만든다.
// workers <= 0 이면 GOMAXPROCS 를 따른다.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{
		workers: workers,
		slots:   semaphore.NewWeighted(int64(workers - 1)),
	}
}

// Workers 풀의 실행 단위 수
func (p *Pool) Workers() int {
	return p.workers
}

// Active 지금 슬롯을 잡고 실행 중인 포크된 태스크 수
func (p *Pool) Active() int64 {
	return p.active.Load()
}

// Stats 포크/인라인 실행 횟수
func (p *Pool) Stats() Stats {
	return Stats{
		Forked:  p.forked.Load(),
		Inlined: p.inlined.Load(),
	}
}

// Do left 를 태스크로 제출하고 right 는 현재 고루틴에서 실행한다.
// 두 함수가 모두 끝나야 반환한다.
func (p *Pool) Do(left, right func()) {
	g := p.Group()
	g.Go(left)
	right()
	g.Wait()
}

// Group 임의 개수 태스크를 제출하고 한꺼번에 기다리는 조인 지점
func (p *Pool) Group() *Group {
	return &Group{pool: p}
}

// acquire 슬롯 획득 시도. 실패하면 인라인 실행으로 집계한다.
func (p *Pool) acquire() bool {
	if !p.slots.TryAcquire(1) {
		p.inlined.Add(1)
		return false
	}
	p.forked.Add(1)
	p.active.Add(1)
	return true
}

func (p *Pool) release() {
	p.active.Add(-1)
	p.slots.Release(1)
}

// Group 은 같은 부모 호출에 속한 태스크들의 배리어다.
// Wait 가 반환한 뒤에는 Go 로 제출한 모든 태스크가 끝나 있다.
type Group struct {
	pool *Pool
	wg   sync.WaitGroup
}

// Go fn 을 태스크로 제출한다. 슬롯이 없으면 바로 실행하고 반환한다.
func (g *Group) Go(fn func()) {
	if !g.pool.acquire() {
		fn()
		return
	}

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer g.pool.release()
		fn()
	}()
}

// Wait 제출한 태스크가 모두 끝날 때까지 막는다.
func (g *Group) Wait() {
	g.wg.Wait()
}
