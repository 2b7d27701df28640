package sort

import "qsortbench/forkjoin"

// Sorter 정렬 진입점 설정. Parallel 이 거짓이면 순차 엔진을 쓰고
// Pool 이 nil 이면 전역 풀을 쓴다.
type Sorter struct {
	Pool     *forkjoin.Pool
	Parallel bool
}

// Sort arr 의 [l, r] 구간을 제자리 정렬한다. l >= r 이면 아무것도 하지 않는다.
func (s Sorter) Sort(arr []float64, l, r int) {
	if !s.Parallel {
		QuickSort(arr, l, r)
		return
	}
	ParallelQuickSort(s.Pool, arr, l, r)
}

// Engine 결과 보고용 엔진 이름
func (s Sorter) Engine() string {
	if s.Parallel {
		return EngineParallel
	}
	return EngineSequential
}

// 엔진 이름
const (
	EngineSequential = "sequential"
	EngineParallel   = "parallel"
)

// Sort 기본 진입점. parallel 을 생략하면 전역 풀로 병렬 정렬하고
// false 를 넘기면 순차로 정렬한다.
func Sort(arr []float64, l, r int, parallel ...bool) {
	useParallel := true
	if len(parallel) > 0 {
		useParallel = parallel[0]
	}
	Sorter{Parallel: useParallel}.Sort(arr, l, r)
}
