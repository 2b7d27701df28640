package sort

import "qsortbench/forkjoin"

// ParallelQuickSort 포크-조인 퀵소트.
// 재귀마다 왼쪽 구간은 pool 에 태스크로 내놓고 오른쪽 구간은 현재 고루틴에서 정렬한다.
// 두 구간이 모두 끝난 뒤에만 반환한다. pool 이 nil 이면 전역 풀을 쓴다.
func ParallelQuickSort(pool *forkjoin.Pool, arr []float64, l, r int) {
	if pool == nil {
		pool = forkjoin.Default()
	}
	quickSort(pool, arr, l, r)
}
