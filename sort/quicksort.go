// Package sort 순차/병렬 퀵소트 엔진.
//
// 두 엔진 모두 []float64 를 제자리에서 정렬하며 구간은 양 끝을 포함하는
// [l, r] 인덱스로 넘긴다. 파티션 후 두 하위 구간 [l, p], [p+1, r] 은 서로
// 겹치지 않으므로 병렬 엔진의 두 분기는 배열에 대한 잠금 없이 동시에 돈다.
package sort

import (
	"math"

	"qsortbench/forkjoin"
)

// QuickSort 순차 퀵소트. 호출한 고루틴에서만 돈다.
func QuickSort(arr []float64, l, r int) {
	quickSort(nil, arr, l, r)
}

// quickSort 재귀 본체. pool 이 nil 이면 순차로, 아니면 왼쪽 분기를 태스크로 내놓는다.
func quickSort(pool *forkjoin.Pool, arr []float64, l, r int) {
	if l >= r {
		return
	}

	p := Partition(arr, l, r)
	if p >= r {
		// 교환 없이 끝난 경우: [l, r-1] 은 모두 pivot 미만이라 arr[r] 가 구간 최댓값이다.
		quickSort(pool, arr, l, r-1)
		return
	}

	if pool == nil {
		quickSort(nil, arr, l, p)
		quickSort(nil, arr, p+1, r)
		return
	}

	pool.Do(
		func() { quickSort(pool, arr, l, p) },
		func() { quickSort(pool, arr, p+1, r) },
	)
}

// Partition 호어 파티션. [l, r] 를 재배치하고 분할 지점 p 를 돌려준다.
// 반환 후 [l, p] 의 원소는 pivot 이하, [p+1, r] 의 원소는 pivot 이상이다.
// * pivot 은 양 끝값의 중간값(midpoint 참고)으로 배열에 없는 값일 수 있다.
// * 정렬된 입력이나 적대적 입력에서는 분할이 치우쳐 O(n²) 까지 갈 수 있다.
// * 인접한 두 부동소수 끝값에서는 pivot 이 arr[r] 로 반올림되어 p == r 이 나올 수 있다.
func Partition(arr []float64, l, r int) int {
	pivot := midpoint(arr[l], arr[r])

	for l <= r {
		for arr[l] < pivot {
			l++
		}
		for arr[r] > pivot {
			r--
		}
		if l >= r {
			break
		}
		arr[l], arr[r] = arr[r], arr[l]
		l++
		r--
	}
	return r
}

// midpoint (a + b) / 2. 결과는 항상 a 와 b 사이에 있다.
// * 유한한 두 값의 합이 넘치면 a/2 + b/2 로 계산한다.
// * -Inf 와 +Inf 처럼 NaN 이 나오면 a 를 쓴다.
func midpoint(a, b float64) float64 {
	m := (a + b) / 2
	if math.IsInf(m, 0) && !math.IsInf(a, 0) && !math.IsInf(b, 0) {
		m = a/2 + b/2
	}
	if math.IsNaN(m) {
		return a
	}
	return m
}
