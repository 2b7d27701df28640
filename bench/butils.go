// Package bench 퀵소트 벤치마크 하네스.
//
// 랜덤 배열 생성, 정렬 결과 검증, 워밍업 + 스테이지별 시간 측정,
// 결과 보고(stderr 상태 줄, stdout CSV 줄, JSON/YAML/마크다운, 메트릭)를 맡는다.
package bench

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"time"
)

// MaxValue 랜덤 원소의 상한
const MaxValue = math.MaxInt16

// NewRand 시드 기반 난수 생성기. seed 가 0 이면 현재 시각을 쓴다.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// RandomArray [0, 32767] 범위의 균등 분포 실수 배열
func RandomArray(rng *rand.Rand, size int) []float64 {
	data := make([]float64, size)
	for i := range data {
		data[i] = rng.Float64() * MaxValue
	}
	return data
}

// UnsortedError 정렬 검증 실패. 인접한 두 원소의 순서가 뒤집혀 있다.
type UnsortedError struct {
	Index int
	Left  float64
	Right float64
}

func (e *UnsortedError) Error() string {
	return fmt.Sprintf("array is not sorted: arr[%d]=%g > arr[%d]=%g", e.Index, e.Left, e.Index+1, e.Right)
}

// Verify 인접한 모든 쌍이 비감소인지 확인한다.
func Verify(arr []float64) error {
	for i := 0; i+1 < len(arr); i++ {
		if !(arr[i] <= arr[i+1]) {
			return &UnsortedError{Index: i, Left: arr[i], Right: arr[i+1]}
		}
	}
	return nil
}

// systemStats 메모리 측정 구간
type systemStats struct {
	startMem runtime.MemStats
	endMem   runtime.MemStats
}

// startStats GC 후 시작 시점 메모리 기록
func startStats() *systemStats {
	runtime.GC()

	s := &systemStats{}
	runtime.ReadMemStats(&s.startMem)
	return s
}

// endStats 구간 동안 새로 할당된 바이트 수
func (s *systemStats) endStats() uint64 {
	runtime.ReadMemStats(&s.endMem)
	return s.endMem.TotalAlloc - s.startMem.TotalAlloc
}

// durationMs time.Duration 을 밀리초 실수로
func durationMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
