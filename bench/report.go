package bench

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"qsortbench/forkjoin"
)

// Timing 엔진 하나의 측정 결과
type Timing struct {
	Engine      string          `json:"engine" yaml:"engine"`
	Stages      []time.Duration `json:"stages" yaml:"stages"`
	Average     time.Duration   `json:"average" yaml:"average"`
	// MemoryUsage 정렬 호출 안에서 할당된 바이트. 입력 배열 생성은 빠진다.
	MemoryUsage uint64          `json:"memory_usage_bytes" yaml:"memory_usage_bytes"`
}

// Report 벤치마크 한 번의 결과
type Report struct {
	RunID      string         `json:"run_id" yaml:"run_id"`
	StartedAt  time.Time      `json:"started_at" yaml:"started_at"`
	Workers    int            `json:"workers" yaml:"workers"`
	PoolSize   int            `json:"pool_size" yaml:"pool_size"`
	ArraySize  int            `json:"array_size" yaml:"array_size"`
	Stages     int            `json:"stages" yaml:"stages"`
	Sequential Timing         `json:"sequential" yaml:"sequential"`
	Parallel   Timing         `json:"parallel" yaml:"parallel"`
	Speedup    float64        `json:"speedup" yaml:"speedup"`
	Tasks      forkjoin.Stats `json:"tasks" yaml:"tasks"`
}

// StatusLine 사람이 읽는 상태 줄 (stderr)
func (r Report) StatusLine() string {
	return fmt.Sprintf("Qsort avg time: %.1f ms\tArray size: %d\tWorkers: %d",
		durationMs(r.Parallel.Average), r.ArraySize, r.Workers)
}

// CSVLine 구조화된 결과 줄 (stdout): 워커 수, 병렬 평균 ms, 속도 향상
func (r Report) CSVLine() string {
	return fmt.Sprintf("%d, %.1f, %.3f", r.Workers, durationMs(r.Parallel.Average), r.Speedup)
}

// WriteJSON 보고서 목록을 들여쓰기 JSON 으로 쓴다.
func WriteJSON(w io.Writer, reports []Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(reports), "encode json report")
}

// WriteYAML 보고서 목록을 YAML 로 쓴다.
func WriteYAML(w io.Writer, reports []Report) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(reports); err != nil {
		return errors.Wrap(err, "encode yaml report")
	}
	return errors.Wrap(encoder.Close(), "close yaml encoder")
}

// WriteMarkdown 실행별 표와 워커 수별 평균 표를 쓴다.
func WriteMarkdown(w io.Writer, reports []Report) error {
	writer := bufio.NewWriterSize(w, 32*1024)

	var builder strings.Builder
	builder.WriteString("# 퀵소트 벤치마크 결과\n\n")

	builder.WriteString("| 실행 ID | 시작 시각 | 워커 수 | 배열 크기 | 스테이지 | 순차 평균 | 병렬 평균 | 속도 향상 |\n")
	builder.WriteString("|---------|-----------|---------|-----------|----------|-----------|-----------|-----------|\n")
	for _, r := range reports {
		builder.WriteString(fmt.Sprintf("| %s | %s | %d | %s | %d | %.1f ms | %.1f ms | %.3fx |\n",
			r.RunID, r.StartedAt.UTC().Format("2006-01-02 15:04:05"), r.Workers,
			humanize.Comma(int64(r.ArraySize)), r.Stages,
			durationMs(r.Sequential.Average), durationMs(r.Parallel.Average), r.Speedup))
	}
	builder.WriteString("\n")

	// 요약 통계
	builder.WriteString("## 요약 통계\n\n")
	builder.WriteString("| 워커 수 | 실행 횟수 | 평균 병렬 시간 | 평균 속도 향상 |\n")
	builder.WriteString("|---------|-----------|----------------|----------------|\n")

	byWorkers := make(map[int][]Report)
	for _, r := range reports {
		byWorkers[r.Workers] = append(byWorkers[r.Workers], r)
	}
	workers := make([]int, 0, len(byWorkers))
	for n := range byWorkers {
		workers = append(workers, n)
	}
	slices.Sort(workers)

	for _, n := range workers {
		group := byWorkers[n]
		var totalDuration time.Duration
		var totalSpeedup float64
		for _, r := range group {
			totalDuration += r.Parallel.Average
			totalSpeedup += r.Speedup
		}
		count := len(group)
		builder.WriteString(fmt.Sprintf("| %d | %d | %.1f ms | %.3fx |\n",
			n, count, durationMs(totalDuration/time.Duration(count)), totalSpeedup/float64(count)))
	}

	if _, err := writer.WriteString(builder.String()); err != nil {
		return errors.Wrap(err, "write markdown report")
	}
	return errors.Wrap(writer.Flush(), "flush markdown report")
}
