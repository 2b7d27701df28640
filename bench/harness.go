package bench

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"qsortbench/forkjoin"
	qsort "qsortbench/sort"
)

// Options 하네스 설정
type Options struct {
	ArraySize int
	Stages    int
	Seed      int64
	// Workers 보고용 워커 수. 스케줄러 크기는 Pool 이 정한다.
	Workers int
	Pool    *forkjoin.Pool
	Logger  *slog.Logger
}

// Harness 정렬 엔진 시간 측정기
type Harness struct {
	opts   Options
	rng    *rand.Rand
	logger *slog.Logger
	now    func() time.Time
}

// NewHarness 하네스 생성. Pool 이 없으면 전역 풀, Logger 가 없으면 로그를 버린다.
func NewHarness(opts Options) (*Harness, error) {
	if opts.ArraySize <= 0 {
		return nil, errors.Newf("array size must be positive, got %d", opts.ArraySize)
	}
	if opts.Stages <= 0 {
		return nil, errors.Newf("stages must be positive, got %d", opts.Stages)
	}
	if opts.Pool == nil {
		opts.Pool = forkjoin.Default()
	}
	if opts.Workers <= 0 {
		opts.Workers = opts.Pool.Workers()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Harness{
		opts:   opts,
		rng:    NewRand(opts.Seed),
		logger: logger,
		now:    time.Now,
	}, nil
}

// sorter 엔진 선택
func (h *Harness) sorter(parallel bool) qsort.Sorter {
	return qsort.Sorter{Pool: h.opts.Pool, Parallel: parallel}
}

// CheckCorrectness 배열 하나를 병렬 엔진으로 정렬하고 검증한다.
// 실패는 *UnsortedError 로 돌려주며 호출자는 이를 치명적 오류로 다룬다.
func (h *Harness) CheckCorrectness(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	arr := RandomArray(h.rng, h.opts.ArraySize)
	h.sorter(true).Sort(arr, 0, len(arr)-1)
	if err := Verify(arr); err != nil {
		return err
	}

	h.logger.Info("Qsort correctness check passed.", "size", h.opts.ArraySize)
	return nil
}

// TimeSort 워밍업 1회 후 Stages 번 정렬 시간을 잰다.
// * 매 스테이지마다 새 배열을 만들며 생성 시간과 할당은 측정에서 뺀다.
// * MemoryUsage 는 정렬 호출 동안 새로 할당된 바이트의 스테이지 합이다.
// * ctx 는 스테이지 사이에서만 확인한다. 정렬 자체는 끝까지 돈다.
func (h *Harness) TimeSort(ctx context.Context, parallel bool) (Timing, error) {
	sorter := h.sorter(parallel)
	size := h.opts.ArraySize

	timing := Timing{
		Engine: sorter.Engine(),
		Stages: make([]time.Duration, 0, h.opts.Stages),
	}

	// 워밍업
	warm := RandomArray(h.rng, size)
	sorter.Sort(warm, 0, size-1)
	h.logger.Debug("warm-up done", "engine", timing.Engine)

	var total time.Duration
	for stage := 1; stage <= h.opts.Stages; stage++ {
		if err := ctx.Err(); err != nil {
			return Timing{}, errors.Wrapf(err, "%s timing interrupted at stage %d", timing.Engine, stage)
		}

		arr := RandomArray(h.rng, size)

		stats := startStats()
		start := time.Now()
		sorter.Sort(arr, 0, size-1)
		elapsed := time.Since(start)
		timing.MemoryUsage += stats.endStats()

		timing.Stages = append(timing.Stages, elapsed)
		total += elapsed
		h.logger.Debug("stage done",
			"engine", timing.Engine,
			"stage", stage,
			"ms", durationMs(elapsed),
		)
	}
	timing.Average = total / time.Duration(h.opts.Stages)

	return timing, nil
}

// Run 정확성 검사, 순차 측정, 병렬 측정을 차례로 돌려 보고서를 만든다.
func (h *Harness) Run(ctx context.Context) (Report, error) {
	report := Report{
		RunID:     uuid.NewString(),
		StartedAt: h.now().UTC(),
		Workers:   h.opts.Workers,
		PoolSize:  h.opts.Pool.Workers(),
		ArraySize: h.opts.ArraySize,
		Stages:    h.opts.Stages,
	}

	if err := h.CheckCorrectness(ctx); err != nil {
		return Report{}, err
	}

	seq, err := h.TimeSort(ctx, false)
	if err != nil {
		return Report{}, err
	}

	before := h.opts.Pool.Stats()
	par, err := h.TimeSort(ctx, true)
	if err != nil {
		return Report{}, err
	}
	after := h.opts.Pool.Stats()

	report.Sequential = seq
	report.Parallel = par
	report.Tasks = forkjoin.Stats{
		Forked:  after.Forked - before.Forked,
		Inlined: after.Inlined - before.Inlined,
	}
	report.Speedup = speedup(seq.Average, par.Average)

	h.logger.Info("benchmark finished",
		"run_id", report.RunID,
		"sequential_ms", durationMs(seq.Average),
		"parallel_ms", durationMs(par.Average),
		"speedup", report.Speedup,
		"forked", report.Tasks.Forked,
		"inlined", report.Tasks.Inlined,
	)
	return report, nil
}

func speedup(sequential, parallel time.Duration) float64 {
	if parallel <= 0 {
		return 0
	}
	return float64(sequential) / float64(parallel)
}
