package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"qsortbench/bench"
	"qsortbench/config"
	"qsortbench/forkjoin"
	"qsortbench/store"
)

// 보고서 파일 이름
const (
	reportJSON     = "benchmark_results.json"
	reportYAML     = "benchmark_results.yaml"
	reportMarkdown = "benchmark_results.md"
)

// NewRunCommand creates the run command: correctness check, sequential and
// parallel timings, then the status line on stderr and the CSV line on stdout.
func NewRunCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Benchmark parallel quicksort against sequential quicksort",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			return runBenchmark(cmd.Context(), cfg, opts.logger(cmd, cfg), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	config.BindFlags(cmd.Flags())
	config.BindStoreFlags(cmd.Flags())
	config.BindOutputFlags(cmd.Flags())

	return cmd
}

func newHarness(cfg config.Config, logger *slog.Logger) (*bench.Harness, error) {
	h, err := bench.NewHarness(bench.Options{
		ArraySize: cfg.Size,
		Stages:    cfg.Stages,
		Seed:      cfg.Seed,
		Workers:   cfg.Workers,
		Pool:      forkjoin.New(cfg.PoolSize),
		Logger:    logger,
	})
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "create harness", err)
	}
	return h, nil
}

// harnessError maps a harness failure to its exit code.
func harnessError(err error) error {
	var unsorted *bench.UnsortedError
	if errors.As(err, &unsorted) {
		return WrapExitError(ExitUnsorted, "qsort correctness check failed", err)
	}
	return WrapExitError(ExitFailure, "benchmark failed", err)
}

func runBenchmark(ctx context.Context, cfg config.Config, logger *slog.Logger, stdout, stderr io.Writer) (err error) {
	// 저장소는 측정 전에 열어서 설정 오류를 먼저 드러낸다.
	st, err := store.Open(cfg.Store, cfg.StorePath)
	if err != nil {
		return WrapExitError(ExitCommandError, "open store", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil && err == nil {
			err = WrapExitError(ExitFailure, "close store", cerr)
		}
	}()

	h, err := newHarness(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("benchmark starting",
		"size", cfg.Size,
		"stages", cfg.Stages,
		"workers", cfg.Workers,
		"pool_size", cfg.PoolSize,
	)
	report, err := h.Run(ctx)
	if err != nil {
		return harnessError(err)
	}

	fmt.Fprintln(stderr, report.StatusLine())
	fmt.Fprintln(stdout, report.CSVLine())

	if err := st.Put(ctx, report); err != nil {
		return WrapExitError(ExitFailure, "save run", err)
	}

	if cfg.ReportDir != "" {
		reports, err := st.List(ctx)
		if err != nil {
			return WrapExitError(ExitFailure, "list runs", err)
		}
		if len(reports) == 0 {
			reports = []bench.Report{report}
		}
		if err := writeReports(cfg.ReportDir, reports); err != nil {
			return WrapExitError(ExitFailure, "write reports", err)
		}
		logger.Info("reports written", "dir", cfg.ReportDir, "runs", len(reports))
	}

	if cfg.MetricsFile != "" {
		if err := bench.WriteMetrics(cfg.MetricsFile, report); err != nil {
			return WrapExitError(ExitFailure, "write metrics", err)
		}
		logger.Info("metrics written", "path", cfg.MetricsFile)
	}

	return nil
}

// writeReports JSON, YAML, 마크다운 보고서를 dir 에 쓴다.
func writeReports(dir string, reports []bench.Report) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "create %s", dir)
	}

	writers := []struct {
		name  string
		write func(io.Writer, []bench.Report) error
	}{
		{reportJSON, bench.WriteJSON},
		{reportYAML, bench.WriteYAML},
		{reportMarkdown, bench.WriteMarkdown},
	}
	for _, w := range writers {
		if err := writeFile(filepath.Join(dir, w.name), reports, w.write); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, reports []bench.Report, write func(io.Writer, []bench.Report) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()
	return write(file, reports)
}
