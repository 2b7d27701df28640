package bench

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// metrics 보고서를 담는 게이지 묶음
type metrics struct {
	registry  *prometheus.Registry
	avgMs     *prometheus.GaugeVec
	speedup   *prometheus.GaugeVec
	arraySize prometheus.Gauge
	tasks     *prometheus.GaugeVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		avgMs: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "qsort_avg_duration_ms",
			Help: "Average sort duration per stage in milliseconds.",
		}, []string{"engine", "workers"}),
		speedup: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "qsort_speedup_ratio",
			Help: "Sequential average divided by parallel average.",
		}, []string{"workers"}),
		arraySize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "qsort_array_size",
			Help: "Number of elements sorted per stage.",
		}),
		tasks: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "qsort_tasks",
			Help: "Fork-join tasks by placement during the parallel timing.",
		}, []string{"placement", "workers"}),
	}
	m.registry.MustRegister(m.avgMs, m.speedup, m.arraySize, m.tasks)
	return m
}

func (m *metrics) observe(r Report) {
	workers := strconv.Itoa(r.Workers)
	m.avgMs.WithLabelValues(r.Sequential.Engine, workers).Set(durationMs(r.Sequential.Average))
	m.avgMs.WithLabelValues(r.Parallel.Engine, workers).Set(durationMs(r.Parallel.Average))
	m.speedup.WithLabelValues(workers).Set(r.Speedup)
	m.arraySize.Set(float64(r.ArraySize))
	m.tasks.WithLabelValues("forked", workers).Set(float64(r.Tasks.Forked))
	m.tasks.WithLabelValues("inlined", workers).Set(float64(r.Tasks.Inlined))
}

// WriteMetrics node-exporter textfile 형식으로 메트릭을 쓴다.
// 같은 워커 수의 보고서가 여럿이면 마지막 값이 남는다.
func WriteMetrics(path string, reports ...Report) error {
	m := newMetrics()
	for _, r := range reports {
		m.observe(r)
	}
	return errors.Wrapf(prometheus.WriteToTextfile(path, m.registry), "write metrics to %s", path)
}
