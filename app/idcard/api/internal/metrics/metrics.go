package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	resultValid   = "valid"
	resultInvalid = "invalid"
)

// Collector 校验服务的 Prometheus 指标
// 每个实例持有独立的 Registry，同一进程内可创建多个（测试场景）
type Collector struct {
	registry *prometheus.Registry

	verifyTotal *prometheus.CounterVec
	batchTotal  prometheus.Counter
	batchSize   prometheus.Histogram
}

// NewCollector 创建指标收集器
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "idcard"
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		verifyTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "verify_total",
				Help:      "Total number of validated identity numbers",
			},
			[]string{"result", "reason"},
		),
		batchTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "batch_total",
				Help:      "Total number of batch validation requests",
			},
		),
		batchSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "batch_size",
				Help:      "Number of identity numbers per batch request",
				Buckets:   []float64{1, 5, 10, 20, 50, 100, 200, 500},
			},
		),
	}
}

// ObserveVerify 记录一次校验，reason 为空表示通过（标签记为 none）
func (c *Collector) ObserveVerify(reason string) {
	result := resultInvalid
	if reason == "" {
		result, reason = resultValid, "none"
	}
	c.verifyTotal.WithLabelValues(result, reason).Inc()
}

// ObserveBatch 记录一次批量请求
func (c *Collector) ObserveBatch(size int) {
	c.batchTotal.Inc()
	c.batchSize.Observe(float64(size))
}

// Handler /metrics 暴露接口
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
