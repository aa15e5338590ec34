// Package metrics 提供基于Prometheus的指标收集
//
// # 指标类型
//
//   - Counter（计数器）：只增不减，如请求总数、图书变更次数
//   - Gauge（仪表盘）：可增可减，如正在处理的请求数
//   - Histogram（直方图）：观测值分布，如请求耗时
//
// # 使用示例
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(metrics.Handler()))
//
//	metrics.IncCounterVec(metrics.BookMutationsTotal, map[string]string{
//	    "action": "create",
//	    "result": "success",
//	})
//
// # 命名规范
//
// Counter以`_total`结尾，Histogram以单位结尾（`_seconds`）。
// 标签只使用有限取值的维度（method、status、action），不要使用book_id之类的高基数字段。
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板，如/api/books/:id）、status（200/404）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 业务指标

	// BookMutationsTotal 图书变更总数（Counter）
	// 标签：action（create/update/delete）、result（success/failure）
	BookMutationsTotal *prometheus.CounterVec

	// BookListDuration 图书列表查询耗时（Histogram，包含列表与计数两次查询）
	BookListDuration prometheus.Histogram

	// 消息队列指标

	// BookEventsPublishedTotal 图书事件发布总数（Counter）
	// 标签：routing_key（book.created等）、result（success/failure/rejected）
	BookEventsPublishedTotal *prometheus.CounterVec

	// BookEventsBreakerState 事件发布熔断器状态（Gauge，0关闭 1打开 2半开）
	BookEventsBreakerState prometheus.Gauge
)

// InitMetrics 初始化所有Prometheus指标
// 可重复调用，只有第一次生效（promauto注册到默认Registry，重复注册会panic）
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP请求耗时（秒）",
				// 1ms、10ms、100ms、500ms、1s、5s、10s
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		BookMutationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "books_mutations_total",
				Help: "图书变更总数",
			},
			[]string{"action", "result"},
		)

		BookListDuration = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "book_list_duration_seconds",
				Help:    "图书列表查询耗时（秒）",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		)

		BookEventsPublishedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "book_events_published_total",
				Help: "图书事件发布总数",
			},
			[]string{"routing_key", "result"},
		)

		BookEventsBreakerState = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "book_events_breaker_state",
				Help: "事件发布熔断器状态（0关闭 1打开 2半开）",
			},
		)
	})
}

// Handler 返回/metrics端点的HTTP处理器
func Handler() http.Handler {
	return promhttp.Handler()
}

// ResultLabel 根据错误返回result标签值
func ResultLabel(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	if counter == nil {
		return
	}
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
// 未调用InitMetrics时为空操作
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Dec()
}

// SetGauge 设置Gauge
func SetGauge(gauge prometheus.Gauge, value float64) {
	if gauge == nil {
		return
	}
	gauge.Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	if histogram == nil {
		return
	}
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	if histogram == nil {
		return
	}
	histogram.With(labels).Observe(value)
}
