package monitoring

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Результаты обновления снимков для метки result
const (
	RefreshOK      = "ok"
	RefreshSkipped = "skipped"
	RefreshFailed  = "failed"
)

// Metrics хранит метрики Prometheus сервиса в собственном реестре.
// Все методы допускают nil-получатель, чтобы обработчики работали без метрик в тестах.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	aggregationsTotal    prometheus.Counter
	aggregatedPosts      prometheus.Histogram
	snapshotRefreshTotal *prometheus.CounterVec
}

// NewMetrics создаёт и регистрирует метрики с префиксом по имени сервиса
func NewMetrics(serviceName string) *Metrics {
	prefix := strings.ReplaceAll(serviceName, "-", "_")
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	m.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
	m.aggregationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: prefix + "_aggregations_total",
		Help: "Number of campaign analytics recomputations",
	})
	m.aggregatedPosts = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    prefix + "_aggregated_posts",
		Help:    "Posts per campaign analytics recomputation",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})
	m.snapshotRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_snapshot_refresh_total",
			Help: "Post snapshot refresh attempts by result",
		},
		[]string{"result"},
	)

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.aggregationsTotal,
		m.aggregatedPosts,
		m.snapshotRefreshTotal,
	)
	return m
}

// Middleware считает HTTP-запросы и их длительность
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

// Handler отдаёт метрики в формате Prometheus
func (m *Metrics) Handler() gin.HandlerFunc {
	handler := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		handler.ServeHTTP(c.Writer, c.Request)
	}
}

// ObserveAggregation фиксирует пересчёт аналитики кампании
func (m *Metrics) ObserveAggregation(posts int) {
	if m == nil {
		return
	}
	m.aggregationsTotal.Inc()
	m.aggregatedPosts.Observe(float64(posts))
}

// ObserveSnapshotRefresh фиксирует результат обновления снимка поста
func (m *Metrics) ObserveSnapshotRefresh(result string) {
	if m == nil {
		return
	}
	m.snapshotRefreshTotal.WithLabelValues(result).Inc()
}
