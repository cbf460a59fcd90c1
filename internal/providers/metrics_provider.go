package providers

import (
	"probpick/internal/structures"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(op string, duration time.Duration)
	SetHistorySize(count int)
	IncSelections(tier, outcome string)
	IncCatalogRequests(kind string, status int)
	ObserveCatalogDuration(kind string, duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration *prometheus.HistogramVec
	historySize         prometheus.Gauge
	selectionsTotal     *prometheus.CounterVec
	catalogRequests     *prometheus.CounterVec
	catalogDuration     *prometheus.HistogramVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(op string, duration time.Duration) {
	m.persistenceDuration.WithLabelValues(op).Observe(duration.Seconds())
}

func (m *MetricsProvider) SetHistorySize(count int) {
	m.historySize.Set(float64(count))
}

func (m *MetricsProvider) IncSelections(tier, outcome string) {
	m.selectionsTotal.WithLabelValues(tier, outcome).Inc()
}

// IncCatalogRequests counts catalog calls; status 0 means no response was received.
func (m *MetricsProvider) IncCatalogRequests(kind string, status int) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.catalogRequests.WithLabelValues(kind, label).Inc()
}

func (m *MetricsProvider) ObserveCatalogDuration(kind string, duration time.Duration) {
	m.catalogDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}
	return newMetricsProvider(prometheus.DefaultRegisterer)
}

func newMetricsProvider(reg prometheus.Registerer) *MetricsProvider {
	factory := promauto.With(reg)

	return &MetricsProvider{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "probpick_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "probpick_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "probpick_cache_hits_total",
			Help: "Total number of solved-set cache hits",
		}),

		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "probpick_cache_misses_total",
			Help: "Total number of solved-set cache misses",
		}),

		persistenceDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "probpick_persistence_duration_seconds",
			Help:    "Duration of history store operations in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),

		historySize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "probpick_history_size",
			Help: "Number of problems in the selection history",
		}),

		selectionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "probpick_selections_total",
			Help: "Selection attempts by tier and outcome",
		}, []string{"tier", "outcome"}),

		catalogRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "probpick_catalog_requests_total",
			Help: "Catalog page requests by kind and response status",
		}, []string{"kind", "status"}),

		catalogDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "probpick_catalog_request_duration_seconds",
			Help:    "Catalog page request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
	}
}

// noopMetrics is used when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                     {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)     {}
func (n *noopMetrics) IncCacheHits()                                        {}
func (n *noopMetrics) IncCacheMisses()                                      {}
func (n *noopMetrics) ObservePersistenceDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) SetHistorySize(_ int)                                 {}
func (n *noopMetrics) IncSelections(_, _ string)                            {}
func (n *noopMetrics) IncCatalogRequests(_ string, _ int)                   {}
func (n *noopMetrics) ObserveCatalogDuration(_ string, _ time.Duration)     {}
