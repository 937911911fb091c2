package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Catalog Prometheus metrics.
var (
	CatalogDocuments = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docshelf",
			Subsystem: "catalog",
			Name:      "documents",
			Help:      "Number of documents in the catalog index",
		},
	)

	CatalogLoadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "docshelf",
			Subsystem: "catalog",
			Name:      "load_duration_seconds",
			Help:      "Catalog index build duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	CatalogLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docshelf",
			Subsystem: "catalog",
			Name:      "loads_total",
			Help:      "Catalog index builds by outcome",
		},
		[]string{"status"},
	)

	CatalogQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docshelf",
			Subsystem: "catalog",
			Name:      "queries_total",
			Help:      "Catalog queries by kind",
		},
		[]string{"kind"},
	)

	CatalogQueryResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docshelf",
			Subsystem: "catalog",
			Name:      "query_results",
			Help:      "Number of documents returned per catalog query",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
		[]string{"kind"},
	)
)

var catalogMetricsRegistered bool

// RegisterCatalogMetrics registers catalog metrics. Must be called once from main.
func RegisterCatalogMetrics() {
	if catalogMetricsRegistered {
		return
	}
	prometheus.MustRegister(
		CatalogDocuments,
		CatalogLoadDuration,
		CatalogLoadsTotal,
		CatalogQueriesTotal,
		CatalogQueryResults,
	)
	catalogMetricsRegistered = true
}

// CatalogRecorder feeds catalog metrics; it satisfies usecase/catalog.Recorder.
type CatalogRecorder struct{}

// IndexBuilt records one index build.
func (CatalogRecorder) IndexBuilt(documents int, duration time.Duration, err error) {
	CatalogLoadDuration.Observe(duration.Seconds())
	if err != nil {
		CatalogLoadsTotal.WithLabelValues("error").Inc()
		return
	}
	CatalogLoadsTotal.WithLabelValues("ok").Inc()
	CatalogDocuments.Set(float64(documents))
}

// Queried records one query and its result size.
func (CatalogRecorder) Queried(kind string, results int) {
	CatalogQueriesTotal.WithLabelValues(kind).Inc()
	CatalogQueryResults.WithLabelValues(kind).Observe(float64(results))
}
