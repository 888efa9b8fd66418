package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "goreceipts"

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Record metrics
	RecordsStored    prometheus.Gauge
	RecordOperations *prometheus.CounterVec
	RecordErrors     *prometheus.CounterVec

	// Print metrics
	ReceiptsPrinted prometheus.Counter
	PagesRendered   prometheus.Counter
	PrintDuration   prometheus.Histogram
	PrintErrors     *prometheus.CounterVec
	ExportsCreated  prometheus.Counter

	// Snapshot store metrics
	SnapshotOperations *prometheus.CounterVec
	SnapshotDuration   *prometheus.HistogramVec
	SnapshotErrors     *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates all metrics and registers them with reg. A nil reg uses the
// default Prometheus registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		// Record metrics
		RecordsStored: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_stored",
			Help:      "Current number of records in the list",
		}),
		RecordOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "record_operations_total",
				Help:      "Total record operations by type",
			},
			[]string{"operation"},
		),
		RecordErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "record_errors_total",
				Help:      "Total record operation errors by type",
			},
			[]string{"operation", "error_type"},
		),

		// Print metrics
		ReceiptsPrinted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "receipts_printed_total",
			Help:      "Total number of receipt blocks rendered",
		}),
		PagesRendered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_rendered_total",
			Help:      "Total number of document pages rendered",
		}),
		PrintDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "print_duration_seconds",
			Help:      "Duration of document composition and output",
			Buckets:   prometheus.DefBuckets,
		}),
		PrintErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "print_errors_total",
				Help:      "Total print errors by type",
			},
			[]string{"error_type"},
		),
		ExportsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_created_total",
			Help:      "Total number of spreadsheet exports",
		}),

		// Snapshot store metrics
		SnapshotOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "snapshot_operations_total",
				Help:      "Total snapshot store operations",
			},
			[]string{"backend", "operation"},
		),
		SnapshotDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "snapshot_duration_seconds",
				Help:      "Snapshot store operation duration",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"backend", "operation"},
		),
		SnapshotErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "snapshot_errors_total",
				Help:      "Total snapshot store errors",
			},
			[]string{"backend", "operation"},
		),

		// API metrics
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_duration_seconds",
				Help:      "HTTP request duration",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		}),

		// Rate limiting metrics
		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limit_hits_total",
				Help:      "Total rate limit hits",
			},
			[]string{"path"},
		),
	}
}
