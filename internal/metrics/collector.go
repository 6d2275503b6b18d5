package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "extorsion"
	subsystem = "reports"
)

// Collector holds all metrics for the report intake service
type Collector struct {
	registry *prometheus.Registry

	// Intake
	reportsAccepted     prometheus.Counter
	reportsRejected     *prometheus.CounterVec
	allocationConflicts prometheus.Counter
	storeFailures       prometheus.Counter
	intakeDuration      prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewCollector registers every metric on a private registry, plus the Go
// runtime and process collectors.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,

		reportsAccepted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "accepted_total",
			Help:      "Total number of reports accepted and stored",
		}),
		reportsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "rejected_total",
			Help:      "Total number of reports rejected by validation",
		}, []string{"reason"}),
		allocationConflicts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "case_allocation_conflicts_total",
			Help:      "Total number of case number collisions on insert",
		}),
		storeFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "store_failures_total",
			Help:      "Total number of intake store errors other than collisions",
		}),
		intakeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "intake_duration_seconds",
			Help:      "Duration of successful report submissions",
			Buckets:   prometheus.DefBuckets,
		}),

		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (c *Collector) ReportAccepted(elapsed time.Duration) {
	c.reportsAccepted.Inc()
	c.intakeDuration.Observe(elapsed.Seconds())
}

func (c *Collector) ReportRejected(reason string) {
	c.reportsRejected.WithLabelValues(reason).Inc()
}

func (c *Collector) AllocationConflict() {
	c.allocationConflicts.Inc()
}

func (c *Collector) StoreFailure() {
	c.storeFailures.Inc()
}

// ObserveHTTP records one finished request. route is the matched pattern,
// never the raw path.
func (c *Collector) ObserveHTTP(method, route, status string, elapsed time.Duration) {
	c.httpRequests.WithLabelValues(method, route, status).Inc()
	c.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
