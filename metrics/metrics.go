// Package metrics exposes Prometheus collectors for HTTP traffic and billing
// events.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hotel-backoffice/billing"
)

const namespace = "hotel_backoffice"

// Metrics owns a private registry; it satisfies billing.Recorder.
type Metrics struct {
	Registry *prometheus.Registry

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	billsOpened  prometheus.Counter
	staysClosed  *prometheus.CounterVec
	lineItems    *prometheus.CounterVec
	payments     *prometheus.CounterVec
	jobRuns      *prometheus.CounterVec
	overdueStays prometheus.Gauge
}

var _ billing.Recorder = (*Metrics)(nil)

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "path"}),
		billsOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "billing",
			Name:      "bills_opened_total",
			Help:      "Bills created.",
		}),
		staysClosed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "billing",
			Name:      "stays_closed_total",
			Help:      "Checkouts, split by late checkout.",
		}, []string{"late"}),
		lineItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "billing",
			Name:      "line_items_total",
			Help:      "Line items added, by type.",
		}, []string{"type"}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "billing",
			Name:      "payments_total",
			Help:      "Payments recorded, by method.",
		}, []string{"method"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "runs_total",
			Help:      "Scheduled job runs.",
		}, []string{"job", "success"}),
		overdueStays: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "stays",
			Name:      "overdue",
			Help:      "Open stays past their expected checkout at the last sweep.",
		}),
	}
	m.Registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.billsOpened,
		m.staysClosed,
		m.lineItems,
		m.payments,
		m.jobRuns,
		m.overdueStays,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency keyed by the route pattern.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) BillOpened() { m.billsOpened.Inc() }

func (m *Metrics) StayClosed(late bool) {
	m.staysClosed.WithLabelValues(strconv.FormatBool(late)).Inc()
}

func (m *Metrics) LineItemAdded(t billing.ItemType) {
	m.lineItems.WithLabelValues(string(t)).Inc()
}

func (m *Metrics) PaymentRecorded(method string) {
	m.payments.WithLabelValues(method).Inc()
}

func (m *Metrics) JobRun(job string, err error) {
	m.jobRuns.WithLabelValues(job, strconv.FormatBool(err == nil)).Inc()
}

func (m *Metrics) SetOverdueStays(n int) {
	m.overdueStays.Set(float64(n))
}
