package metrics

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"auditionhub_backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registerOnce sync.Once

var (
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	auditionsCreated    *prometheus.CounterVec
	emailsIngested      *prometheus.CounterVec
	importRows          *prometheus.CounterVec
	paymentEvents       *prometheus.CounterVec
	workerRuns          *prometheus.CounterVec
)

func register[T prometheus.Collector](c T) T {
	if err := prometheus.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing
			}
		}
		logger.Warn("prometheus register failed", "error", err.Error())
	}
	return c
}

// Init registers every collector once; safe to call from each router setup.
func Init() {
	registerOnce.Do(func() {
		httpRequestsTotal = register(prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "auditionhub",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"method", "route", "status"}))

		httpRequestDuration = register(prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "auditionhub",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}))

		auditionsCreated = register(prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "auditionhub",
			Name:      "auditions_created_total",
			Help:      "Auditions created, by source.",
		}, []string{"source"}))

		emailsIngested = register(prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "auditionhub",
			Name:      "inbound_emails_total",
			Help:      "Inbound casting emails, by outcome.",
		}, []string{"status"}))

		importRows = register(prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "auditionhub",
			Name:      "import_rows_total",
			Help:      "Imported spreadsheet rows, by source and result.",
		}, []string{"source", "result"}))

		paymentEvents = register(prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "auditionhub",
			Name:      "payment_webhook_events_total",
			Help:      "Payment webhook events, by type.",
		}, []string{"type"}))

		workerRuns = register(prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "auditionhub",
			Name:      "worker_runs_total",
			Help:      "Background worker passes, by worker and result.",
		}, []string{"worker", "result"}))
	})
}

// Middleware records request count and latency keyed by the route template.
func Middleware() gin.HandlerFunc {
	Init()
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

func AuditionCreated(source string) {
	Init()
	auditionsCreated.WithLabelValues(source).Inc()
}

func EmailIngested(status string) {
	Init()
	emailsIngested.WithLabelValues(status).Inc()
}

func ImportRows(source string, imported, skipped int) {
	Init()
	importRows.WithLabelValues(source, "imported").Add(float64(imported))
	importRows.WithLabelValues(source, "skipped").Add(float64(skipped))
}

func PaymentEvent(eventType string) {
	Init()
	paymentEvents.WithLabelValues(eventType).Inc()
}

func WorkerRun(worker string, err error) {
	Init()
	result := "ok"
	if err != nil {
		result = "error"
	}
	workerRuns.WithLabelValues(worker, result).Inc()
}
