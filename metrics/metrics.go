package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector gathers request-level and booking-outcome metrics.
type Collector struct {
	registry         *prometheus.Registry
	requestsTotal    *prometheus.CounterVec
	requestDuration  prometheus.Histogram
	bookingsCreated  prometheus.Counter
	bookingsRejected prometheus.Counter
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "homerent_http_requests_total",
			Help: "HTTP requests by method and status code",
		}, []string{"method", "status_code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "homerent_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		bookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "homerent_bookings_created_total",
			Help: "Bookings written successfully",
		}),
		bookingsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "homerent_bookings_rejected_total",
			Help: "Booking requests rejected before a row was written",
		}),
	}

	c.registry.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.bookingsCreated,
		c.bookingsRejected,
	)

	return c
}

func (c *Collector) RecordBookingCreated() {
	c.bookingsCreated.Inc()
}

func (c *Collector) RecordBookingRejected() {
	c.bookingsRejected.Inc()
}

// Handler serves the scrape endpoint for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// Middleware records count and latency for every request.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		c.requestsTotal.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
		c.requestDuration.Observe(time.Since(start).Seconds())
	})
}
