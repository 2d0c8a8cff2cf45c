// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector registers and records the application metrics.
type Collector struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpLatency   prometheus.Histogram
	logins        prometheus.Counter
	registrations prometheus.Counter
	otpSent       prometheus.Counter
	otpSendFail   prometheus.Counter
	mergeConflict prometheus.Counter
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cartopia_http_requests_total",
			Help: "HTTP requests by path and status code",
		}, []string{"path", "status"}),
		httpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cartopia_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cartopia_logins_total",
			Help: "Successful user logins",
		}),
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cartopia_registrations_total",
			Help: "Successful user registrations",
		}),
		otpSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cartopia_otp_emails_sent_total",
			Help: "Password-reset OTP emails dispatched",
		}),
		otpSendFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cartopia_otp_email_failures_total",
			Help: "Password-reset OTP email dispatch failures",
		}),
		mergeConflict: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cartopia_cart_merge_conflicts_total",
			Help: "Version conflicts retried while persisting a cart merge",
		}),
	}

	registry.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.logins,
		c.registrations,
		c.otpSent,
		c.otpSendFail,
		c.mergeConflict,
	)

	return c
}

func (c *Collector) RecordLogin()         { c.logins.Inc() }
func (c *Collector) RecordRegistration()  { c.registrations.Inc() }
func (c *Collector) RecordOTPSent()       { c.otpSent.Inc() }
func (c *Collector) RecordOTPSendFail()   { c.otpSendFail.Inc() }
func (c *Collector) RecordMergeConflict() { c.mergeConflict.Inc() }

// Handler returns the /metrics endpoint handler.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Instrument wraps an HTTP handler, recording request counts and latency.
func (c *Collector) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		start := time.Now()
		next.ServeHTTP(rec, r)

		c.httpRequests.WithLabelValues(r.URL.Path, strconv.Itoa(rec.status)).Inc()
		c.httpLatency.Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
