package metrics

import (
	"net/http"
	"strconv"
	"time"

	"daybooker/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Metrics interface {
	Handler() http.Handler
	ObserveHTTP(method, route string, status int, duration time.Duration)
	TrackInFlight(delta float64)
	BookingCreated(hotelID, status string, totalCents int64)
	BookingStatusChanged(status string)
	JobExecuted(job string, err error, duration time.Duration)
}

type metricsImpl struct {
	registry *prometheus.Registry

	httpInFlight  prometheus.Gauge
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	bookings      *prometheus.CounterVec
	bookingAmount *prometheus.CounterVec
	statusChanges *prometheus.CounterVec
	jobRuns       *prometheus.CounterVec
	jobDuration   *prometheus.HistogramVec
}

func New(cfg *config.Config) Metrics {
	namespace := cfg.Metrics.Namespace

	m := &metricsImpl{
		registry: prometheus.NewRegistry(),
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
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "route"}),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "created_total",
			Help:      "Bookings created, by initial status.",
		}, []string{"status"}),
		bookingAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "gross_amount_cents_total",
			Help:      "Gross booking amount in minor currency units.",
		}, []string{"hotel_id"}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "status_changes_total",
			Help:      "Booking status transitions, by target status.",
		}, []string{"status"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "runs_total",
			Help:      "Scheduled job executions.",
		}, []string{"job", "success"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "duration_seconds",
			Help:      "Duration of scheduled job executions.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}, []string{"job"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.bookings,
		m.bookingAmount,
		m.statusChanges,
		m.jobRuns,
		m.jobDuration,
	)

	log.Info().Str("namespace", namespace).Msg("Prometheus metrics registered")

	return m
}

func (m *metricsImpl) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *metricsImpl) ObserveHTTP(method, route string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *metricsImpl) TrackInFlight(delta float64) {
	m.httpInFlight.Add(delta)
}

func (m *metricsImpl) BookingCreated(hotelID, status string, totalCents int64) {
	m.bookings.WithLabelValues(status).Inc()
	m.bookingAmount.WithLabelValues(hotelID).Add(float64(totalCents))
}

func (m *metricsImpl) BookingStatusChanged(status string) {
	m.statusChanges.WithLabelValues(status).Inc()
}

func (m *metricsImpl) JobExecuted(job string, err error, duration time.Duration) {
	m.jobRuns.WithLabelValues(job, strconv.FormatBool(err == nil)).Inc()
	m.jobDuration.WithLabelValues(job).Observe(duration.Seconds())
}
