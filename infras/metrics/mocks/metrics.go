package mocks

import (
	"net/http"
	"time"

	"daybooker/infras/metrics"
)

type metricsImpl struct {
}

// Handler implements metrics.Metrics.
func (m *metricsImpl) Handler() http.Handler {
	return http.NotFoundHandler()
}

// ObserveHTTP implements metrics.Metrics.
func (m *metricsImpl) ObserveHTTP(_, _ string, _ int, _ time.Duration) {

}

// TrackInFlight implements metrics.Metrics.
func (m *metricsImpl) TrackInFlight(_ float64) {

}

// BookingCreated implements metrics.Metrics.
func (m *metricsImpl) BookingCreated(_, _ string, _ int64) {

}

// BookingStatusChanged implements metrics.Metrics.
func (m *metricsImpl) BookingStatusChanged(_ string) {

}

// JobExecuted implements metrics.Metrics.
func (m *metricsImpl) JobExecuted(_ string, _ error, _ time.Duration) {

}

func NewMetrics() metrics.Metrics {
	return &metricsImpl{}
}
