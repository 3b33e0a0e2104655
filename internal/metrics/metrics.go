package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus metrics recorded during one CLI invocation.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// Game API metrics
	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec

	// Session metrics
	TokenRefreshesTotal prometheus.Counter
	RegistrationsTotal  prometheus.Counter

	// Round metrics
	RoundsTotal *prometheus.CounterVec
	ShotsTotal  *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		APIRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clawgolf_api_requests_total",
				Help: "Total number of game API requests by endpoint and status code",
			},
			[]string{"endpoint", "status"},
		),
		APIRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "clawgolf_api_request_duration_seconds",
				Help:    "Duration of game API requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),

		TokenRefreshesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "clawgolf_token_refreshes_total",
				Help: "Total number of session tokens issued",
			},
		),
		RegistrationsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "clawgolf_registrations_total",
				Help: "Total number of agent registrations",
			},
		),

		RoundsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clawgolf_rounds_total",
				Help: "Round lifecycle transitions by outcome (started, resumed, completed)",
			},
			[]string{"outcome"},
		),
		ShotsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clawgolf_shots_total",
				Help: "Total number of shots submitted by club",
			},
			[]string{"club"},
		),
	}

	m.registerMetrics()

	return m
}

func (m *Metrics) registerMetrics() {
	m.registry.MustRegister(m.APIRequestsTotal)
	m.registry.MustRegister(m.APIRequestDuration)
	m.registry.MustRegister(m.TokenRefreshesTotal)
	m.registry.MustRegister(m.RegistrationsTotal)
	m.registry.MustRegister(m.RoundsTotal)
	m.registry.MustRegister(m.ShotsTotal)
}

// ObserveRequest records one finished API request. A status of 0 means the
// request never got a response.
func (m *Metrics) ObserveRequest(endpoint string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := strconv.Itoa(status)
	if status == 0 {
		label = "error"
	}
	m.APIRequestsTotal.WithLabelValues(endpoint, label).Inc()
	m.APIRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// TokenRefreshed records a newly issued session token.
func (m *Metrics) TokenRefreshed() {
	if m == nil {
		return
	}
	m.TokenRefreshesTotal.Inc()
}

// Registered records a new agent registration.
func (m *Metrics) Registered() {
	if m == nil {
		return
	}
	m.RegistrationsTotal.Inc()
}

// RoundTransition records a round being started, resumed or completed.
func (m *Metrics) RoundTransition(outcome string) {
	if m == nil {
		return
	}
	m.RoundsTotal.WithLabelValues(outcome).Inc()
}

// ShotSubmitted records a shot with the given canonical club.
func (m *Metrics) ShotSubmitted(club string) {
	if m == nil {
		return
	}
	m.ShotsTotal.WithLabelValues(club).Inc()
}

// Registry returns the Prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the registry in the text exposition format for the
// node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
