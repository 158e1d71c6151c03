package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	core "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
)

// Namespace prefixes every metric name
const Namespace = "league"

// PrometheusMetrics records domain counters and HTTP metrics on a registerer
type PrometheusMetrics struct {
	joins          *prometheus.CounterVec
	walletRequests *prometheus.CounterVec
	moderations    *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// NewPrometheusMetrics registers the league collectors on registerer
func NewPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		joins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "joins_total",
			Help:      "Match join attempts, labeled by category and outcome",
		}, []string{"category", "outcome"}),

		walletRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "wallet_requests_total",
			Help:      "Deposit and withdraw requests, labeled by kind and outcome",
		}, []string{"kind", "outcome"}),

		moderations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "moderation_decisions_total",
			Help:      "Approve and reject calls, labeled by action and outcome",
		}, []string{"action", "outcome"}),

		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed, labeled by status code",
		}, []string{"method", "endpoint", "status"}),

		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency distribution of HTTP requests",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "endpoint"}),
	}
}

// ObserveJoin implements core.Metrics
func (m *PrometheusMetrics) ObserveJoin(category, outcome string) {
	m.joins.WithLabelValues(category, outcome).Inc()
}

// ObserveWalletRequest implements core.Metrics
func (m *PrometheusMetrics) ObserveWalletRequest(kind, outcome string) {
	m.walletRequests.WithLabelValues(kind, outcome).Inc()
}

// ObserveModeration implements core.Metrics
func (m *PrometheusMetrics) ObserveModeration(action, outcome string) {
	m.moderations.WithLabelValues(action, outcome).Inc()
}

// ObserveHTTP records one served request
func (m *PrometheusMetrics) ObserveHTTP(method, endpoint, status string, seconds float64) {
	m.httpRequests.WithLabelValues(method, endpoint, status).Inc()
	m.httpDuration.WithLabelValues(method, endpoint).Observe(seconds)
}

var _ core.Metrics = (*PrometheusMetrics)(nil)
