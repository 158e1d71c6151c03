package metrics

import core "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"

// NoopMetrics discards every observation
type NoopMetrics struct{}

// NewNoopMetrics returns metrics that record nothing
func NewNoopMetrics() core.Metrics {
	return NoopMetrics{}
}

func (NoopMetrics) ObserveJoin(string, string)                  {}
func (NoopMetrics) ObserveWalletRequest(string, string)         {}
func (NoopMetrics) ObserveModeration(string, string)            {}
func (NoopMetrics) ObserveHTTP(string, string, string, float64) {}
