package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewPrometheusMetrics(registry)

	m.ObserveJoin("battle-royale", "joined")
	m.ObserveJoin("battle-royale", "joined")
	m.ObserveJoin("clash-squad", "slots_full")
	m.ObserveWalletRequest("withdraw", "created")
	m.ObserveModeration("approve", "absorbed")
	m.ObserveHTTP("POST", "/api/v1/matches/:id/join", "201", 0.02)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.joins.WithLabelValues("battle-royale", "joined")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.joins.WithLabelValues("clash-squad", "slots_full")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.walletRequests.WithLabelValues("withdraw", "created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.moderations.WithLabelValues("approve", "absorbed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "/api/v1/matches/:id/join", "201")))

	families, err := registry.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 5)
}

func TestPrometheusMetrics_DuplicateRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()
	NewPrometheusMetrics(registry)

	assert.Panics(t, func() { NewPrometheusMetrics(registry) })
}

func TestNoopMetrics(t *testing.T) {
	m := NewNoopMetrics()
	assert.NotPanics(t, func() {
		m.ObserveJoin("battle-royale", "joined")
		m.ObserveWalletRequest("deposit", "created")
		m.ObserveModeration("reject", "applied")
	})
}
