package stats_test

import (
	"testing"

	"github.com/colosseum-network/colosseumd/pkg/stats"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := stats.NewMetrics(reg)
	require.NoError(t, err)

	m.ParticipantRegistered()
	m.ParticipantRegistered()
	m.TradeExecuted("fusd", "btc")
	m.TradeFailed("state error")
	m.PriceUpdated("btc/fusd")

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	require.Equal(t, 4, count)

	// Registering twice with the same registerer fails.
	_, err = stats.NewMetrics(reg)
	require.Error(t, err)
}

func TestNilMetrics(t *testing.T) {
	var m *stats.Metrics
	require.NotPanics(t, func() {
		m.ParticipantRegistered()
		m.TradeExecuted("fusd", "btc")
		m.TradeFailed("state error")
		m.PriceUpdated("btc/fusd")
	})
}
