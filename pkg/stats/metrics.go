package stats

import "github.com/prometheus/client_golang/prometheus"

const namespace = "colosseum"

// Metrics collects the counters of the competition. All methods are safe to
// call on a nil *Metrics, in which case they do nothing.
type Metrics struct {
	registrations prometheus.Counter
	trades        *prometheus.CounterVec
	tradeFailures *prometheus.CounterVec
	priceUpdates  *prometheus.CounterVec
}

// NewMetrics creates the competition metrics and registers them with the given
// registerer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Number of participants registered.",
		}),
		trades: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trades_total",
			Help:      "Number of trades executed, by source and destination asset.",
		}, []string{"from", "to"}),
		tradeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trade_failures_total",
			Help:      "Number of rejected trades, by error category.",
		}, []string{"reason"}),
		priceUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_updates_total",
			Help:      "Number of price updates, by pair.",
		}, []string{"pair"}),
	}

	for _, c := range []prometheus.Collector{
		m.registrations, m.trades, m.tradeFailures, m.priceUpdates,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) ParticipantRegistered() {
	if m == nil {
		return
	}
	m.registrations.Inc()
}

func (m *Metrics) TradeExecuted(from, to string) {
	if m == nil {
		return
	}
	m.trades.WithLabelValues(from, to).Inc()
}

func (m *Metrics) TradeFailed(reason string) {
	if m == nil {
		return
	}
	m.tradeFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) PriceUpdated(pair string) {
	if m == nil {
		return
	}
	m.priceUpdates.WithLabelValues(pair).Inc()
}
