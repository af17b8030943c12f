package krakenfeeder_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/colosseum-network/colosseumd/internal/core/ports"
	krakenfeeder "github.com/colosseum-network/colosseumd/internal/infrastructure/price-feeder/kraken"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	interval = 100 * time.Millisecond
	markets  = []ports.Market{
		krakenfeeder.NewMarket("btc", "fusd", "XBT/USD"),
		krakenfeeder.NewMarket("eth", "fusd", "ETH/USD"),
	}
	prices = map[string]string{
		"XBT/USD": "50000.1",
		"ETH/USD": "2500",
	}
)

func TestService(t *testing.T) {
	server := newTestWebSocketServer(t)

	feederSvc, err := krakenfeeder.NewKrakenPriceFeeder(server.URL, interval)
	require.NoError(t, err)

	err = feederSvc.SubscribeMarkets(markets)
	require.NoError(t, err)

	errChan := make(chan error, 1)
	go func() {
		errChan <- feederSvc.Start()
	}()

	go func() {
		time.Sleep(time.Second)
		feederSvc.Stop()
	}()

	count := 0
	for priceFeed := range feederSvc.FeedChan() {
		count++
		mkt := priceFeed.GetMarket()
		require.NotNil(t, mkt)
		require.NotEmpty(t, mkt.GetBaseAsset())
		require.Equal(t, "fusd", mkt.GetQuoteAsset())

		expectedPrice := decimal.RequireFromString(prices[mkt.GetTicker()])
		require.True(t, expectedPrice.Equal(priceFeed.GetPrice()))
	}
	require.Greater(t, count, 0)
	require.NoError(t, <-errChan)
}

func TestFailingNewKrakenPriceFeeder(t *testing.T) {
	_, err := krakenfeeder.NewKrakenPriceFeeder("", 0)
	require.Error(t, err)
}

// newTestWebSocketServer mimics the kraken ticker channel: after the
// subscription message, it keeps sending a ticker update for every pair along
// with some heartbeat messages that must be ignored.
func newTestWebSocketServer(t *testing.T) *httptest.Server {
	upgrader := websocket.Upgrader{}

	handler := func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		var sub struct {
			Event string   `json:"event"`
			Pair  []string `json:"pair"`
		}
		if err := conn.ReadJSON(&sub); err != nil || sub.Event != "subscribe" {
			return
		}

		for i := 0; ; i++ {
			msg := []byte(`{"event":"heartbeat"}`)
			if i%3 != 0 {
				pair := sub.Pair[i%len(sub.Pair)]
				msg, _ = json.Marshal([]interface{}{
					i, map[string]interface{}{
						"c": []string{prices[pair], "0.1"},
					},
					"ticker", pair,
				})
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
	}

	server := httptest.NewServer(http.HandlerFunc(handler))
	server.URL = fmt.Sprintf("ws%s", strings.TrimPrefix(server.URL, "http"))
	t.Cleanup(server.Close)
	return server
}
