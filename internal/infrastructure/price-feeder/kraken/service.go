package krakenfeeder

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/colosseum-network/colosseumd/internal/core/ports"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const (
	// KrakenWebSocketURL is the base url to open a connection with kraken.
	// This can be tweaked if in the future it might change, even if unlikely.
	KrakenWebSocketURL = "wss://ws.kraken.com"
)

type service struct {
	url         string
	conn        *websocket.Conn
	writeTicker *time.Ticker
	lock        *sync.RWMutex
	chLock      *sync.Mutex
	connLock    *sync.Mutex
	closed      bool

	marketByTicker      map[string]ports.Market
	latestFeedsByTicker map[string]ports.PriceFeed
	feedChan            chan ports.PriceFeed
	quitChan            chan struct{}
}

// NewKrakenPriceFeeder returns a PriceFeeder that reads the last trade price of
// the subscribed markets from the kraken websocket ticker channel at the given
// url, and writes the latest price of every market to the feed channel once
// per interval.
func NewKrakenPriceFeeder(url string, interval time.Duration) (ports.PriceFeeder, error) {
	if url == "" {
		url = KrakenWebSocketURL
	}
	if interval <= 0 {
		return nil, fmt.Errorf("interval must be greater than zero")
	}

	return &service{
		url:                 url,
		writeTicker:         time.NewTicker(interval),
		lock:                &sync.RWMutex{},
		chLock:              &sync.Mutex{},
		connLock:            &sync.Mutex{},
		marketByTicker:      make(map[string]ports.Market),
		latestFeedsByTicker: make(map[string]ports.PriceFeed),
		feedChan:            make(chan ports.PriceFeed),
		quitChan:            make(chan struct{}, 1),
	}, nil
}

func (s *service) SubscribeMarkets(markets []ports.Market) error {
	mktTickers := make([]string, 0, len(markets))
	mktByTicker := make(map[string]ports.Market)
	for _, mkt := range markets {
		mktTickers = append(mktTickers, mkt.GetTicker())
		mktByTicker[mkt.GetTicker()] = mkt
	}

	conn, err := connectAndSubscribe(s.url, mktTickers)
	if err != nil {
		return err
	}

	s.setConn(conn)
	s.lock.Lock()
	s.marketByTicker = mktByTicker
	s.lock.Unlock()
	return nil
}

func (s *service) Start() error {
	if s.getConn() == nil {
		return fmt.Errorf("feeder must subscribe to markets before starting")
	}

	go func() {
		for range s.writeTicker.C {
			if !s.writeToFeedChan() {
				return
			}
		}
	}()

	mustReconnect, err := s.start()
	for mustReconnect {
		log.WithError(err).Warn("connection dropped unexpectedly. Trying to reconnect...")

		var conn *websocket.Conn
		conn, err = connectAndSubscribe(s.url, s.tickers())
		if err != nil {
			s.stop()
			return err
		}
		s.setConn(conn)

		log.Debug("connection and subscriptions re-established. Restarting...")
		mustReconnect, err = s.start()
	}

	return err
}

func (s *service) Stop() {
	s.quitChan <- struct{}{}
	if conn := s.getConn(); conn != nil {
		//nolint
		conn.Close()
	}
}

func (s *service) FeedChan() chan ports.PriceFeed {
	return s.feedChan
}

func (s *service) start() (mustReconnect bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			mustReconnect = true
			if e, ok := rec.(error); ok {
				err = e
			}
		}
	}()

	conn := s.getConn()
	for {
		select {
		case <-s.quitChan:
			s.stop()
			return false, nil
		default:
			// Referred to:
			//
			// https://support.kraken.com/hc/en-us/articles/360044504011-WebSocket-API-unexpected-disconnections-from-market-data-feeds
			//
			// Reading can either panic or return an error if the connection
			// drops. Both cases are recovered to signal that the connection
			// must be re-established, unless Stop was called meanwhile.
			_, message, err := conn.ReadMessage()
			if err != nil {
				select {
				case <-s.quitChan:
					s.stop()
					return false, nil
				default:
				}
				panic(err)
			}

			priceFeed := s.parseFeed(message)
			if priceFeed == nil {
				continue
			}

			s.writePriceFeed(priceFeed.GetMarket().GetTicker(), priceFeed)
		}
	}
}

func (s *service) stop() {
	s.writeTicker.Stop()
	s.closeChannels()
	if conn := s.getConn(); conn != nil {
		//nolint
		conn.Close()
	}
}

func (s *service) tickers() []string {
	s.lock.RLock()
	defer s.lock.RUnlock()

	tickers := make([]string, 0, len(s.marketByTicker))
	for ticker := range s.marketByTicker {
		tickers = append(tickers, ticker)
	}
	return tickers
}

func (s *service) readPriceFeeds() []ports.PriceFeed {
	s.lock.RLock()
	defer s.lock.RUnlock()

	feeds := make([]ports.PriceFeed, 0, len(s.latestFeedsByTicker))
	for _, priceFeed := range s.latestFeedsByTicker {
		feeds = append(feeds, priceFeed)
	}
	return feeds
}

func (s *service) writePriceFeed(mktTicker string, priceFeed ports.PriceFeed) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.latestFeedsByTicker[mktTicker] = priceFeed
}

// writeToFeedChan returns false once the feed channel is closed.
func (s *service) writeToFeedChan() bool {
	s.chLock.Lock()
	defer s.chLock.Unlock()

	if s.closed {
		return false
	}

	priceFeeds := s.readPriceFeeds()
	for _, priceFeed := range priceFeeds {
		s.feedChan <- priceFeed
	}
	return true
}

func (s *service) closeChannels() {
	s.chLock.Lock()
	defer s.chLock.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.feedChan)
}

func (s *service) getConn() *websocket.Conn {
	s.connLock.Lock()
	defer s.connLock.Unlock()
	return s.conn
}

func (s *service) setConn(conn *websocket.Conn) {
	s.connLock.Lock()
	defer s.connLock.Unlock()
	s.conn = conn
}

// parseFeed parses a ticker message like:
//
//	[channelID, {"c": ["<price>", "<lot volume>"], ...}, "ticker", "<pair>"]
func (s *service) parseFeed(msg []byte) ports.PriceFeed {
	var i []interface{}
	if err := json.Unmarshal(msg, &i); err != nil {
		return nil
	}
	if len(i) != 4 {
		return nil
	}

	ticker, ok := i[3].(string)
	if !ok {
		return nil
	}

	s.lock.RLock()
	mkt, ok := s.marketByTicker[ticker]
	s.lock.RUnlock()
	if !ok {
		return nil
	}

	ii, ok := i[1].(map[string]interface{})
	if !ok {
		return nil
	}

	iii, ok := ii["c"].([]interface{})
	if !ok {
		return nil
	}

	if len(iii) < 1 {
		return nil
	}
	priceStr, ok := iii[0].(string)
	if !ok {
		return nil
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil || !price.IsPositive() {
		return nil
	}

	return &priceFeed{
		market: mkt,
		price:  price,
	}
}

func connectAndSubscribe(url string, mktTickers []string) (*websocket.Conn, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}

	msg := map[string]interface{}{
		"event": "subscribe",
		"pair":  mktTickers,
		"subscription": map[string]string{
			"name": "ticker",
		},
	}

	buf, _ := json.Marshal(msg)
	if err := conn.WriteMessage(websocket.TextMessage, buf); err != nil {
		//nolint
		conn.Close()
		return nil, fmt.Errorf("cannot subscribe to given markets: %s", err)
	}

	return conn, nil
}
