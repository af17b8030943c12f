package oracle_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/colosseum-network/colosseumd/internal/core/application/oracle"
	"github.com/colosseum-network/colosseumd/internal/core/domain"
	"github.com/colosseum-network/colosseumd/internal/core/ports"
	"github.com/colosseum-network/colosseumd/internal/infrastructure/storage/db/inmemory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	ctx = context.Background()
	t0  = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
)

func TestSetPrice(t *testing.T) {
	t.Parallel()

	clock := &mockClock{now: t0.Add(500 * time.Millisecond)}
	svc := newTestService(t, clock)

	price, err := svc.SetPrice(ctx, "btc", "fusd", decimal.NewFromInt(2))
	require.NoError(t, err)
	require.Equal(t, t0, price.ObservedAt)

	clock.set(t0.Add(time.Hour))
	_, err = svc.SetPrice(ctx, "btc", "fusd", decimal.NewFromInt(3))
	require.NoError(t, err)

	price, err = svc.GetPrice(ctx, "btc", "fusd")
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(3).Equal(price.Value))
	require.Equal(t, t0.Add(time.Hour), price.ObservedAt)

	// Prices are never auto-inverted.
	_, err = svc.GetPrice(ctx, "fusd", "btc")
	require.ErrorIs(t, err, domain.ErrPriceNotFound)
	require.ErrorIs(t, err, domain.ErrNotFound)

	prices, err := svc.ListPrices(ctx)
	require.NoError(t, err)
	require.Len(t, prices, 1)
}

func TestFailingSetPrice(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &mockClock{now: t0})

	_, err := svc.SetPrice(ctx, "btc", "fusd", decimal.NewFromInt(2))
	require.NoError(t, err)

	tests := []struct {
		name          string
		base          string
		quote         string
		value         decimal.Decimal
		expectedError error
	}{
		{"zero_price", "btc", "fusd", decimal.Zero, domain.ErrPriceInvalidValue},
		{"negative_price", "btc", "fusd", decimal.NewFromInt(-1), domain.ErrPriceInvalidValue},
		{"empty_base", "", "fusd", decimal.NewFromInt(1), domain.ErrPriceInvalidPair},
		{"same_assets", "fusd", "fusd", decimal.NewFromInt(1), domain.ErrPriceInvalidPair},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SetPrice(ctx, tt.base, tt.quote, tt.value)
			require.ErrorIs(t, err, tt.expectedError)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	// Failures leave the stored price untouched.
	price, err := svc.GetPrice(ctx, "btc", "fusd")
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(2).Equal(price.Value))
}

func TestPriceFeed(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &mockClock{now: t0})

	feeder := newMockFeeder()
	markets := []ports.Market{
		mockMarket{"btc", "fusd", "XBT/USD"},
		mockMarket{"eth", "fusd", "ETH/USD"},
	}

	err := svc.StartFeed(feeder, nil, 10)
	require.Error(t, err)

	err = svc.StartFeed(feeder, markets, 100)
	require.NoError(t, err)
	require.Equal(t, markets, feeder.markets)

	err = svc.StartFeed(feeder, markets, 100)
	require.Error(t, err)

	feeder.feedChan <- mockPriceFeed{markets[0], decimal.NewFromInt(50000)}
	feeder.feedChan <- mockPriceFeed{markets[1], decimal.NewFromInt(2500)}
	// Invalid feeds are skipped.
	feeder.feedChan <- mockPriceFeed{markets[1], decimal.Zero}
	feeder.feedChan <- mockPriceFeed{markets[0], decimal.NewFromInt(51000)}

	svc.StopFeed()

	price, err := svc.GetPrice(ctx, "btc", "fusd")
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(51000).Equal(price.Value))

	price, err = svc.GetPrice(ctx, "eth", "fusd")
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(2500).Equal(price.Value))
}

func newTestService(t *testing.T, clock ports.Clock) *oracle.Service {
	svc, err := oracle.NewService(inmemory.NewRepoManager(), clock, nil, nil)
	require.NoError(t, err)
	return svc
}

type mockClock struct {
	lock sync.Mutex
	now  time.Time
}

func (c *mockClock) Now() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.now
}

func (c *mockClock) set(now time.Time) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now = now
}

type mockMarket struct {
	baseAsset  string
	quoteAsset string
	ticker     string
}

func (m mockMarket) GetBaseAsset() string  { return m.baseAsset }
func (m mockMarket) GetQuoteAsset() string { return m.quoteAsset }
func (m mockMarket) GetTicker() string     { return m.ticker }

type mockPriceFeed struct {
	market ports.Market
	price  decimal.Decimal
}

func (f mockPriceFeed) GetMarket() ports.Market   { return f.market }
func (f mockPriceFeed) GetPrice() decimal.Decimal { return f.price }

// mockFeeder forwards whatever is written to its feed channel, Stop closes
// the channel.
type mockFeeder struct {
	markets  []ports.Market
	feedChan chan ports.PriceFeed
	quitChan chan struct{}
}

func newMockFeeder() *mockFeeder {
	return &mockFeeder{
		feedChan: make(chan ports.PriceFeed),
		quitChan: make(chan struct{}),
	}
}

func (f *mockFeeder) SubscribeMarkets(markets []ports.Market) error {
	f.markets = markets
	return nil
}

func (f *mockFeeder) Start() error {
	<-f.quitChan
	close(f.feedChan)
	return nil
}

func (f *mockFeeder) Stop() {
	close(f.quitChan)
}

func (f *mockFeeder) FeedChan() chan ports.PriceFeed {
	return f.feedChan
}
