package ports

import "github.com/shopspring/decimal"

// Market is an asset pair fed by a PriceFeeder, the ticker is the symbol of
// the pair on the external price source.
type Market interface {
	GetBaseAsset() string
	GetQuoteAsset() string
	GetTicker() string
}

// PriceFeed is a price observation for a market.
type PriceFeed interface {
	GetMarket() Market
	GetPrice() decimal.Decimal
}

// PriceFeeder is an external source of prices for a set of markets.
type PriceFeeder interface {
	// SubscribeMarkets adds the given markets to those fed.
	SubscribeMarkets(markets []Market) error
	// Start starts feeding prices. It's blocking until Stop is called.
	Start() error
	// Stop stops the feeder and closes the feed channel.
	Stop()
	// FeedChan returns the channel where price feeds are written.
	FeedChan() chan PriceFeed
}
