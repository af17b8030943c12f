package krakenfeeder

import (
	"github.com/colosseum-network/colosseumd/internal/core/ports"
	"github.com/shopspring/decimal"
)

type market struct {
	baseAsset  string
	quoteAsset string
	ticker     string
}

// NewMarket returns a market whose price is read from the kraken pair with the
// given ticker, ie. XBT/USD.
func NewMarket(baseAsset, quoteAsset, ticker string) ports.Market {
	return market{baseAsset, quoteAsset, ticker}
}

func (m market) GetBaseAsset() string {
	return m.baseAsset
}

func (m market) GetQuoteAsset() string {
	return m.quoteAsset
}

func (m market) GetTicker() string {
	return m.ticker
}

type priceFeed struct {
	market ports.Market
	price  decimal.Decimal
}

func (p *priceFeed) GetMarket() ports.Market {
	return p.market
}

func (p *priceFeed) GetPrice() decimal.Decimal {
	return p.price
}
