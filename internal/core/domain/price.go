package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TimePrecision is the granularity of every instant stored or compared by the
// daemon: window bounds, clock reads and price observations.
const TimePrecision = time.Second

// Price is the latest observed rate of an ordered asset pair: how much 1 unit
// of base asset is valued in quote asset.
type Price struct {
	BaseAsset  string
	QuoteAsset string
	Value      decimal.Decimal
	ObservedAt time.Time
}

// NewPrice returns a new price entry observed at the given instant, truncated
// to TimePrecision.
func NewPrice(
	baseAsset, quoteAsset string, value decimal.Decimal, observedAt time.Time,
) (*Price, error) {
	if !isValidAssetID(baseAsset) || !isValidAssetID(quoteAsset) ||
		baseAsset == quoteAsset {
		return nil, ErrPriceInvalidPair
	}
	if !IsValidAmount(value) {
		return nil, ErrPriceOutOfRange
	}
	if value.LessThanOrEqual(decimal.Zero) {
		return nil, ErrPriceInvalidValue
	}

	return &Price{
		BaseAsset:  baseAsset,
		QuoteAsset: quoteAsset,
		Value:      value,
		ObservedAt: TruncateTime(observedAt),
	}, nil
}

// Key returns the identifier of the price pair.
func (p Price) Key() string {
	return PriceKey(p.BaseAsset, p.QuoteAsset)
}

// PriceKey returns the identifier of the ordered pair (base, quote).
func PriceKey(baseAsset, quoteAsset string) string {
	return fmt.Sprintf("%s/%s", baseAsset, quoteAsset)
}

// TruncateTime brings the given instant to UTC with TimePrecision granularity.
func TruncateTime(t time.Time) time.Time {
	return t.UTC().Truncate(TimePrecision)
}

// PriceRepository is the abstraction for any kind of database intended to
// persist the latest Price of asset pairs.
type PriceRepository interface {
	// UpsertPrice inserts or overwrites the entry for the price pair.
	UpsertPrice(ctx context.Context, price Price) error
	// GetPrice returns the entry for the ordered pair (base, quote).
	GetPrice(ctx context.Context, baseAsset, quoteAsset string) (*Price, error)
	// GetAllPrices returns all the stored entries.
	GetAllPrices(ctx context.Context) ([]Price, error)
}
