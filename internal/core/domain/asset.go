package domain

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// MaxAssetPrecision is the max number of fractional digits of an amount.
	MaxAssetPrecision = 18
	// DefaultAssetPrecision is the precision given to assets added to the
	// allow-list without being registered first.
	DefaultAssetPrecision = MaxAssetPrecision
	// MaxAmountDigits is the max number of integer digits of an amount or a
	// price.
	MaxAmountDigits = 30
)

// Asset defines the entity data structure for a tradable asset type.
type Asset struct {
	// Opaque handle of the asset.
	ID string
	// Human readable symbol, ie. BTC.
	Ticker string
	// Max number of fractional digits an amount of this asset can carry.
	Precision uint
	// Whether the asset can be used as source of a swap.
	Allowed bool
}

// NewAsset returns a new not allowed asset with the given precision.
func NewAsset(id, ticker string, precision uint) (*Asset, error) {
	if !isValidAssetID(id) {
		return nil, ErrAssetInvalidID
	}
	if !isValidPrecision(precision) {
		return nil, ErrAssetInvalidPrecision
	}
	if ticker == "" {
		ticker = id
	}

	return &Asset{
		ID:        id,
		Ticker:    ticker,
		Precision: precision,
	}, nil
}

// Allow adds the asset to the allow-list. It's idempotent.
func (a *Asset) Allow() {
	a.Allowed = true
}

// IsAllowed returns whether the asset can be used as swap input.
func (a *Asset) IsAllowed() bool {
	return a.Allowed
}

// AssetRepository is the abstraction for any kind of database intended to
// persist Assets and the swap allow-list.
type AssetRepository interface {
	// AddAsset adds a new asset to the repository.
	AddAsset(ctx context.Context, asset *Asset) error
	// GetAsset returns the asset with the given id.
	GetAsset(ctx context.Context, assetID string) (*Asset, error)
	// GetAllAssets returns all assets, either allowed or not.
	GetAllAssets(ctx context.Context) ([]Asset, error)
	// GetAllowedAssets returns the assets of the allow-list.
	GetAllowedAssets(ctx context.Context) ([]Asset, error)
	// UpdateAsset updates the asset with the given id through the closure. If
	// the asset doesn't exist, the closure receives nil and the returned asset
	// is inserted.
	UpdateAsset(
		ctx context.Context, assetID string,
		updateFn func(a *Asset) (*Asset, error),
	) error
}

func isValidAssetID(id string) bool {
	return len(strings.TrimSpace(id)) > 0
}

// IsValidAmount returns whether x fits the range of values the competition
// deals with: at most MaxAssetPrecision fractional digits and
// MaxAmountDigits integer digits. Values outside it are rejected before any
// arithmetic because rescaling them is unbounded.
func IsValidAmount(x decimal.Decimal) bool {
	exp := int64(x.Exponent())
	if exp < -MaxAssetPrecision {
		return false
	}
	return int64(x.NumDigits())+exp <= MaxAmountDigits
}

func isValidPrecision(precision uint) bool {
	return precision <= MaxAssetPrecision
}
