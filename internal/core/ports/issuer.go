package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// Issuer is the asset issuance primitive used to create and destroy units of
// the assets traded in the competition.
type Issuer interface {
	// Mint issues a new amount of asset and returns it.
	Mint(ctx context.Context, asset string, amount decimal.Decimal) (decimal.Decimal, error)
	// Burn destroys an amount of asset.
	Burn(ctx context.Context, asset string, amount decimal.Decimal) error
}
