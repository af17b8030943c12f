package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Trade is the record of a conversion executed on behalf of a participant.
type Trade struct {
	ID         string
	Owner      string
	FromAsset  string
	ToAsset    string
	FromAmount decimal.Decimal
	ToAmount   decimal.Decimal
	// Rate is price(FromAsset) / price(ToAsset) at execution time.
	Rate       decimal.Decimal
	ExecutedAt time.Time
}

// NewTrade returns a new trade record with a random id.
func NewTrade(
	owner, fromAsset, toAsset string,
	fromAmount, toAmount, rate decimal.Decimal, executedAt time.Time,
) *Trade {
	return &Trade{
		ID:         uuid.New().String(),
		Owner:      owner,
		FromAsset:  fromAsset,
		ToAsset:    toAsset,
		FromAmount: fromAmount,
		ToAmount:   toAmount,
		Rate:       rate,
		ExecutedAt: TruncateTime(executedAt),
	}
}

// TradeRepository is the abstraction for any kind of database intended to
// persist Trades.
type TradeRepository interface {
	// AddTrade adds a new trade to the repository.
	AddTrade(ctx context.Context, trade *Trade) error
	// GetTrade returns the trade with the given id.
	GetTrade(ctx context.Context, tradeID string) (*Trade, error)
	// GetTradesByOwner returns all the trades of the given owner sorted by
	// execution time.
	GetTradesByOwner(ctx context.Context, owner string) ([]Trade, error)
	// GetAllTrades returns all the trades sorted by execution time.
	GetAllTrades(ctx context.Context) ([]Trade, error)
}
