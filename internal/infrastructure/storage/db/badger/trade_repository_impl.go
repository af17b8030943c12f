package dbbadger

import (
	"context"
	"sort"
	"time"

	"github.com/colosseum-network/colosseumd/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/timshannon/badgerhold/v4"
)

// tradeRecord is the stored version of a domain.Trade. Seq is assigned by the
// store at insertion and breaks ties between trades executed in the same
// second.
type tradeRecord struct {
	Seq        uint64 `badgerhold:"key"`
	ID         string
	Owner      string `badgerhold:"index"`
	FromAsset  string
	ToAsset    string
	FromAmount decimal.Decimal
	ToAmount   decimal.Decimal
	Rate       decimal.Decimal
	ExecutedAt time.Time
}

type tradeRepositoryImpl struct {
	store *badgerhold.Store
}

// NewTradeRepositoryImpl returns a badger implementation of
// domain.TradeRepository.
func NewTradeRepositoryImpl(store *badgerhold.Store) domain.TradeRepository {
	return &tradeRepositoryImpl{store}
}

func (r *tradeRepositoryImpl) AddTrade(
	_ context.Context, trade *domain.Trade,
) error {
	record := &tradeRecord{
		ID:         trade.ID,
		Owner:      trade.Owner,
		FromAsset:  trade.FromAsset,
		ToAsset:    trade.ToAsset,
		FromAmount: trade.FromAmount,
		ToAmount:   trade.ToAmount,
		Rate:       trade.Rate,
		ExecutedAt: trade.ExecutedAt,
	}
	return r.store.Insert(badgerhold.NextSequence(), record)
}

func (r *tradeRepositoryImpl) GetTrade(
	_ context.Context, tradeID string,
) (*domain.Trade, error) {
	trades, err := r.findTrades(badgerhold.Where("ID").Eq(tradeID))
	if err != nil {
		return nil, err
	}
	if len(trades) <= 0 {
		return nil, domain.ErrTradeNotFound
	}
	return &trades[0], nil
}

func (r *tradeRepositoryImpl) GetTradesByOwner(
	_ context.Context, owner string,
) ([]domain.Trade, error) {
	return r.findTrades(badgerhold.Where("Owner").Eq(owner).Index("Owner"))
}

func (r *tradeRepositoryImpl) GetAllTrades(
	_ context.Context,
) ([]domain.Trade, error) {
	return r.findTrades(nil)
}

func (r *tradeRepositoryImpl) findTrades(
	query *badgerhold.Query,
) ([]domain.Trade, error) {
	var records []tradeRecord
	if err := r.store.Find(&records, query); err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].ExecutedAt.Equal(records[j].ExecutedAt) {
			return records[i].Seq < records[j].Seq
		}
		return records[i].ExecutedAt.Before(records[j].ExecutedAt)
	})

	trades := make([]domain.Trade, 0, len(records))
	for _, r := range records {
		trades = append(trades, domain.Trade{
			ID:         r.ID,
			Owner:      r.Owner,
			FromAsset:  r.FromAsset,
			ToAsset:    r.ToAsset,
			FromAmount: r.FromAmount,
			ToAmount:   r.ToAmount,
			Rate:       r.Rate,
			ExecutedAt: r.ExecutedAt,
		})
	}
	return trades, nil
}
