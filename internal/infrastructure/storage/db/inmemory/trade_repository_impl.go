package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/colosseum-network/colosseumd/internal/core/domain"
)

type tradeRepositoryImpl struct {
	// trades in insertion order.
	trades  []domain.Trade
	indexes map[string]int
	lock    *sync.RWMutex
}

// NewTradeRepositoryImpl returns a new empty in memory TradeRepository.
func NewTradeRepositoryImpl() domain.TradeRepository {
	return &tradeRepositoryImpl{
		trades:  make([]domain.Trade, 0),
		indexes: map[string]int{},
		lock:    &sync.RWMutex{},
	}
}

func (r *tradeRepositoryImpl) AddTrade(
	_ context.Context, trade *domain.Trade,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if i, ok := r.indexes[trade.ID]; ok {
		r.trades[i] = *trade
		return nil
	}
	r.indexes[trade.ID] = len(r.trades)
	r.trades = append(r.trades, *trade)
	return nil
}

func (r *tradeRepositoryImpl) GetTrade(
	_ context.Context, tradeID string,
) (*domain.Trade, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	i, ok := r.indexes[tradeID]
	if !ok {
		return nil, domain.ErrTradeNotFound
	}
	trade := r.trades[i]
	return &trade, nil
}

func (r *tradeRepositoryImpl) GetTradesByOwner(
	_ context.Context, owner string,
) ([]domain.Trade, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	trades := make([]domain.Trade, 0)
	for _, t := range r.trades {
		if t.Owner == owner {
			trades = append(trades, t)
		}
	}
	sortTrades(trades)
	return trades, nil
}

func (r *tradeRepositoryImpl) GetAllTrades(
	_ context.Context,
) ([]domain.Trade, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	trades := make([]domain.Trade, len(r.trades))
	copy(trades, r.trades)
	sortTrades(trades)
	return trades, nil
}

// sortTrades orders by execution time, trades executed within the same second
// keep their insertion order.
func sortTrades(trades []domain.Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].ExecutedAt.Before(trades[j].ExecutedAt)
	})
}
