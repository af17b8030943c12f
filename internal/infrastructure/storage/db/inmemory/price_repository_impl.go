package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/colosseum-network/colosseumd/internal/core/domain"
)

type priceRepositoryImpl struct {
	prices map[string]domain.Price
	lock   *sync.RWMutex
}

// NewPriceRepositoryImpl returns a new empty in memory PriceRepository.
func NewPriceRepositoryImpl() domain.PriceRepository {
	return &priceRepositoryImpl{
		prices: map[string]domain.Price{},
		lock:   &sync.RWMutex{},
	}
}

func (r *priceRepositoryImpl) UpsertPrice(
	_ context.Context, price domain.Price,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.prices[price.Key()] = price
	return nil
}

func (r *priceRepositoryImpl) GetPrice(
	_ context.Context, baseAsset, quoteAsset string,
) (*domain.Price, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	price, ok := r.prices[domain.PriceKey(baseAsset, quoteAsset)]
	if !ok {
		return nil, domain.ErrPriceNotFound
	}
	return &price, nil
}

func (r *priceRepositoryImpl) GetAllPrices(
	_ context.Context,
) ([]domain.Price, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	prices := make([]domain.Price, 0, len(r.prices))
	for _, p := range r.prices {
		prices = append(prices, p)
	}
	sort.SliceStable(prices, func(i, j int) bool {
		return prices[i].Key() < prices[j].Key()
	})
	return prices, nil
}
