package dbbadger

import (
	"context"
	"sort"

	"github.com/colosseum-network/colosseumd/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type priceRepositoryImpl struct {
	store *badgerhold.Store
}

// NewPriceRepositoryImpl returns a badger implementation of
// domain.PriceRepository.
func NewPriceRepositoryImpl(store *badgerhold.Store) domain.PriceRepository {
	return &priceRepositoryImpl{store}
}

func (r *priceRepositoryImpl) UpsertPrice(
	_ context.Context, price domain.Price,
) error {
	return r.store.Upsert(price.Key(), &price)
}

func (r *priceRepositoryImpl) GetPrice(
	_ context.Context, baseAsset, quoteAsset string,
) (*domain.Price, error) {
	var price domain.Price
	if err := r.store.Get(
		domain.PriceKey(baseAsset, quoteAsset), &price,
	); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrPriceNotFound
		}
		return nil, err
	}
	return &price, nil
}

func (r *priceRepositoryImpl) GetAllPrices(
	_ context.Context,
) ([]domain.Price, error) {
	var prices []domain.Price
	if err := r.store.Find(&prices, nil); err != nil {
		return nil, err
	}
	sort.SliceStable(prices, func(i, j int) bool {
		return prices[i].Key() < prices[j].Key()
	})
	return prices, nil
}
