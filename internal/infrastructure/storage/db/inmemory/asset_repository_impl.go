package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/colosseum-network/colosseumd/internal/core/domain"
)

type assetRepositoryImpl struct {
	assets map[string]domain.Asset
	lock   *sync.RWMutex
}

// NewAssetRepositoryImpl returns a new empty in memory AssetRepository.
func NewAssetRepositoryImpl() domain.AssetRepository {
	return &assetRepositoryImpl{
		assets: map[string]domain.Asset{},
		lock:   &sync.RWMutex{},
	}
}

func (r *assetRepositoryImpl) AddAsset(
	_ context.Context, asset *domain.Asset,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.assets[asset.ID]; ok {
		return domain.ErrAssetAlreadyExists
	}
	r.assets[asset.ID] = *asset
	return nil
}

func (r *assetRepositoryImpl) GetAsset(
	_ context.Context, assetID string,
) (*domain.Asset, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	asset, ok := r.assets[assetID]
	if !ok {
		return nil, domain.ErrAssetNotFound
	}
	return &asset, nil
}

func (r *assetRepositoryImpl) GetAllAssets(
	_ context.Context,
) ([]domain.Asset, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.filterAssets(func(domain.Asset) bool { return true }), nil
}

func (r *assetRepositoryImpl) GetAllowedAssets(
	_ context.Context,
) ([]domain.Asset, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.filterAssets(func(a domain.Asset) bool { return a.IsAllowed() }), nil
}

func (r *assetRepositoryImpl) UpdateAsset(
	_ context.Context, assetID string,
	updateFn func(a *domain.Asset) (*domain.Asset, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	var current *domain.Asset
	if asset, ok := r.assets[assetID]; ok {
		current = &asset
	}

	updatedAsset, err := updateFn(current)
	if err != nil {
		return err
	}
	if updatedAsset == nil {
		return nil
	}

	r.assets[assetID] = *updatedAsset
	return nil
}

func (r *assetRepositoryImpl) filterAssets(
	keep func(domain.Asset) bool,
) []domain.Asset {
	assets := make([]domain.Asset, 0, len(r.assets))
	for _, a := range r.assets {
		if keep(a) {
			assets = append(assets, a)
		}
	}
	sort.SliceStable(assets, func(i, j int) bool {
		return assets[i].ID < assets[j].ID
	})
	return assets
}
