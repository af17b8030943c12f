package dbbadger

import (
	"context"

	"github.com/colosseum-network/colosseumd/internal/core/domain"
	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"
)

type assetRepositoryImpl struct {
	store *badgerhold.Store
}

// NewAssetRepositoryImpl returns a badger implementation of
// domain.AssetRepository.
func NewAssetRepositoryImpl(store *badgerhold.Store) domain.AssetRepository {
	return &assetRepositoryImpl{store}
}

func (r *assetRepositoryImpl) AddAsset(
	_ context.Context, asset *domain.Asset,
) error {
	if err := r.store.Insert(asset.ID, asset); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrAssetAlreadyExists
		}
		return err
	}
	return nil
}

func (r *assetRepositoryImpl) GetAsset(
	_ context.Context, assetID string,
) (*domain.Asset, error) {
	var asset domain.Asset
	if err := r.store.Get(assetID, &asset); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepositoryImpl) GetAllAssets(
	_ context.Context,
) ([]domain.Asset, error) {
	return r.findAssets(badgerhold.Where("ID").Ne("").SortBy("ID"))
}

func (r *assetRepositoryImpl) GetAllowedAssets(
	_ context.Context,
) ([]domain.Asset, error) {
	return r.findAssets(badgerhold.Where("Allowed").Eq(true).SortBy("ID"))
}

func (r *assetRepositoryImpl) UpdateAsset(
	_ context.Context, assetID string,
	updateFn func(a *domain.Asset) (*domain.Asset, error),
) error {
	return updateWithRetry(r.store.Badger(), func(tx *badger.Txn) error {
		var current *domain.Asset
		var asset domain.Asset
		if err := r.store.TxGet(tx, assetID, &asset); err != nil {
			if err != badgerhold.ErrNotFound {
				return err
			}
		} else {
			current = &asset
		}

		updatedAsset, err := updateFn(current)
		if err != nil {
			return err
		}
		if updatedAsset == nil {
			return nil
		}
		return r.store.TxUpsert(tx, assetID, updatedAsset)
	})
}

func (r *assetRepositoryImpl) findAssets(
	query *badgerhold.Query,
) ([]domain.Asset, error) {
	var assets []domain.Asset
	if err := r.store.Find(&assets, query); err != nil {
		return nil, err
	}
	if assets == nil {
		assets = make([]domain.Asset, 0)
	}
	return assets, nil
}
