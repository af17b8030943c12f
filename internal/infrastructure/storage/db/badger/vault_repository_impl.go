package dbbadger

import (
	"context"

	"github.com/colosseum-network/colosseumd/internal/core/domain"
	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"
)

type vaultRepositoryImpl struct {
	store *badgerhold.Store
}

// NewVaultRepositoryImpl returns a badger implementation of
// domain.VaultRepository.
func NewVaultRepositoryImpl(store *badgerhold.Store) domain.VaultRepository {
	return &vaultRepositoryImpl{store}
}

func (r *vaultRepositoryImpl) AddVault(
	_ context.Context, vault *domain.Vault,
) error {
	if err := r.store.Insert(vault.Owner, vault); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

func (r *vaultRepositoryImpl) GetVault(
	_ context.Context, owner string,
) (*domain.Vault, error) {
	var vault domain.Vault
	if err := r.store.Get(owner, &vault); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrVaultNotFound
		}
		return nil, err
	}
	return &vault, nil
}

func (r *vaultRepositoryImpl) GetAllVaults(
	_ context.Context,
) ([]domain.Vault, error) {
	var vaults []domain.Vault
	query := badgerhold.Where("Owner").Ne("").SortBy("Owner")
	if err := r.store.Find(&vaults, query); err != nil {
		return nil, err
	}
	if vaults == nil {
		vaults = make([]domain.Vault, 0)
	}
	return vaults, nil
}

// UpdateVault runs get, update and store within the same badger transaction,
// the stored vault is untouched if the closure fails. The closure may have
// side effects, so a conflicting commit is not retried: updates of the same
// owner must be serialized by the caller.
func (r *vaultRepositoryImpl) UpdateVault(
	_ context.Context, owner string,
	updateFn func(v *domain.Vault) (*domain.Vault, error),
) error {
	return r.store.Badger().Update(func(tx *badger.Txn) error {
		var vault domain.Vault
		if err := r.store.TxGet(tx, owner, &vault); err != nil {
			if err == badgerhold.ErrNotFound {
				return domain.ErrVaultNotFound
			}
			return err
		}

		updatedVault, err := updateFn(&vault)
		if err != nil {
			return err
		}
		return r.store.TxUpdate(tx, owner, updatedVault)
	})
}
