package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/colosseum-network/colosseumd/internal/core/domain"
)

type vaultRepositoryImpl struct {
	vaults map[string]*domain.Vault
	lock   *sync.RWMutex
}

// NewVaultRepositoryImpl returns a new empty in memory VaultRepository.
func NewVaultRepositoryImpl() domain.VaultRepository {
	return &vaultRepositoryImpl{
		vaults: map[string]*domain.Vault{},
		lock:   &sync.RWMutex{},
	}
}

func (r *vaultRepositoryImpl) AddVault(
	_ context.Context, vault *domain.Vault,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.vaults[vault.Owner]; ok {
		return domain.ErrAlreadyRegistered
	}
	r.vaults[vault.Owner] = vault.Clone()
	return nil
}

func (r *vaultRepositoryImpl) GetVault(
	_ context.Context, owner string,
) (*domain.Vault, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	vault, ok := r.vaults[owner]
	if !ok {
		return nil, domain.ErrVaultNotFound
	}
	return vault.Clone(), nil
}

func (r *vaultRepositoryImpl) GetAllVaults(
	_ context.Context,
) ([]domain.Vault, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	vaults := make([]domain.Vault, 0, len(r.vaults))
	for _, v := range r.vaults {
		vaults = append(vaults, *v.Clone())
	}
	sort.SliceStable(vaults, func(i, j int) bool {
		return vaults[i].Owner < vaults[j].Owner
	})
	return vaults, nil
}

// UpdateVault runs updateFn on a copy of the stored vault without holding
// the repository lock, so that updates of other owners are not blocked by a
// slow closure. Concurrent updates of the same owner must be serialized by
// the caller.
func (r *vaultRepositoryImpl) UpdateVault(
	ctx context.Context, owner string,
	updateFn func(v *domain.Vault) (*domain.Vault, error),
) error {
	vault, err := r.GetVault(ctx, owner)
	if err != nil {
		return err
	}

	updatedVault, err := updateFn(vault)
	if err != nil {
		return err
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.vaults[owner]; !ok {
		return domain.ErrVaultNotFound
	}
	r.vaults[owner] = updatedVault.Clone()
	return nil
}
