package domain

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Vault defines the entity data structure holding the balances of a
// participant across multiple asset types. The vault is a pure container:
// it's up to the caller to bind it to its owner.
type Vault struct {
	Owner     string
	Balances  map[string]decimal.Decimal
	CreatedAt time.Time
}

// NewVault returns a new vault owned by the given identity, seeded with an
// initial balance of a single asset.
func NewVault(
	owner, asset string, amount decimal.Decimal, createdAt time.Time,
) (*Vault, error) {
	if owner == "" {
		return nil, ErrVaultInvalidOwner
	}

	v := &Vault{
		Owner:     owner,
		Balances:  map[string]decimal.Decimal{},
		CreatedAt: TruncateTime(createdAt),
	}
	if err := v.Deposit(asset, amount); err != nil {
		return nil, err
	}
	return v, nil
}

// Deposit merges the given amount into the balance of the asset, creating a
// zero-initialized balance first if none exists.
func (v *Vault) Deposit(asset string, amount decimal.Decimal) error {
	if !isValidAssetID(asset) {
		return ErrAssetInvalidID
	}
	if !IsValidAmount(amount) {
		return ErrAmountOutOfRange
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrVaultInvalidAmount
	}
	if v.Balances == nil {
		v.Balances = map[string]decimal.Decimal{}
	}

	v.Balances[asset] = v.Balances[asset].Add(amount)
	return nil
}

// Withdraw debits exactly the given amount of asset and returns it. The vault
// is left untouched in case of failure.
func (v *Vault) Withdraw(
	asset string, amount decimal.Decimal,
) (decimal.Decimal, error) {
	if !IsValidAmount(amount) {
		return decimal.Zero, ErrAmountOutOfRange
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrVaultInvalidAmount
	}

	balance, ok := v.Balances[asset]
	if !ok {
		return decimal.Zero, fmt.Errorf(
			"%w: no balance for asset %s", ErrVaultInsufficientBalance, asset,
		)
	}
	if balance.LessThan(amount) {
		return decimal.Zero, fmt.Errorf(
			"%w: requested %s of asset %s exceeds balance",
			ErrVaultInsufficientBalance, amount, asset,
		)
	}

	v.Balances[asset] = balance.Sub(amount)
	return amount, nil
}

// Balance returns the balance of the given asset, zero if none.
func (v *Vault) Balance(asset string) decimal.Decimal {
	return v.Balances[asset]
}

// Assets returns the sorted list of assets held by the vault.
func (v *Vault) Assets() []string {
	assets := make([]string, 0, len(v.Balances))
	for asset := range v.Balances {
		assets = append(assets, asset)
	}
	sort.Strings(assets)
	return assets
}

// Clone returns a deep copy of the vault that can be mutated without
// affecting the original one.
func (v *Vault) Clone() *Vault {
	balances := make(map[string]decimal.Decimal, len(v.Balances))
	for asset, amount := range v.Balances {
		balances[asset] = amount
	}
	return &Vault{
		Owner:     v.Owner,
		Balances:  balances,
		CreatedAt: v.CreatedAt,
	}
}

// VaultRepository is the abstraction for any kind of database intended to
// persist Vaults keyed by owner identity.
type VaultRepository interface {
	// AddVault adds a new vault. It fails if the owner already has one.
	AddVault(ctx context.Context, vault *Vault) error
	// GetVault returns the vault of the given owner.
	GetVault(ctx context.Context, owner string) (*Vault, error)
	// GetAllVaults returns all the stored vaults.
	GetAllVaults(ctx context.Context) ([]Vault, error)
	// UpdateVault updates the vault of the given owner. The closure receives a
	// copy of the stored vault, the result is committed only if the closure
	// doesn't return an error. Implementations must not block other owners
	// while the closure runs, updates of the same owner are serialized by the
	// caller.
	UpdateVault(
		ctx context.Context, owner string,
		updateFn func(v *Vault) (*Vault, error),
	) error
}
