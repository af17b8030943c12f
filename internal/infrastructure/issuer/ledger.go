package issuer

import (
	"context"
	"fmt"
	"sync"

	"github.com/colosseum-network/colosseumd/internal/core/domain"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Ledger is an in memory issuance primitive keeping track of the circulating
// supply of every asset. Minting fails if it would bring the supply of an
// asset above the cap.
type Ledger struct {
	supplyCap decimal.Decimal
	supply    map[string]decimal.Decimal
	lock      *sync.RWMutex
}

// NewLedger returns a new Ledger with the given supply cap. A zero cap means
// no cap.
func NewLedger(supplyCap decimal.Decimal) (*Ledger, error) {
	if supplyCap.IsNegative() {
		return nil, fmt.Errorf("supply cap must not be negative")
	}
	return &Ledger{
		supplyCap: supplyCap,
		supply:    make(map[string]decimal.Decimal),
		lock:      &sync.RWMutex{},
	}, nil
}

func (l *Ledger) Mint(
	_ context.Context, asset string, amount decimal.Decimal,
) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, domain.ErrIssuanceInvalidAmount
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	newSupply := l.supply[asset].Add(amount)
	if !l.supplyCap.IsZero() && newSupply.GreaterThan(l.supplyCap) {
		return decimal.Zero, fmt.Errorf(
			"%w: minting %s of asset %s exceeds cap %s",
			domain.ErrSupplyOverflow, amount, asset, l.supplyCap,
		)
	}

	l.supply[asset] = newSupply
	log.Tracef("minted %s of asset %s", amount, asset)
	return amount, nil
}

func (l *Ledger) Burn(
	_ context.Context, asset string, amount decimal.Decimal,
) error {
	if !amount.IsPositive() {
		return domain.ErrIssuanceInvalidAmount
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	supply := l.supply[asset]
	if supply.LessThan(amount) {
		return fmt.Errorf(
			"%w: burning %s of asset %s exceeds supply",
			domain.ErrSupplyUnderflow, amount, asset,
		)
	}

	l.supply[asset] = supply.Sub(amount)
	log.Tracef("burned %s of asset %s", amount, asset)
	return nil
}

// Supply returns the circulating supply of the given asset.
func (l *Ledger) Supply(asset string) decimal.Decimal {
	l.lock.RLock()
	defer l.lock.RUnlock()

	return l.supply[asset]
}

// Restore sets the circulating supply of every asset to the sum of the
// balances of the given vaults. It is meant to be called at startup, before
// any mint or burn, when vaults are loaded from a persistent store.
func (l *Ledger) Restore(vaults []domain.Vault) {
	l.lock.Lock()
	defer l.lock.Unlock()

	supply := make(map[string]decimal.Decimal)
	for _, v := range vaults {
		for asset, balance := range v.Balances {
			supply[asset] = supply[asset].Add(balance)
		}
	}
	l.supply = supply
	log.Debugf("restored supply of %d assets from %d vaults", len(supply), len(vaults))
}
