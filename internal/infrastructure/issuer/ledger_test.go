package issuer_test

import (
	"context"
	"testing"

	"github.com/colosseum-network/colosseumd/internal/core/domain"
	"github.com/colosseum-network/colosseumd/internal/infrastructure/issuer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func TestLedger(t *testing.T) {
	t.Parallel()

	ledger, err := issuer.NewLedger(decimal.NewFromInt(1000))
	require.NoError(t, err)

	amount, err := ledger.Mint(ctx, "fusd", decimal.NewFromInt(600))
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(600).Equal(amount))

	_, err = ledger.Mint(ctx, "fusd", decimal.NewFromInt(401))
	require.ErrorIs(t, err, domain.ErrSupplyOverflow)
	require.ErrorIs(t, err, domain.ErrArithmetic)
	require.True(t, decimal.NewFromInt(600).Equal(ledger.Supply("fusd")))

	// The cap applies per asset.
	_, err = ledger.Mint(ctx, "btc", decimal.NewFromInt(1000))
	require.NoError(t, err)

	err = ledger.Burn(ctx, "fusd", decimal.NewFromInt(100))
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(500).Equal(ledger.Supply("fusd")))

	err = ledger.Burn(ctx, "fusd", decimal.NewFromInt(501))
	require.ErrorIs(t, err, domain.ErrSupplyUnderflow)
	require.True(t, decimal.NewFromInt(500).Equal(ledger.Supply("fusd")))

	err = ledger.Burn(ctx, "eth", decimal.NewFromInt(1))
	require.ErrorIs(t, err, domain.ErrSupplyUnderflow)
}

func TestLedgerWithoutCap(t *testing.T) {
	t.Parallel()

	ledger, err := issuer.NewLedger(decimal.Zero)
	require.NoError(t, err)

	_, err = ledger.Mint(ctx, "fusd", decimal.New(1, 30))
	require.NoError(t, err)
}

func TestFailingLedger(t *testing.T) {
	t.Parallel()

	_, err := issuer.NewLedger(decimal.NewFromInt(-1))
	require.Error(t, err)

	ledger, err := issuer.NewLedger(decimal.Zero)
	require.NoError(t, err)

	_, err = ledger.Mint(ctx, "fusd", decimal.Zero)
	require.ErrorIs(t, err, domain.ErrValidation)

	err = ledger.Burn(ctx, "fusd", decimal.NewFromInt(-1))
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestLedgerRestore(t *testing.T) {
	t.Parallel()

	ledger, err := issuer.NewLedger(decimal.Zero)
	require.NoError(t, err)

	_, err = ledger.Mint(ctx, "doge", decimal.NewFromInt(1))
	require.NoError(t, err)

	ledger.Restore([]domain.Vault{
		{Owner: "alice", Balances: map[string]decimal.Decimal{
			"fusd": decimal.NewFromInt(9980),
			"btc":  decimal.NewFromInt(10),
		}},
		{Owner: "bob", Balances: map[string]decimal.Decimal{
			"fusd": decimal.NewFromInt(10000),
		}},
	})

	require.True(t, decimal.NewFromInt(19980).Equal(ledger.Supply("fusd")))
	require.True(t, decimal.NewFromInt(10).Equal(ledger.Supply("btc")))
	require.True(t, ledger.Supply("doge").IsZero())

	err = ledger.Burn(ctx, "btc", decimal.NewFromInt(10))
	require.NoError(t, err)
}
