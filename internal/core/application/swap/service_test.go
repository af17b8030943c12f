package swap_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/colosseum-network/colosseumd/internal/core/application/oracle"
	"github.com/colosseum-network/colosseumd/internal/core/application/swap"
	"github.com/colosseum-network/colosseumd/internal/core/domain"
	"github.com/colosseum-network/colosseumd/internal/core/ports"
	"github.com/colosseum-network/colosseumd/internal/infrastructure/issuer"
	"github.com/colosseum-network/colosseumd/internal/infrastructure/storage/db/inmemory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	fusd = "fusd"
	btc  = "btc"
	eth  = "eth"
	doge = "doge"
)

var ctx = context.Background()

type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
}

func TestTrade(t *testing.T) {
	t.Parallel()

	svc, _, ledger := newTestService(t)
	mintSupply(t, ledger, btc, decimal.NewFromInt(10))

	result, err := svc.Trade(ctx, decimal.NewFromInt(10), btc, eth)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(20).Equal(result.AmountOut))
	require.True(t, decimal.NewFromInt(2).Equal(result.Rate))

	require.True(t, ledger.Supply(btc).IsZero())
	require.True(t, decimal.NewFromInt(20).Equal(ledger.Supply(eth)))
}

func TestTradeRoundsTowardZero(t *testing.T) {
	t.Parallel()

	svc, prices, ledger := newTestService(t)
	_, err := prices.SetPrice(ctx, doge, fusd, decimal.NewFromInt(3))
	require.NoError(t, err)
	_, err = svc.RegisterAsset(ctx, doge, "DOGE", 2)
	require.NoError(t, err)
	mintSupply(t, ledger, fusd, decimal.NewFromInt(1000))

	// 10 / 3 = 3.333... truncated to 2 digits.
	result, err := svc.Trade(ctx, decimal.NewFromInt(10), fusd, doge)
	require.NoError(t, err)
	require.Equal(t, "3.33", result.AmountOut.String())

	// 2 / 3 = 0.666... never rounded up.
	result, err = svc.Quote(ctx, decimal.NewFromInt(2), fusd, doge)
	require.NoError(t, err)
	require.Equal(t, "0.66", result.AmountOut.String())

	// 0.01 / 3 truncates to zero.
	_, err = svc.Quote(ctx, decimal.RequireFromString("0.01"), fusd, doge)
	require.ErrorIs(t, err, domain.ErrAmountTooLow)
	require.ErrorIs(t, err, domain.ErrArithmetic)
}

func TestTradeRoundTripNeverGains(t *testing.T) {
	t.Parallel()

	svc, prices, ledger := newTestService(t)
	_, err := prices.SetPrice(ctx, doge, fusd, decimal.RequireFromString("0.0703"))
	require.NoError(t, err)
	_, err = svc.RegisterAsset(ctx, doge, "DOGE", 8)
	require.NoError(t, err)
	err = svc.AddAllowedAsset(ctx, doge)
	require.NoError(t, err)
	mintSupply(t, ledger, btc, decimal.NewFromInt(100))

	amounts := []string{"1", "0.5", "3.14159265", "0.00000001", "77"}
	for _, a := range amounts {
		amount := decimal.RequireFromString(a)

		there, err := svc.Trade(ctx, amount, btc, doge)
		require.NoError(t, err)
		back, err := svc.Trade(ctx, there.AmountOut, doge, btc)
		if err != nil {
			require.ErrorIs(t, err, domain.ErrAmountTooLow)
			continue
		}
		require.True(t, back.AmountOut.LessThanOrEqual(amount), a)
	}
}

func TestFailingTrade(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)

	tests := []struct {
		name          string
		amount        decimal.Decimal
		assetIn       string
		assetOut      string
		expectedError error
	}{
		{
			name:          "zero_amount",
			amount:        decimal.Zero,
			assetIn:       btc,
			assetOut:      eth,
			expectedError: domain.ErrSwapInvalidAmount,
		},
		{
			name:          "same_asset",
			amount:        decimal.NewFromInt(1),
			assetIn:       btc,
			assetOut:      btc,
			expectedError: domain.ErrSwapSameAsset,
		},
		{
			name:          "amount_out_of_range",
			amount:        decimal.RequireFromString("1e400000000"),
			assetIn:       btc,
			assetOut:      eth,
			expectedError: domain.ErrAmountOutOfRange,
		},
		{
			name:          "not_allowed_asset",
			amount:        decimal.NewFromInt(1),
			assetIn:       eth,
			assetOut:      btc,
			expectedError: domain.ErrAssetNotAllowed,
		},
		{
			name:          "unknown_asset",
			amount:        decimal.NewFromInt(1),
			assetIn:       doge,
			assetOut:      btc,
			expectedError: domain.ErrAssetNotAllowed,
		},
		{
			name:          "missing_output_price",
			amount:        decimal.NewFromInt(1),
			assetIn:       btc,
			assetOut:      doge,
			expectedError: domain.ErrPriceNotFound,
		},
		{
			name:          "amount_exceeds_precision",
			amount:        decimal.RequireFromString("0.000000001"),
			assetIn:       btc,
			assetOut:      eth,
			expectedError: domain.ErrSwapAmountPrecision,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Trade(ctx, tt.amount, tt.assetIn, tt.assetOut)
			require.ErrorIs(t, err, tt.expectedError)
			require.Nil(t, result)
		})
	}
}

func TestTradeMissingInputPrice(t *testing.T) {
	t.Parallel()

	issuerMock := &mockIssuer{}
	svc, err := swap.NewService(
		newRepoManager(t), newPriceSource(t), issuerMock, fusd,
	)
	require.NoError(t, err)
	err = svc.AddAllowedAsset(ctx, doge)
	require.NoError(t, err)

	_, err = svc.Trade(ctx, decimal.NewFromInt(1), doge, fusd)
	require.ErrorIs(t, err, domain.ErrPriceNotFound)
	require.ErrorIs(t, err, domain.ErrNotFound)

	// Nothing is minted nor burned.
	issuerMock.AssertNotCalled(t, "Burn", mock.Anything, mock.Anything, mock.Anything)
	issuerMock.AssertNotCalled(t, "Mint", mock.Anything, mock.Anything, mock.Anything)
}

func TestTradeZeroOutputPrice(t *testing.T) {
	t.Parallel()

	prices := &mockPriceSource{}
	prices.On("GetPrice", mock.Anything, btc, fusd).Return(
		&domain.Price{BaseAsset: btc, QuoteAsset: fusd, Value: decimal.NewFromInt(2)}, nil,
	)
	prices.On("GetPrice", mock.Anything, eth, fusd).Return(
		&domain.Price{BaseAsset: eth, QuoteAsset: fusd, Value: decimal.Zero}, nil,
	)

	issuerMock := &mockIssuer{}
	repoManager := newRepoManager(t)
	svc, err := swap.NewService(repoManager, prices, issuerMock, fusd)
	require.NoError(t, err)
	err = svc.AddAllowedAsset(ctx, btc)
	require.NoError(t, err)

	_, err = svc.Trade(ctx, decimal.NewFromInt(1), btc, eth)
	require.ErrorIs(t, err, domain.ErrDivisionByZero)
	require.ErrorIs(t, err, domain.ErrArithmetic)
	issuerMock.AssertNotCalled(t, "Burn", mock.Anything, mock.Anything, mock.Anything)
}

func TestTradeMintFailureRestoresInput(t *testing.T) {
	t.Parallel()

	issuerMock := &mockIssuer{}
	issuerMock.On("Burn", mock.Anything, btc, decimalEq(decimal.NewFromInt(1))).
		Return(nil).Once()
	issuerMock.On("Mint", mock.Anything, eth, decimalEq(decimal.NewFromInt(2))).
		Return(nil, domain.ErrSupplyOverflow).Once()
	issuerMock.On("Mint", mock.Anything, btc, decimalEq(decimal.NewFromInt(1))).
		Return(decimal.NewFromInt(1), nil).Once()

	svc, err := swap.NewService(
		newRepoManager(t), newPriceSource(t), issuerMock, fusd,
	)
	require.NoError(t, err)
	err = svc.AddAllowedAsset(ctx, btc)
	require.NoError(t, err)

	_, err = svc.Trade(ctx, decimal.NewFromInt(1), btc, eth)
	require.ErrorIs(t, err, domain.ErrSupplyOverflow)
	issuerMock.AssertExpectations(t)
}

func TestRevert(t *testing.T) {
	t.Parallel()

	svc, _, ledger := newTestService(t)
	mintSupply(t, ledger, btc, decimal.NewFromInt(10))

	result, err := svc.Trade(ctx, decimal.NewFromInt(10), btc, eth)
	require.NoError(t, err)

	err = svc.Revert(ctx, *result)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(10).Equal(ledger.Supply(btc)))
	require.True(t, ledger.Supply(eth).IsZero())
}

func TestRegisterAsset(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)

	asset, err := svc.RegisterAsset(ctx, doge, "DOGE", 8)
	require.NoError(t, err)
	require.False(t, asset.IsAllowed())

	// Idempotent on identical input.
	_, err = svc.RegisterAsset(ctx, doge, "DOGE", 8)
	require.NoError(t, err)

	// Not allowed assets can be updated.
	asset, err = svc.RegisterAsset(ctx, doge, "DOGE", 4)
	require.NoError(t, err)
	require.Equal(t, uint(4), asset.Precision)

	err = svc.AddAllowedAsset(ctx, doge)
	require.NoError(t, err)
	err = svc.AddAllowedAsset(ctx, doge)
	require.NoError(t, err)

	_, err = svc.RegisterAsset(ctx, doge, "DOGE", 2)
	require.ErrorIs(t, err, domain.ErrAssetAlreadyExists)

	_, err = svc.RegisterAsset(ctx, "shib", "SHIB", 19)
	require.ErrorIs(t, err, domain.ErrAssetInvalidPrecision)

	asset, err = svc.GetAsset(ctx, doge)
	require.NoError(t, err)
	require.True(t, asset.IsAllowed())
	require.Equal(t, uint(4), asset.Precision)

	// Unknown assets are created with default precision when allow-listed.
	err = svc.AddAllowedAsset(ctx, "shib")
	require.NoError(t, err)
	asset, err = svc.GetAsset(ctx, "shib")
	require.NoError(t, err)
	require.Equal(t, uint(domain.DefaultAssetPrecision), asset.Precision)

	assets, err := svc.ListAssets(ctx)
	require.NoError(t, err)
	require.Len(t, assets, 4)
}

func TestFailingNewService(t *testing.T) {
	t.Parallel()

	ledger, _ := issuer.NewLedger(decimal.Zero)
	repoManager := newRepoManager(t)
	prices := newPriceSource(t)

	tests := []struct {
		name        string
		repoManager ports.RepoManager
		prices      swap.PriceSource
		issuer      ports.Issuer
		reference   string
	}{
		{"missing_repo_manager", nil, prices, ledger, fusd},
		{"missing_price_source", repoManager, nil, ledger, fusd},
		{"missing_issuer", repoManager, prices, nil, fusd},
		{"missing_reference", repoManager, prices, ledger, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc, err := swap.NewService(tt.repoManager, tt.prices, tt.issuer, tt.reference)
			require.Error(t, err)
			require.Nil(t, svc)
		})
	}
}

// newTestService returns a swap engine where fusd and btc are allow-listed,
// btc has precision 8, price(btc)=2 and price(eth)=1.
func newTestService(t *testing.T) (*swap.Service, *oracle.Service, *issuer.Ledger) {
	repoManager := newRepoManager(t)
	prices, err := oracle.NewService(repoManager, fixedClock{}, nil, nil)
	require.NoError(t, err)
	ledger, err := issuer.NewLedger(decimal.Zero)
	require.NoError(t, err)

	svc, err := swap.NewService(repoManager, prices, ledger, fusd)
	require.NoError(t, err)

	_, err = prices.SetPrice(ctx, btc, fusd, decimal.NewFromInt(2))
	require.NoError(t, err)
	_, err = prices.SetPrice(ctx, eth, fusd, decimal.NewFromInt(1))
	require.NoError(t, err)

	_, err = svc.RegisterAsset(ctx, btc, "BTC", 8)
	require.NoError(t, err)
	for _, asset := range []string{fusd, btc} {
		err := svc.AddAllowedAsset(ctx, asset)
		require.NoError(t, err)
	}
	return svc, prices, ledger
}

func newRepoManager(t *testing.T) ports.RepoManager {
	repoManager := inmemory.NewRepoManager()
	t.Cleanup(repoManager.Close)
	return repoManager
}

// newPriceSource returns a price source where price(btc)=2, price(eth)=1.
func newPriceSource(t *testing.T) swap.PriceSource {
	prices, err := oracle.NewService(newRepoManager(t), fixedClock{}, nil, nil)
	require.NoError(t, err)
	for asset, value := range map[string]int64{btc: 2, eth: 1} {
		_, err := prices.SetPrice(ctx, asset, fusd, decimal.NewFromInt(value))
		require.NoError(t, err)
	}
	return prices
}

func mintSupply(t *testing.T, ledger *issuer.Ledger, asset string, amount decimal.Decimal) {
	_, err := ledger.Mint(ctx, asset, amount)
	require.NoError(t, err, fmt.Sprintf("minting %s %s", amount, asset))
}
