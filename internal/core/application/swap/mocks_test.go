package swap_test

import (
	"context"

	"github.com/colosseum-network/colosseumd/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// **** Issuer ****

type mockIssuer struct {
	mock.Mock
}

func (m *mockIssuer) Mint(
	ctx context.Context, asset string, amount decimal.Decimal,
) (decimal.Decimal, error) {
	args := m.Called(ctx, asset, amount)

	var res decimal.Decimal
	if a := args.Get(0); a != nil {
		res = a.(decimal.Decimal)
	}
	return res, args.Error(1)
}

func (m *mockIssuer) Burn(
	ctx context.Context, asset string, amount decimal.Decimal,
) error {
	args := m.Called(ctx, asset, amount)
	return args.Error(0)
}

// **** Price source ****

type mockPriceSource struct {
	mock.Mock
}

func (m *mockPriceSource) GetPrice(
	ctx context.Context, baseAsset, quoteAsset string,
) (*domain.Price, error) {
	args := m.Called(ctx, baseAsset, quoteAsset)

	var res *domain.Price
	if a := args.Get(0); a != nil {
		res = a.(*domain.Price)
	}
	return res, args.Error(1)
}

func decimalEq(d decimal.Decimal) interface{} {
	return mock.MatchedBy(func(x decimal.Decimal) bool { return x.Equal(d) })
}
