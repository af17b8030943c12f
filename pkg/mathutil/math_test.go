package mathutil_test

import (
	"testing"

	"github.com/colosseum-network/colosseumd/pkg/mathutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestConvertAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		amount    string
		priceIn   string
		priceOut  string
		precision uint
		expected  string
	}{
		{
			name:      "exact",
			amount:    "10",
			priceIn:   "2",
			priceOut:  "1",
			precision: 18,
			expected:  "20",
		},
		{
			name:      "truncated_not_rounded",
			amount:    "1",
			priceIn:   "2",
			priceOut:  "3",
			precision: 2,
			expected:  "0.66",
		},
		{
			name:      "zero_precision",
			amount:    "5",
			priceIn:   "1",
			priceOut:  "2",
			precision: 0,
			expected:  "2",
		},
		{
			name:      "max_precision",
			amount:    "1",
			priceIn:   "1",
			priceOut:  "3",
			precision: 18,
			expected:  "0.333333333333333333",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			res, err := mathutil.ConvertAmount(
				decimal.RequireFromString(tt.amount),
				decimal.RequireFromString(tt.priceIn),
				decimal.RequireFromString(tt.priceOut),
				tt.precision,
			)
			require.NoError(t, err)
			require.True(
				t, decimal.RequireFromString(tt.expected).Equal(res),
				"expected %s, got %s", tt.expected, res,
			)
		})
	}
}

func TestFailingConvertAmount(t *testing.T) {
	t.Parallel()

	_, err := mathutil.ConvertAmount(
		decimal.NewFromInt(1), decimal.NewFromInt(1), decimal.Zero, 8,
	)
	require.ErrorIs(t, err, mathutil.ErrDivisionByZero)

	_, err = mathutil.ConvertAmount(
		decimal.NewFromInt(-1), decimal.NewFromInt(1), decimal.NewFromInt(1), 8,
	)
	require.ErrorIs(t, err, mathutil.ErrNegativeAmount)

	_, err = mathutil.ConvertAmount(
		decimal.RequireFromString("1e400000000"),
		decimal.NewFromInt(2), decimal.NewFromInt(1), 18,
	)
	require.ErrorIs(t, err, mathutil.ErrOutOfRange)

	_, err = mathutil.ConvertAmount(
		decimal.NewFromInt(1),
		decimal.RequireFromString("1e-400000000"), decimal.NewFromInt(1), 18,
	)
	require.ErrorIs(t, err, mathutil.ErrOutOfRange)

	_, err = mathutil.Rate(
		decimal.NewFromInt(1), decimal.RequireFromString("1e400000000"),
	)
	require.ErrorIs(t, err, mathutil.ErrOutOfRange)
}

func TestConvertAmountRoundTripNeverGains(t *testing.T) {
	t.Parallel()

	priceA := decimal.RequireFromString("3.7")
	priceB := decimal.RequireFromString("0.11")

	for _, amount := range []string{"1", "0.3", "123.456", "7"} {
		in := decimal.RequireFromString(amount)
		out, err := mathutil.ConvertAmount(in, priceA, priceB, 4)
		require.NoError(t, err)
		back, err := mathutil.ConvertAmount(out, priceB, priceA, 4)
		require.NoError(t, err)
		require.True(t, back.LessThanOrEqual(in), "%s -> %s -> %s", in, out, back)
	}
}

func TestHasPrecision(t *testing.T) {
	t.Parallel()

	require.True(t, mathutil.HasPrecision(decimal.RequireFromString("1.25"), 2))
	require.False(t, mathutil.HasPrecision(decimal.RequireFromString("1.255"), 2))
	require.True(t, mathutil.HasPrecision(decimal.NewFromInt(3), 0))
}
